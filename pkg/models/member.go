package models

// Member identifies one node in the cluster topology. The snapshot is
// immutable for the lifetime of one request; topology changes show up on the
// next query.
type Member struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ClientAddresses []string `json:"clientAddresses"`
}

// PrimaryAddress returns the first reachable endpoint for the member, or an
// empty string when the member reported none.
func (m Member) PrimaryAddress() string {
	if len(m.ClientAddresses) == 0 {
		return ""
	}
	return m.ClientAddresses[0]
}

package models

// ClusterInfo is the raw topology view as reported by the node the console
// is connected to.
type ClusterInfo struct {
	NodeID      string   `json:"nodeId"`
	NodeAddress string   `json:"nodeAddress"`
	Members     []Member `json:"members"`
}

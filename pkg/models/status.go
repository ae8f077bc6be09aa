package models

// Node states reported in a NodeStatus.
const (
	StateOK    = "ok"
	StateError = "error"
)

// TableHealth holds the replicated-log facts a node reports about one table.
type TableHealth struct {
	LogSize   int64  `json:"logSizeBytes"`
	DBSize    int64  `json:"dbSizeBytes"`
	LeaderID  string `json:"leaderId"`
	RaftIndex uint64 `json:"raftIndex"`
	RaftTerm  uint64 `json:"raftTerm"`
}

// NodeStatus is the health snapshot for a single member. When the status
// query for a member fails, a degraded entry is synthesized with
// State=StateError and the failure cause in Message; the entry is never
// dropped.
type NodeStatus struct {
	ID      string                 `json:"id"`
	Name    string                 `json:"name"`
	State   string                 `json:"state"`
	Message string                 `json:"message,omitempty"`
	Config  map[string]any         `json:"config,omitempty"`
	Tables  map[string]TableHealth `json:"tables,omitempty"`
	Errors  []string               `json:"errors,omitempty"`
}

// AggregatedStatus is the deterministic, sorted collection of all NodeStatus
// entries for one status request.
type AggregatedStatus struct {
	Servers []NodeStatus `json:"servers"`
}

package models

import "time"

// StatusSnapshot is one recorded aggregation result, kept in the history
// store for the dashboard's history view.
type StatusSnapshot struct {
	ID      string       `json:"id"`
	TakenAt time.Time    `json:"taken_at"`
	Servers []NodeStatus `json:"servers"`
}

// SnapshotListResponse represents a list of recorded status snapshots,
// newest first.
type SnapshotListResponse struct {
	Snapshots []StatusSnapshot `json:"snapshots"`
}

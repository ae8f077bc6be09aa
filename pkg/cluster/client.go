// Package cluster provides the client used to talk to an armada key-value
// cluster, plus the registry that owns the process-wide client instance.
package cluster

import (
	"context"

	"github.com/armadakv/console-sub000/pkg/models"
)

// ScanQuery describes the filter for a key scan. Prefix and Start/End are
// mutually exclusive; callers validate before building one.
type ScanQuery struct {
	Prefix string
	Start  string
	End    string
	Limit  int
}

// Client is the cluster access contract consumed by the console. The
// implementation is internally safe for concurrent calls; all methods honor
// the deadline and cancellation of the passed context.
type Client interface {
	// ListMembers returns the current cluster topology as a list of members.
	ListMembers(ctx context.Context) ([]models.Member, error)

	// GetStatus queries a single node, addressed directly, for its health
	// snapshot.
	GetStatus(ctx context.Context, address string) (*models.NodeStatus, error)

	// GetTopology returns the raw cluster view of the connected node.
	GetTopology(ctx context.Context) (*models.ClusterInfo, error)

	// ListTables returns all tables known to the cluster.
	ListTables(ctx context.Context) ([]models.Table, error)

	// CreateTable creates a table and returns it with its assigned id.
	// Returns ErrAlreadyExists when the name is taken.
	CreateTable(ctx context.Context, name string) (*models.Table, error)

	// DeleteTable removes a table by name. Returns ErrNotFound when the
	// table does not exist.
	DeleteTable(ctx context.Context, name string) error

	// ScanKeys returns entries from a table matching the query.
	ScanKeys(ctx context.Context, table string, query ScanQuery) ([]models.KeyValueEntry, error)

	// GetKey returns a single entry. Returns ErrNotFound when the key is
	// absent.
	GetKey(ctx context.Context, table, key string) (*models.KeyValueEntry, error)

	// PutKey writes an entry. Re-putting the same key/value succeeds.
	PutKey(ctx context.Context, table, key, value string) error

	// DeleteKey removes an entry. Returns ErrNotFound when the key is
	// absent.
	DeleteKey(ctx context.Context, table, key string) error

	// Close releases any connections held by the client.
	Close() error
}

package cluster

import (
	"context"
	"sync"

	"github.com/armadakv/console-sub000/pkg/log"
)

// Registry owns the single cluster client for the process. The client is
// constructed lazily on first use and shared by all callers afterwards.
type Registry struct {
	mu     sync.RWMutex
	client Client
	cfg    Config
	dial   func(ctx context.Context, cfg Config) (Client, error)
}

// NewRegistry creates a registry that will connect with the given config on
// first Get.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:  cfg,
		dial: Connect,
	}
}

// Get returns the shared client, constructing it if this is the first call.
// Construction happens at most once even under concurrent first access: the
// common path holds only the read lock, and the write path re-checks after
// upgrading because another caller may have finished connecting in between.
// A failed construction is not cached; the next Get retries.
func (r *Registry) Get(ctx context.Context) (Client, error) {
	r.mu.RLock()
	client := r.client
	r.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		return r.client, nil
	}

	client, err := r.dial(ctx, r.cfg)
	if err != nil {
		log.Warn().Err(err).Str("address", r.cfg.Address).Msg("Cluster client construction failed")
		return nil, err
	}

	log.Info().Str("address", r.cfg.Address).Msg("Connected to cluster")
	r.client = client
	return client, nil
}

// Close releases the cached client, if any. It is safe to call more than
// once and safe to call concurrently with Get.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

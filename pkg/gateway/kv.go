// Package gateway validates console requests and forwards them to the
// cluster client. The gateways hold no state between calls.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/armadakv/console-sub000/pkg/cluster"
	"github.com/armadakv/console-sub000/pkg/models"
)

// DefaultScanLimit bounds a key scan when the caller does not pass a limit.
const DefaultScanLimit = 100

// KeyValue validates and forwards key-value operations.
type KeyValue struct {
	client    cluster.Client
	scanLimit int
}

// NewKeyValue creates a key-value gateway around the given client.
// Non-positive scanLimit falls back to DefaultScanLimit.
func NewKeyValue(client cluster.Client, scanLimit int) *KeyValue {
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	return &KeyValue{client: client, scanLimit: scanLimit}
}

// List scans a table. Prefix filtering and start/end range filtering are
// mutually exclusive, and a range needs both bounds. With neither filter the
// scan is a full listing bounded by limit.
func (g *KeyValue) List(ctx context.Context, table, prefix, start, end string, limit int) ([]models.KeyValueEntry, error) {
	if table == "" {
		return nil, validationf("table is required")
	}
	if prefix != "" && (start != "" || end != "") {
		return nil, validationf("Cannot specify both prefix and start/end range")
	}
	if (start == "") != (end == "") {
		return nil, validationf("Both start and end must be specified for a range scan")
	}
	if limit <= 0 {
		limit = g.scanLimit
	}

	entries, err := g.client.ScanKeys(ctx, table, cluster.ScanQuery{
		Prefix: prefix,
		Start:  start,
		End:    end,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("scan table %q: %w", table, err)
	}
	return entries, nil
}

// Get returns one entry. Absent keys surface cluster.ErrNotFound.
func (g *KeyValue) Get(ctx context.Context, table, key string) (*models.KeyValueEntry, error) {
	if table == "" {
		return nil, validationf("table is required")
	}
	if key == "" {
		return nil, validationf("key is required")
	}

	entry, err := g.client.GetKey(ctx, table, key)
	if err != nil {
		return nil, fmt.Errorf("get key %q from table %q: %w", key, table, err)
	}
	return entry, nil
}

// Put writes one entry. Re-putting the same key/value succeeds.
func (g *KeyValue) Put(ctx context.Context, table, key, value string) error {
	if table == "" {
		return validationf("table is required")
	}
	if key == "" {
		return validationf("key is required")
	}

	if err := g.client.PutKey(ctx, table, key, value); err != nil {
		return fmt.Errorf("put key %q into table %q: %w", key, table, err)
	}
	return nil
}

// Delete removes one entry. Deleting an absent key is a success.
func (g *KeyValue) Delete(ctx context.Context, table, key string) error {
	if table == "" {
		return validationf("table is required")
	}
	if key == "" {
		return validationf("key is required")
	}

	err := g.client.DeleteKey(ctx, table, key)
	if err != nil && !errors.Is(err, cluster.ErrNotFound) {
		return fmt.Errorf("delete key %q from table %q: %w", key, table, err)
	}
	return nil
}

// Package history persists recent status aggregation snapshots so the
// dashboard can show how cluster health evolved.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/armadakv/console-sub000/pkg/log"
	"github.com/armadakv/console-sub000/pkg/models"
)

// Store keeps a bounded ring of status snapshots in SQLite.
type Store struct {
	db        *sql.DB
	retention int
	mu        sync.RWMutex
}

// NewStore opens (or creates) the snapshot database at dbPath. retention
// caps how many snapshots are kept; non-positive values use
// DefaultRetention.
func NewStore(dbPath string, retention int) (*Store, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}

	ctx := context.Background()

	// Enable WAL mode for better concurrency
	if _, err := database.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrDatabaseError, err)
	}

	if _, err := database.ExecContext(ctx, Schema); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to initialize schema: %w", ErrDatabaseError, err)
	}

	return &Store{db: database, retention: retention}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one aggregation result and prunes anything older than the
// retention window.
func (s *Store) Record(servers []models.NodeStatus) (*models.StatusSnapshot, error) {
	payload, err := json.Marshal(servers)
	if err != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %w", ErrDatabaseError, err)
	}

	snapshot := &models.StatusSnapshot{
		ID:      uuid.NewString(),
		TakenAt: time.Now().UTC(),
		Servers: servers,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, taken_at, servers) VALUES (?, ?, ?)`,
		snapshot.ID, snapshot.TakenAt, string(payload),
	); err != nil {
		return nil, fmt.Errorf("%w: insert snapshot: %w", ErrDatabaseError, err)
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?
		)`,
		s.retention,
	); err != nil {
		return nil, fmt.Errorf("%w: prune snapshots: %w", ErrDatabaseError, err)
	}

	log.Debug().
		Str("snapshot_id", snapshot.ID).
		Int("servers", len(servers)).
		Str("payload_size", humanize.Bytes(uint64(len(payload)))).
		Msg("Recorded status snapshot")

	return snapshot, nil
}

// Recent returns up to n snapshots, newest first. Non-positive n returns the
// whole retained window.
func (s *Store) Recent(n int) ([]models.StatusSnapshot, error) {
	if n <= 0 || n > s.retention {
		n = s.retention
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, taken_at, servers FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query snapshots: %w", ErrDatabaseError, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close snapshot rows")
		}
	}()

	snapshots := make([]models.StatusSnapshot, 0, n)
	for rows.Next() {
		var snapshot models.StatusSnapshot
		var payload string
		if err := rows.Scan(&snapshot.ID, &snapshot.TakenAt, &payload); err != nil {
			return nil, fmt.Errorf("%w: scan snapshot: %w", ErrDatabaseError, err)
		}
		if err := json.Unmarshal([]byte(payload), &snapshot.Servers); err != nil {
			return nil, fmt.Errorf("%w: decode snapshot %s: %w", ErrDatabaseError, snapshot.ID, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return snapshots, nil
}

// Count returns the number of retained snapshots.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM snapshots`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return count, nil
}

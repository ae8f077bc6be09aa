package history

// Schema contains the SQL statements to create the snapshot history schema.
const Schema = `
-- Snapshots table: one row per recorded status aggregation
CREATE TABLE IF NOT EXISTS snapshots (
    id       TEXT PRIMARY KEY,
    taken_at DATETIME NOT NULL,
    servers  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at);
`

// DefaultRetention is the number of snapshots kept before pruning.
const DefaultRetention = 100

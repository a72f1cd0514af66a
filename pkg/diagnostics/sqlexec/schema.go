package sqlexec

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// TableName is the request table.
const TableName = "statement_diagnostics_requests"

// Schema creates the request table. Timestamps are TEXT in TimeLayout and
// min_execution_latency is INTEGER milliseconds; declared types are kept
// plain so neither driver converts values behind our back.
const Schema = `
CREATE TABLE IF NOT EXISTS statement_diagnostics_requests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    statement_fingerprint TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    statement_diagnostics_id INTEGER,
    requested_at TEXT NOT NULL,
    min_execution_latency INTEGER,
    expires_at TEXT,
    sampling_probability REAL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stmt_diag_fingerprint
    ON statement_diagnostics_requests(statement_fingerprint, completed);
CREATE INDEX IF NOT EXISTS idx_stmt_diag_expires_at
    ON statement_diagnostics_requests(expires_at);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

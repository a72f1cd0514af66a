// Package sqlexec is the query execution service behind the diagnostics
// coordinator.
//
// An Executor accepts a batch of parameterized statements and returns the
// rows of each one. A batch is one transaction; a failing statement rolls
// back the whole batch and surfaces as a *diagnostics.ExecutionError.
//
// # SQLite Backend
//
// SQLite is the provided Executor. Two database/sql drivers are supported:
//
//   - "sqlite": modernc.org/sqlite, pure Go, the default
//   - "sqlite3": github.com/mattn/go-sqlite3, requires cgo
//
// Busy timeout and WAL mode are passed in the DSN so that every pooled
// connection is configured, not only the first one.
//
// # Basic Usage
//
//	exec, err := sqlexec.NewSQLite(&sqlexec.Config{
//	    Driver:      sqlexec.DriverModernc,
//	    Path:        "data/stmtdiag.db",
//	    WALMode:     true,
//	    BusyTimeout: 5 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exec.Close()
//
//	results, err := exec.Execute(ctx, sqlexec.Statement{
//	    SQL:  "SELECT count(1) AS count FROM statement_diagnostics_requests WHERE statement_fingerprint = ?",
//	    Args: []any{fingerprint},
//	})
//
// # Storage Format
//
// Timestamps are stored as fixed-width UTC text (TimeLayout) so that SQL
// string comparison orders them, and durations as integer milliseconds.
package sqlexec

package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mercator-hq/stmtdiag/pkg/diagnostics/sqlexec"
)

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TempExecutor creates a SQLite executor (modernc driver) on a temporary
// file that is closed when the test ends.
func TempExecutor(t *testing.T) *sqlexec.SQLite {
	t.Helper()

	exec, err := sqlexec.NewSQLite(&sqlexec.Config{
		Driver:       sqlexec.DriverModernc,
		Path:         filepath.Join(t.TempDir(), "stmtdiag.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to create SQLite executor: %v", err)
	}
	t.Cleanup(func() { exec.Close() })

	return exec
}

// MarkCompleted plays the capture subsystem: it completes request id and
// attaches diagnosticsID.
func MarkCompleted(t *testing.T, exec sqlexec.Executor, id string, diagnosticsID int64) {
	t.Helper()

	_, err := exec.Execute(context.Background(), sqlexec.Statement{
		SQL:  "UPDATE statement_diagnostics_requests SET completed = 1, statement_diagnostics_id = ? WHERE id = CAST(? AS INTEGER)",
		Args: []any{diagnosticsID, id},
	})
	if err != nil {
		t.Fatalf("MarkCompleted(%s) failed: %v", id, err)
	}
}

// SetExpiresAt overwrites expires_at of request id.
func SetExpiresAt(t *testing.T, exec sqlexec.Executor, id string, expiresAt time.Time) {
	t.Helper()

	_, err := exec.Execute(context.Background(), sqlexec.Statement{
		SQL:  "UPDATE statement_diagnostics_requests SET expires_at = ? WHERE id = CAST(? AS INTEGER)",
		Args: []any{sqlexec.FormatTime(expiresAt), id},
	})
	if err != nil {
		t.Fatalf("SetExpiresAt(%s) failed: %v", id, err)
	}
}

// RawRow reads the stored columns of request id, bypassing the coordinator.
func RawRow(t *testing.T, exec sqlexec.Executor, id string) sqlexec.Row {
	t.Helper()

	results, err := exec.Execute(context.Background(), sqlexec.Statement{
		SQL:  "SELECT * FROM statement_diagnostics_requests WHERE id = CAST(? AS INTEGER)",
		Args: []any{id},
	})
	if err != nil {
		t.Fatalf("RawRow(%s) failed: %v", id, err)
	}
	if len(results) == 0 || len(results[0].Rows) != 1 {
		t.Fatalf("RawRow(%s): expected exactly one row", id)
	}
	return results[0].Rows[0]
}

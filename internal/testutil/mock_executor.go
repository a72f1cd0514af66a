package testutil

import (
	"context"
	"fmt"
	"sync"

	"mercator-hq/stmtdiag/pkg/diagnostics/sqlexec"
)

// MockResponse is the scripted outcome of one Execute call.
type MockResponse struct {
	Results []sqlexec.Result
	Err     error
}

// MockExecutor is a scripted implementation of sqlexec.Executor for
// testing. Each Execute call consumes the next response in order and
// records the statements it was given.
type MockExecutor struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     [][]sqlexec.Statement
	closed    bool
}

// NewMockExecutor creates a mock executor that replays responses in order.
func NewMockExecutor(responses ...MockResponse) *MockExecutor {
	return &MockExecutor{responses: responses}
}

// Execute records stmts and returns the next scripted response.
func (m *MockExecutor) Execute(ctx context.Context, stmts ...sqlexec.Statement) ([]sqlexec.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, stmts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock executor: unexpected Execute call #%d", len(m.calls))
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Results, resp.Err
}

// Calls returns the statements of every Execute call so far.
func (m *MockExecutor) Calls() [][]sqlexec.Statement {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([][]sqlexec.Statement, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Remaining returns the number of unconsumed responses.
func (m *MockExecutor) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}

// Close marks the executor closed.
func (m *MockExecutor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// CountResult returns a single-row count result.
func CountResult(n int64) []sqlexec.Result {
	return []sqlexec.Result{{
		Columns: []string{"count"},
		Rows:    []sqlexec.Row{{"count": n}},
	}}
}

// IDResult returns one row per id in an "id" column.
func IDResult(ids ...string) []sqlexec.Result {
	rows := make([]sqlexec.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, sqlexec.Row{"id": id})
	}
	return []sqlexec.Result{{Columns: []string{"id"}, Rows: rows}}
}

// EmptyResult returns a single statement result without rows.
func EmptyResult() []sqlexec.Result {
	return []sqlexec.Result{{Rows: []sqlexec.Row{}}}
}

package diagnostics

import (
	"context"
	"math"
	"time"
)

// Request is a single statement diagnostics request.
type Request struct {
	// ID is assigned by the store on insert (string-encoded integer).
	ID string `json:"id"`

	// StatementFingerprint identifies the normalized statement shape.
	StatementFingerprint string `json:"statement_fingerprint"`

	// Completed is set by the capture subsystem once a trace was collected.
	Completed bool `json:"completed"`

	// DiagnosticsID references the captured bundle. Empty until Completed.
	DiagnosticsID string `json:"statement_diagnostics_id,omitempty"`

	// RequestedAt is when the request was created.
	RequestedAt time.Time `json:"requested_at"`

	// MinExecutionLatency restricts capture to executions slower than this.
	// Zero means any execution qualifies.
	MinExecutionLatency time.Duration `json:"min_execution_latency,omitempty"`

	// ExpiresAt is nil for requests that never expire.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// MaxDurationSeconds is the longest duration parameter that is stored
// exactly. Larger values saturate at this bound.
const MaxDurationSeconds = math.MaxInt64 / float64(time.Second)

// CreateParams are the inputs of a create call. Zero values mean "not set"
// and the matching column is left to the store default.
type CreateParams struct {
	Fingerprint                string
	SamplingProbability        float64
	MinExecutionLatencySeconds float64
	ExpiresAfterSeconds        float64
}

// Stats counts requests by derived state.
type Stats struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Expired   int64 `json:"expired"`
}

// Total returns the number of requests covered by the stats.
func (s *Stats) Total() int64 {
	return s.Pending + s.Completed + s.Expired
}

// Coordinator is the request lifecycle API consumed by higher-level
// interfaces such as the CLI.
type Coordinator interface {
	// List returns every request that is not expired or is completed.
	List(ctx context.Context) ([]*Request, error)

	// Create inserts a new request unless one is already pending for the
	// fingerprint. It returns the new request ID.
	Create(ctx context.Context, params CreateParams) (string, error)

	// Cancel expires a pending request and returns its ID.
	Cancel(ctx context.Context, requestID string) (string, error)

	// Stats counts requests by state.
	Stats(ctx context.Context) (*Stats, error)
}

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mercator-hq/stmtdiag/pkg/diagnostics"
	"mercator-hq/stmtdiag/pkg/diagnostics/sqlexec"
	"mercator-hq/stmtdiag/pkg/telemetry/logging"
	"mercator-hq/stmtdiag/pkg/telemetry/tracing"
)

// CreateMode selects how Create enforces the one-pending-request rule.
type CreateMode string

const (
	// CreateTwoPhase checks for a pending request and inserts in two
	// separate batches.
	CreateTwoPhase CreateMode = "two_phase"
	// CreateAtomic checks and inserts in one batch with a conditional insert.
	CreateAtomic CreateMode = "atomic"
)

// Operation names used for logging and metrics.
const (
	OpList   = "list"
	OpCreate = "create"
	OpCancel = "cancel"
	OpStats  = "stats"
)

// Outcome labels reported to the Recorder.
const (
	OutcomeSuccess   = "success"
	OutcomeConflict  = "conflict"
	OutcomeNotFound  = "not_found"
	OutcomeIntegrity = "integrity"
	OutcomeError     = "error"
)

// Recorder observes completed coordinator operations.
type Recorder interface {
	ObserveOperation(operation, outcome string, duration time.Duration)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock overrides the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithRecorder reports every operation to r.
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) {
		c.recorder = r
	}
}

// WithTracer creates a span per operation. Defaults to a noop tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		c.tracer = tracer
	}
}

// WithCreateMode selects the create mode. Defaults to CreateTwoPhase.
func WithCreateMode(mode CreateMode) Option {
	return func(c *Coordinator) {
		c.mode = mode
	}
}

// Coordinator implements diagnostics.Coordinator on top of a
// sqlexec.Executor. It holds no request state of its own; every call reads
// and writes the store.
type Coordinator struct {
	exec     sqlexec.Executor
	now      func() time.Time
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
	mode     CreateMode
}

var _ diagnostics.Coordinator = (*Coordinator)(nil)

// New creates a coordinator that reaches the store through exec.
func New(exec sqlexec.Executor, opts ...Option) *Coordinator {
	c := &Coordinator{
		exec: exec,
		now:  time.Now,
		mode: CreateTwoPhase,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default().With("component", "diagnostics.coordinator")
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer(tracing.InstrumentationName)
	}
	return c
}

// Mode returns the configured create mode.
func (c *Coordinator) Mode() CreateMode {
	return c.mode
}

const table = sqlexec.TableName

// pendingPredicate matches requests that are neither completed nor expired.
// It binds one argument: the current time. diagnostics.IsPending is the Go
// form of the same predicate.
const pendingPredicate = "completed = 0 AND (expires_at IS NULL OR expires_at > ?)"

// activePredicate matches requests that belong in a listing. It binds one
// argument: the current time. diagnostics.IsActive is the Go form of the
// same predicate.
const activePredicate = "expires_at > ? OR expires_at IS NULL OR completed = 1"

// requestColumnsSQL selects the columns decodeRequest reads.
const requestColumnsSQL = `CAST(id AS TEXT) AS id, statement_fingerprint, completed,
		CAST(statement_diagnostics_id AS TEXT) AS statement_diagnostics_id,
		requested_at, min_execution_latency, expires_at`

const (
	listSQL = `SELECT ` + requestColumnsSQL + `
		FROM ` + table + `
		WHERE ` + activePredicate + `
		ORDER BY ` + table + `.id`

	countPendingSQL = `SELECT count(1) AS count FROM ` + table + `
		WHERE statement_fingerprint = ? AND ` + pendingPredicate

	cancelSQL = `UPDATE ` + table + ` SET expires_at = ?
		WHERE id = ? AND ` + pendingPredicate + `
		RETURNING CAST(id AS TEXT) AS id`

	statsSQL = `SELECT
		COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0) AS completed,
		COALESCE(SUM(CASE WHEN ` + pendingPredicate + ` THEN 1 ELSE 0 END), 0) AS pending,
		COALESCE(SUM(CASE WHEN completed = 0 AND expires_at <= ? THEN 1 ELSE 0 END), 0) AS expired
		FROM ` + table

	returningID = " RETURNING CAST(id AS TEXT) AS id"
)

// List returns every request that has no expiry, has not expired yet, or
// has completed, in insertion order. It returns an empty slice when nothing
// matches.
func (c *Coordinator) List(ctx context.Context) (requests []*diagnostics.Request, err error) {
	ctx, done := c.begin(ctx, OpList)
	defer func() { done(err) }()

	results, err := c.exec.Execute(ctx, sqlexec.Statement{
		SQL:  listSQL,
		Args: []any{sqlexec.FormatTime(c.now())},
	})
	if err != nil {
		return nil, err
	}

	requests = []*diagnostics.Request{}
	if len(results) == 0 {
		return requests, nil
	}

	for _, row := range results[0].Rows {
		req, err := decodeRequest(row)
		if err != nil {
			return nil, &diagnostics.IntegrityError{
				Operation: "decode request " + row.String("id"),
				Cause:     err,
			}
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// checkPending fails with a ConflictError if a pending request exists for
// fingerprint at now.
func (c *Coordinator) checkPending(ctx context.Context, fingerprint string, now time.Time) error {
	results, err := c.exec.Execute(ctx, countStatement(fingerprint, now))
	if err != nil {
		return err
	}

	count, err := singleCount(results, "check pending requests")
	if err != nil {
		return err
	}
	if count > 0 {
		return diagnostics.NewConflictError(fingerprint)
	}
	return nil
}

// Create inserts a new request for params.Fingerprint and returns its ID.
//
// In CreateTwoPhase mode the pending check and the insert are two separate
// batches, so two concurrent calls for the same fingerprint can both pass
// the check and both insert. Use CreateAtomic when the store is shared by
// concurrent writers.
func (c *Coordinator) Create(ctx context.Context, params diagnostics.CreateParams) (id string, err error) {
	ctx = logging.WithFingerprint(ctx, params.Fingerprint)
	ctx, done := c.begin(ctx, OpCreate)
	defer func() { done(err) }()

	requestedAt := c.now()
	cols := requestColumns(params, requestedAt)

	if c.mode == CreateAtomic {
		return c.createAtomic(ctx, params.Fingerprint, requestedAt, cols)
	}

	if err := c.checkPending(ctx, params.Fingerprint, requestedAt); err != nil {
		return "", err
	}

	results, err := c.exec.Execute(ctx, sqlexec.Statement{
		SQL: "INSERT INTO " + table + " (" + cols.names() + ") VALUES (" +
			cols.placeholders() + ")" + returningID,
		Args: cols.args(),
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 || len(results[0].Rows) == 0 {
		return "", diagnostics.NewIntegrityError("insert request")
	}

	id = results[0].Rows[0].String("id")
	c.logger.InfoContext(ctx, "diagnostics request created", "request_id", id)
	return id, nil
}

// createAtomic runs the pending count and a conditional insert in one
// batch, so both see the same snapshot of the store.
func (c *Coordinator) createAtomic(ctx context.Context, fingerprint string, now time.Time, cols columnSet) (string, error) {
	insert := sqlexec.Statement{
		SQL: "INSERT INTO " + table + " (" + cols.names() + ") SELECT " +
			cols.placeholders() + " WHERE NOT EXISTS (SELECT 1 FROM " + table +
			" WHERE statement_fingerprint = ? AND " + pendingPredicate + ")" + returningID,
		Args: append(cols.args(), fingerprint, sqlexec.FormatTime(now)),
	}

	results, err := c.exec.Execute(ctx, countStatement(fingerprint, now), insert)
	if err != nil {
		return "", err
	}

	count, err := singleCount(results, "check pending requests")
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", diagnostics.NewConflictError(fingerprint)
	}
	if len(results) < 2 {
		return "", diagnostics.NewIntegrityError("insert request")
	}
	if len(results[1].Rows) == 0 {
		return "", diagnostics.NewConflictError(fingerprint)
	}

	id := results[1].Rows[0].String("id")
	c.logger.InfoContext(ctx, "diagnostics request created", "request_id", id, "mode", string(CreateAtomic))
	return id, nil
}

// Cancel expires the pending request requestID and returns its ID.
// Completed, expired, cancelled and unknown requests all yield a
// NotFoundError.
func (c *Coordinator) Cancel(ctx context.Context, requestID string) (id string, err error) {
	ctx = logging.WithRequestID(ctx, requestID)
	ctx, done := c.begin(ctx, OpCancel)
	defer func() { done(err) }()

	// IDs are store-assigned integers; anything else cannot match a row.
	rowID, parseErr := strconv.ParseInt(strings.TrimSpace(requestID), 10, 64)
	if parseErr != nil {
		return "", diagnostics.NewNotFoundError(requestID)
	}

	results, err := c.exec.Execute(ctx, sqlexec.Statement{
		SQL: cancelSQL,
		Args: []any{
			sqlexec.FormatTime(diagnostics.CancelledAt),
			rowID,
			sqlexec.FormatTime(c.now()),
		},
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", diagnostics.NewIntegrityError("cancel request")
	}
	if len(results[0].Rows) == 0 {
		return "", diagnostics.NewNotFoundError(requestID)
	}

	id = results[0].Rows[0].String("id")
	c.logger.InfoContext(ctx, "diagnostics request cancelled")
	return id, nil
}

// Stats counts requests by derived state at the current time.
func (c *Coordinator) Stats(ctx context.Context) (stats *diagnostics.Stats, err error) {
	ctx, done := c.begin(ctx, OpStats)
	defer func() { done(err) }()

	now := sqlexec.FormatTime(c.now())
	results, err := c.exec.Execute(ctx, sqlexec.Statement{
		SQL:  statsSQL,
		Args: []any{now, now},
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 || len(results[0].Rows) == 0 {
		return nil, diagnostics.NewIntegrityError("count requests")
	}

	row := results[0].Rows[0]
	stats = &diagnostics.Stats{}
	if stats.Pending, err = row.Int64("pending"); err != nil {
		return nil, &diagnostics.IntegrityError{Operation: "count requests", Cause: err}
	}
	if stats.Completed, err = row.Int64("completed"); err != nil {
		return nil, &diagnostics.IntegrityError{Operation: "count requests", Cause: err}
	}
	if stats.Expired, err = row.Int64("expired"); err != nil {
		return nil, &diagnostics.IntegrityError{Operation: "count requests", Cause: err}
	}
	return stats, nil
}

// begin tags ctx with a fresh operation ID, starts the operation span and
// returns a function that logs, records and ends it.
func (c *Coordinator) begin(ctx context.Context, operation string) (context.Context, func(error)) {
	ctx = logging.WithOperationID(ctx, uuid.NewString())
	ctx, span := c.tracer.Start(ctx, "coordinator."+operation,
		trace.WithAttributes(tracing.OperationAttributes(operation,
			logging.GetFingerprint(ctx), logging.GetRequestID(ctx))...),
		trace.WithAttributes(attribute.String(tracing.AttrCreateMode, string(c.mode))))
	start := time.Now()

	return ctx, func(err error) {
		duration := time.Since(start)
		outcome := outcomeOf(err)

		span.SetAttributes(attribute.String(tracing.AttrOutcome, outcome))
		tracing.SetStatus(span, err)
		defer span.End()

		if err != nil {
			level := slog.LevelError
			if outcome == OutcomeConflict || outcome == OutcomeNotFound {
				level = slog.LevelInfo
			}
			c.logger.Log(ctx, level, "diagnostics operation failed",
				"operation", operation,
				"outcome", outcome,
				"error", err)
		} else {
			c.logger.DebugContext(ctx, "diagnostics operation completed",
				"operation", operation,
				"duration", duration)
		}

		if c.recorder != nil {
			c.recorder.ObserveOperation(operation, outcome, duration)
		}
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, diagnostics.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, diagnostics.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, diagnostics.ErrIntegrity):
		return OutcomeIntegrity
	default:
		return OutcomeError
	}
}

func countStatement(fingerprint string, now time.Time) sqlexec.Statement {
	return sqlexec.Statement{
		SQL:  countPendingSQL,
		Args: []any{fingerprint, sqlexec.FormatTime(now)},
	}
}

// singleCount reads the count column of the first result, which must hold
// exactly one row.
func singleCount(results []sqlexec.Result, operation string) (int64, error) {
	if len(results) == 0 || len(results[0].Rows) == 0 {
		return 0, diagnostics.NewIntegrityError(operation)
	}
	count, err := results[0].Rows[0].Int64("count")
	if err != nil {
		return 0, &diagnostics.IntegrityError{Operation: operation, Cause: err}
	}
	return count, nil
}

func decodeRequest(row sqlexec.Row) (*diagnostics.Request, error) {
	req := &diagnostics.Request{
		ID:                   row.String("id"),
		StatementFingerprint: row.String("statement_fingerprint"),
		DiagnosticsID:        row.String("statement_diagnostics_id"),
	}

	completed, err := row.Bool("completed")
	if err != nil {
		return nil, fmt.Errorf("completed: %w", err)
	}
	req.Completed = completed

	req.RequestedAt, err = sqlexec.ParseTime(row.String("requested_at"))
	if err != nil {
		return nil, fmt.Errorf("requested_at: %w", err)
	}

	latency, err := row.Int64("min_execution_latency")
	if err != nil {
		return nil, fmt.Errorf("min_execution_latency: %w", err)
	}
	req.MinExecutionLatency = sqlexec.ParseDuration(latency)

	if s, ok := row.NullString("expires_at"); ok {
		expiresAt, err := sqlexec.ParseTime(s)
		if err != nil {
			return nil, fmt.Errorf("expires_at: %w", err)
		}
		req.ExpiresAt = &expiresAt
	}

	return req, nil
}

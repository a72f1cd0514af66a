// Package diagnostics defines statement diagnostics requests and the
// errors shared by the coordinator and the query execution layer.
//
// # Requests
//
// A diagnostics request asks the capture subsystem to record a detailed
// execution trace the next time a statement with a given fingerprint runs.
// Requests live in the statement_diagnostics_requests table and are only
// ever mutated in two ways:
//
//   - the capture subsystem sets completed and statement_diagnostics_id
//   - the coordinator cancels a request by moving expires_at to the epoch
//
// Records are never deleted. Whether a request is pending, completed or
// expired is derived from its columns at read time:
//
//	diagnostics.IsPending(req, now) // not completed, not expired
//	diagnostics.IsActive(req, now)  // listed by the coordinator
//
// # Layers
//
//  1. sqlexec - executes batches of parameterized statements, one
//     transaction per batch (SQLite via modernc.org/sqlite or mattn/go-sqlite3)
//  2. coordinator - List, Create, Cancel and Stats on top of an Executor
//  3. monitor - cron-scheduled survey that publishes request counts
//
// # Errors
//
// Callers should surface ConflictError and NotFoundError verbatim. An
// IntegrityError or ExecutionError indicates a system fault:
//
//	id, err := coord.Create(ctx, diagnostics.CreateParams{Fingerprint: fp})
//	switch {
//	case errors.Is(err, diagnostics.ErrConflict):
//	    // a pending request exists, cancel it first
//	case err != nil:
//	    return err
//	}
package diagnostics

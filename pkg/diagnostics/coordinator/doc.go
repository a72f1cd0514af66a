// Package coordinator implements the statement diagnostics request
// lifecycle: listing relevant requests, creating a request when none is
// pending for the fingerprint, and cancelling a pending request.
//
// All state lives in the request store. Each operation issues one batch
// through a sqlexec.Executor, except Create in the default two-phase mode,
// which issues the pending check and the insert as two batches:
//
//	coord := coordinator.New(exec,
//	    coordinator.WithRecorder(collector),
//	    coordinator.WithCreateMode(coordinator.CreateAtomic),
//	)
//	id, err := coord.Create(ctx, diagnostics.CreateParams{
//	    Fingerprint:         "SELECT _ FROM t WHERE k = _",
//	    ExpiresAfterSeconds: 3600,
//	})
//
// Errors from the executor are returned unchanged and never retried.
package coordinator

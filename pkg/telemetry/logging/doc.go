// Package logging provides structured logging on top of log/slog.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with operation IDs, request IDs and fingerprints
//   - A log level that can be changed at runtime (config reload)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	slog.SetDefault(logger.Slog())
//
//	ctx = logging.WithOperationID(ctx, uuid.NewString())
//	slog.InfoContext(ctx, "request created", "request_id", id)
//	// {"msg":"request created","request_id":"7","operation_id":"..."}
//
// Records logged through Slog() pick up the context fields automatically
// through ContextHandler, so packages that only know *slog.Logger still get
// them.
package logging

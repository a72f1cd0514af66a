package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// OperationIDKey is the context key for the ID of one coordinator call.
	OperationIDKey contextKey = "operation_id"

	// RequestIDKey is the context key for diagnostics request IDs.
	RequestIDKey contextKey = "request_id"

	// FingerprintKey is the context key for statement fingerprints.
	FingerprintKey contextKey = "fingerprint"
)

// WithOperationID adds an operation ID to the context.
func WithOperationID(ctx context.Context, operationID string) context.Context {
	return context.WithValue(ctx, OperationIDKey, operationID)
}

// GetOperationID retrieves the operation ID from the context.
func GetOperationID(ctx context.Context) string {
	if operationID, ok := ctx.Value(OperationIDKey).(string); ok {
		return operationID
	}
	return ""
}

// WithRequestID adds a diagnostics request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the diagnostics request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithFingerprint adds a statement fingerprint to the context.
func WithFingerprint(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, FingerprintKey, fingerprint)
}

// GetFingerprint retrieves the statement fingerprint from the context.
func GetFingerprint(ctx context.Context) string {
	if fingerprint, ok := ctx.Value(FingerprintKey).(string); ok {
		return fingerprint
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if operationID := GetOperationID(ctx); operationID != "" {
		fields = append(fields, string(OperationIDKey), operationID)
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, string(RequestIDKey), requestID)
	}
	if fingerprint := GetFingerprint(ctx); fingerprint != "" {
		fields = append(fields, string(FingerprintKey), fingerprint)
	}

	return fields
}

// ContextHandler is a slog.Handler that adds the context fields to every
// record logged with a context.
type ContextHandler struct {
	next slog.Handler
}

// NewContextHandler wraps next.
func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

// Enabled reports whether next handles level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds the context fields to r and passes it on.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if fields := extractContextFields(ctx); len(fields) > 0 {
			r = r.Clone()
			r.Add(fields...)
		}
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}

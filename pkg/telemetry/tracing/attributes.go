package tracing

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys of coordinator spans.
const (
	AttrOperation   = "stmtdiag.operation"
	AttrOutcome     = "stmtdiag.outcome"
	AttrFingerprint = "stmtdiag.statement_fingerprint"
	AttrRequestID   = "stmtdiag.request_id"
	AttrCreateMode  = "stmtdiag.create_mode"
)

// OperationAttributes returns the attributes of a coordinator operation
// span. Empty values are left out.
func OperationAttributes(operation, fingerprint, requestID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(AttrOperation, operation)}
	if fingerprint != "" {
		attrs = append(attrs, attribute.String(AttrFingerprint, fingerprint))
	}
	if requestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, requestID))
	}
	return attrs
}

package logging

import (
	"context"
	"testing"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()

	ctx = WithOperationID(ctx, "op-123")
	if got := GetOperationID(ctx); got != "op-123" {
		t.Errorf("GetOperationID() = %q, want %q", got, "op-123")
	}

	ctx = WithRequestID(ctx, "17")
	if got := GetRequestID(ctx); got != "17" {
		t.Errorf("GetRequestID() = %q, want %q", got, "17")
	}

	ctx = WithFingerprint(ctx, "SELECT _")
	if got := GetFingerprint(ctx); got != "SELECT _" {
		t.Errorf("GetFingerprint() = %q, want %q", got, "SELECT _")
	}
}

func TestContextKeys_Empty(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		get  func(context.Context) string
	}{
		{"OperationID", GetOperationID},
		{"RequestID", GetRequestID},
		{"Fingerprint", GetFingerprint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.get(ctx); got != "" {
				t.Errorf("Get%s() = %q, want empty string", tt.name, got)
			}
		})
	}
}

func TestExtractContextFields(t *testing.T) {
	tests := []struct {
		name       string
		setupCtx   func(context.Context) context.Context
		wantFields map[string]string
	}{
		{
			name:       "empty context",
			setupCtx:   func(ctx context.Context) context.Context { return ctx },
			wantFields: map[string]string{},
		},
		{
			name: "operation ID only",
			setupCtx: func(ctx context.Context) context.Context {
				return WithOperationID(ctx, "op-1")
			},
			wantFields: map[string]string{"operation_id": "op-1"},
		},
		{
			name: "all fields",
			setupCtx: func(ctx context.Context) context.Context {
				ctx = WithOperationID(ctx, "op-2")
				ctx = WithRequestID(ctx, "3")
				ctx = WithFingerprint(ctx, "SELECT _")
				return ctx
			},
			wantFields: map[string]string{
				"operation_id": "op-2",
				"request_id":   "3",
				"fingerprint":  "SELECT _",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := extractContextFields(tt.setupCtx(context.Background()))

			fieldsMap := make(map[string]string)
			for i := 0; i < len(fields); i += 2 {
				fieldsMap[fields[i].(string)] = fields[i+1].(string)
			}

			for key, expectedValue := range tt.wantFields {
				if gotValue, ok := fieldsMap[key]; !ok {
					t.Errorf("Expected field %q not found", key)
				} else if gotValue != expectedValue {
					t.Errorf("Field %q = %q, want %q", key, gotValue, expectedValue)
				}
			}
			if len(fieldsMap) != len(tt.wantFields) {
				t.Errorf("Got %d fields, want %d. Fields: %v",
					len(fieldsMap), len(tt.wantFields), fieldsMap)
			}
		})
	}
}

func TestContextOverwrite(t *testing.T) {
	ctx := WithRequestID(context.Background(), "1")
	ctx = WithRequestID(ctx, "2")

	if got := GetRequestID(ctx); got != "2" {
		t.Errorf("After overwrite, GetRequestID() = %q, want %q", got, "2")
	}
}

func BenchmarkExtractContextFields(b *testing.B) {
	ctx := context.Background()
	ctx = WithOperationID(ctx, "op-bench")
	ctx = WithRequestID(ctx, "1")
	ctx = WithFingerprint(ctx, "SELECT _")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = extractContextFields(ctx)
	}
}

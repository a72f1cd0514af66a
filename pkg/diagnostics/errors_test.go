package diagnostics

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConflictError(t *testing.T) {
	err := NewConflictError("SELECT _")

	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Error() = %q, want it to mention \"already exists\"", err.Error())
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("errors.Is(err, ErrConflict) should be true")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ConflictError should not match ErrNotFound")
	}

	wrapped := fmt.Errorf("create: %w", err)
	var ce *ConflictError
	if !errors.As(wrapped, &ce) {
		t.Fatal("errors.As should find ConflictError through wrapping")
	}
	if ce.Fingerprint != "SELECT _" {
		t.Errorf("Fingerprint = %q, want %q", ce.Fingerprint, "SELECT _")
	}
}

func TestIntegrityError(t *testing.T) {
	err := NewIntegrityError("insert request")

	if err.Error() != "failed to insert request" {
		t.Errorf("Error() = %q, want %q", err.Error(), "failed to insert request")
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Error("errors.Is(err, ErrIntegrity) should be true")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("42")

	if !strings.Contains(err.Error(), "no pending request found") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !strings.HasSuffix(err.Error(), "42") {
		t.Errorf("Error() = %q, want it to end with the request id", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) should be true")
	}
}

func TestExecutionError(t *testing.T) {
	cause := errors.New("disk I/O error")

	tests := []struct {
		name string
		err  *ExecutionError
		want string
	}{
		{
			name: "without statement",
			err:  NewExecutionError("sqlite", "begin", cause),
			want: "execution error [backend=sqlite, operation=begin]: disk I/O error",
		},
		{
			name: "with statement",
			err:  NewStatementError("sqlite", "query", 1, cause),
			want: "execution error [backend=sqlite, operation=query, statement=1]: disk I/O error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("Unwrap should expose the cause")
			}
		})
	}
}

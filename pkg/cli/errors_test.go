package cli

import (
	"errors"
	"fmt"
	"testing"

	"mercator-hq/stmtdiag/pkg/diagnostics"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("format", "unknown output format")

	expected := "config error in format: unknown output format"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("cancel", inner)

	if err.Error() != "command cancel failed: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to its cause")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "conflict", err: NewCommandError("create", diagnostics.NewConflictError("fp")), want: ExitConflict},
		{name: "not found", err: NewCommandError("cancel", diagnostics.NewNotFoundError("9")), want: ExitNotFound},
		{name: "integrity", err: fmt.Errorf("wrapped: %w", diagnostics.NewIntegrityError("insert request")), want: ExitIntegrity},
		{name: "config", err: NewConfigError("format", "bad"), want: ExitUsage},
		{name: "execution", err: diagnostics.NewExecutionError("sqlite", "commit", errors.New("disk I/O error")), want: ExitError},
		{name: "other", err: errors.New("unknown"), want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

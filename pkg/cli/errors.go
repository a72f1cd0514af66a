package cli

import (
	"errors"
	"fmt"

	"mercator-hq/stmtdiag/pkg/diagnostics"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitUsage     = 2
	ExitConflict  = 3
	ExitNotFound  = 4
	ExitIntegrity = 5
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps err to a process exit code. Coordinator outcomes get their
// own codes so scripts can tell a conflict from a failure.
func ExitCode(err error) int {
	var cfgErr *ConfigError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, diagnostics.ErrConflict):
		return ExitConflict
	case errors.Is(err, diagnostics.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, diagnostics.ErrIntegrity):
		return ExitIntegrity
	case errors.As(err, &cfgErr):
		return ExitUsage
	default:
		return ExitError
	}
}

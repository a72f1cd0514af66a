package diagnostics

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrConflict  = errors.New("pending request already exists")
	ErrIntegrity = errors.New("integrity violation")
	ErrNotFound  = errors.New("pending request not found")
)

// ConflictMessage is the user-facing text of a ConflictError.
const ConflictMessage = "A pending request for the requested fingerprint already exists. " +
	"Cancel the existing request first and try again."

// ExecutionError is returned when the query execution service fails.
// The coordinator passes it to callers unchanged and never retries.
type ExecutionError struct {
	Backend   string // Executor backend ("sqlite", "sqlite3", ...)
	Operation string // Failed step ("begin", "query", "scan", "commit", ...)
	Statement int    // Index of the failing statement in the batch, -1 if none
	Cause     error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Statement >= 0 {
		return fmt.Sprintf("execution error [backend=%s, operation=%s, statement=%d]: %v",
			e.Backend, e.Operation, e.Statement, e.Cause)
	}
	return fmt.Sprintf("execution error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionError creates an ExecutionError that is not tied to a statement.
func NewExecutionError(backend, operation string, cause error) *ExecutionError {
	return &ExecutionError{
		Backend:   backend,
		Operation: operation,
		Statement: -1,
		Cause:     cause,
	}
}

// NewStatementError creates an ExecutionError for statement index i.
func NewStatementError(backend, operation string, i int, cause error) *ExecutionError {
	return &ExecutionError{
		Backend:   backend,
		Operation: operation,
		Statement: i,
		Cause:     cause,
	}
}

// ConflictError means a pending request already exists for the fingerprint.
type ConflictError struct {
	Fingerprint string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return ConflictMessage
}

// Is matches ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError.
func NewConflictError(fingerprint string) *ConflictError {
	return &ConflictError{Fingerprint: fingerprint}
}

// IntegrityError means a statement that must return exactly one row
// returned none. It points at a bug or an inconsistent store, not at bad
// user input.
type IntegrityError struct {
	Operation string
	Cause     error // Optional, e.g. a row that could not be decoded
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
	}
	return "failed to " + e.Operation
}

// Unwrap returns the underlying cause error.
func (e *IntegrityError) Unwrap() error {
	return e.Cause
}

// Is matches ErrIntegrity.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// NewIntegrityError creates a new IntegrityError. operation completes the
// sentence "failed to ...".
func NewIntegrityError(operation string) *IntegrityError {
	return &IntegrityError{Operation: operation}
}

// NotFoundError means no currently pending request matched the ID. It does
// not distinguish completed, cancelled, expired or unknown requests.
type NotFoundError struct {
	RequestID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no pending request found for the given id: %s", e.RequestID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(requestID string) *NotFoundError {
	return &NotFoundError{RequestID: requestID}
}

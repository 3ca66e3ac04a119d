// Package apperrors defines structured application error types, allowing a
// clear distinction between error classes (configuration, multiplication
// runs, report output, server) while carrying the underlying cause.
//
// All error types implement Unwrap where a cause exists, so errors.Is and
// errors.As work across package boundaries.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The run exceeded its time budget.
	ExitErrorMismatch = 3   // The algorithms produced different products.
	ExitErrorConfig   = 4   // Invalid configuration or input.
	ExitErrorCanceled = 130 // Canceled by the user (SIGINT).
)

// ConfigError represents a user configuration error, such as an invalid
// flag value or an out-of-range order.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// RunError wraps a failure of one algorithm run together with the
// algorithm name and the order it was invoked with.
type RunError struct {
	Algorithm string
	Order     int
	Cause     error
}

// Error returns the message of the cause prefixed with the run identity.
func (e RunError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s (order %d): %v", e.Algorithm, e.Order, e.Cause)
}

// Unwrap returns the cause.
func (e RunError) Unwrap() error { return e.Cause }

// NewRunError wraps cause, returning nil when cause is nil.
func NewRunError(algorithm string, order int, cause error) error {
	if cause == nil {
		return nil
	}
	return RunError{Algorithm: algorithm, Order: order, Cause: cause}
}

// OutputError reports a failure to write the benchmark report or another
// output artifact.
type OutputError struct {
	Path  string
	Cause error
}

// Error returns the error message for an OutputError.
func (e OutputError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Cause)
}

// Unwrap returns the cause.
func (e OutputError) Unwrap() error { return e.Cause }

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the descriptive message and the cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps err with a formatted context message using %w. It returns
// nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a context cancellation or deadline
// error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError represents invalid input, for API request and
// configuration validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

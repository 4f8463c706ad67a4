package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes returned to the operating system.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The check exceeded --timeout.
	ExitErrorMismatch = 3   // Strategies disagreed on the verdict.
	ExitErrorConfig   = 4   // Invalid flags, environment or config file.
	ExitErrorParse    = 5   // The candidate is not a valid integer.
	ExitErrorCanceled = 130 // Canceled by the user (SIGINT).
)

// ParseError reports that external input is not a valid integer. The
// interactive session ends without consulting the oracle.
type ParseError struct {
	// Input is the text that failed to parse, trimmed.
	Input string
	// Cause is the underlying parser error, if any.
	Cause error
}

// Error returns a message naming the offending input.
func (e ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid integer %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("invalid integer %q", e.Input)
}

// Unwrap returns the parser error.
func (e ParseError) Unwrap() error { return e.Cause }

// ConfigError represents an invalid flag, environment variable or
// configuration file value.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CheckError wraps the failure of a named strategy.
type CheckError struct {
	// Strategy is the name of the strategy that failed.
	Strategy string
	// Cause is the underlying error.
	Cause error
}

// Error returns the strategy name and cause.
func (e CheckError) Error() string {
	if e.Strategy == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

// Unwrap returns the cause.
func (e CheckError) Unwrap() error { return e.Cause }

// TimeoutError represents a check that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the configured deadline.
	Limit time.Duration
	// Cause is the underlying context error, if any.
	Cause error
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap returns the cause.
func (e TimeoutError) Unwrap() error { return e.Cause }

// ValidationError identifies a configuration field that failed validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps err with a formatted context message. It returns nil
// when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var (
		parseErr  ParseError
		configErr ConfigError
		validErr  ValidationError
		timeout   TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &parseErr):
		return ExitErrorParse
	case errors.As(err, &configErr), errors.As(err, &validErr):
		return ExitErrorConfig
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// Package apperrors defines structured application error types and exit
// codes, separating user input errors (parse, configuration) from failures
// of a primality strategy while carrying the underlying cause.
//
// Error Wrapping Guidelines:
// Errors are wrapped with fmt.Errorf and %w. Every type with a cause
// implements Unwrap() so errors.Is() and errors.As() see through it.
package apperrors

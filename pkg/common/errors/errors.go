package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the bodyflow library

var (
	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError describes a rejected configuration value. It wraps
// ErrInvalidConfiguration so callers can match the whole class with
// errors.Is.
type ValidationError struct {
	Module string      // package that rejected the value, e.g. "throttle"
	Field  string      // configuration field name
	Value  interface{} // the rejected value
	Reason string      // why it was rejected
	Hint   string      // optional suggestion for fixing it
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{Module: module, Field: field, Value: value, Reason: reason}
}

// WithHint attaches a suggestion and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

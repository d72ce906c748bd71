// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidAdType is returned when an ad type is not a known value.
	ErrInvalidAdType = errors.New("invalid ad type")

	// ErrInvalidRequestStatus is returned when a request status is not a known value.
	ErrInvalidRequestStatus = errors.New("invalid request status")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrAccountDisabled is returned when an operation requires an active
	// account but the account has been disabled.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrAlreadyVerified is returned when attempting to verify an account
	// that has already completed email verification.
	ErrAlreadyVerified = errors.New("account already verified")
)

// ValidationError carries the field that failed validation alongside the
// underlying sentinel error, so API layers can build precise messages while
// still matching with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError, so errors.Is(err, ErrValidation)
	// matches every validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError carries every human-readable message produced while
// validating a payload. Messages keep the order in which the fields were checked.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError from the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap returns ErrValidation to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Add appends a message to the error.
func (e *ValidationError) Add(message string) {
	e.Messages = append(e.Messages, message)
}

// HasErrors reports whether at least one message has been collected.
func (e *ValidationError) HasErrors() bool {
	return len(e.Messages) > 0
}

// Package service provides application-level services for managing posts.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrPostNotFound indicates that the requested post does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrPostNotFound = errors.New("post not found")
)

// PostServiceError is a custom error type for post service errors.
type PostServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for PostServiceError.
func (e *PostServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("post service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("post service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PostServiceError) Unwrap() error {
	return e.Err
}

// NewPostServiceError creates a new PostServiceError.
func NewPostServiceError(operation, message string, err error) *PostServiceError {
	return &PostServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

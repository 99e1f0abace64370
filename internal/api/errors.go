package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
)

// Fixed client-facing messages.
const (
	MsgPostNotFound       = "Post not found"
	MsgPostDeleted        = "Post deleted!"
	MsgInvalidCredentials = "Invalid credentials."
	MsgUnexpectedError    = "An unexpected error occurred"
	MsgRequestTooLarge    = "Request body too large"
	StatusError           = "error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case shared.IsBodyTooLarge(err):
		return http.StatusRequestEntityTooLarge

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid JWT Token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return MsgInvalidCredentials

	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return MsgPostNotFound

	case errors.Is(err, store.ErrDuplicate):
		return "Post already exists"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid post data"

	case shared.IsBodyTooLarge(err):
		return MsgRequestTooLarge

	default:
		return MsgUnexpectedError
	}
}

// HandleAPIError writes the error response for err. Not-found and validation
// errors use the post-specific payloads; everything else uses the standard
// ErrorResponse with a sanitized message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondValidationErrors(w, r, validationErr.Messages)
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		respondPostNotFound(w, r)
	default:
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
	}
}

func respondPostNotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusNotFound, StatusResponse{Status: MsgPostNotFound})
}

func respondValidationErrors(w http.ResponseWriter, r *http.Request, messages []string) {
	if messages == nil {
		messages = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
		Status: StatusError,
		Errors: messages,
	})
}

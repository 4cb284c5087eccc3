package api

import (
	"errors"
	"net/http"

	"github.com/OPpuolitaival/tasklist/internal/domain"
	"github.com/OPpuolitaival/tasklist/internal/service/auth"
	"github.com/OPpuolitaival/tasklist/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Internal error types never leak to clients through the status alone.
//
// A malformed resource ID maps to 404, not 400: an ID that cannot be
// parsed names a resource that cannot exist, and it gets the same answer
// as any other absent resource.
func MapErrorToStatusCode(err error) int {
	switch {
	// Credential failures deliberately map to 400, not 401: the login
	// endpoint has no bearer token to be unauthorized about, and the
	// response must be identical for unknown users, wrong passwords and
	// deactivated accounts.
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest

	// Token errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors, including tasks owned by someone else
	case store.IsNotFoundError(err),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	// Validation and bad input
	case errors.Is(err, domain.ErrValidation),
		store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// given error. Raw error strings never reach clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, domain.ErrInvalidID):
		return "Not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "A user with that username already exists."

	case errors.Is(err, domain.ErrValidation):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return vErr.Message
		}
		return "Validation failed"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// ValidationFields turns an error into a per-field message map for the
// error response body, mirroring the shape form validation produces.
// Returns nil when the error carries no field information.
func ValidationFields(err error) map[string]string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Field != "" {
		return map[string]string{vErr.Field: vErr.Message}
	}
	if errors.Is(err, store.ErrUsernameExists) {
		return map[string]string{"username": "A user with that username already exists."}
	}
	return nil
}

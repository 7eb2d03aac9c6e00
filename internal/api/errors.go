package api

import (
	"errors"
	"net/http"

	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes at the
// API boundary so internal error types never shape responses directly.
func MapErrorToStatusCode(err error) int {
	switch {
	// A failed verification link wraps its token-level cause, so this
	// check must precede the bare token sentinels below.
	case errors.Is(err, service.ErrInvalidVerificationToken):
		return http.StatusBadRequest

	// Authentication failures
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization failures
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrUserInactive):
		return http.StatusForbidden

	// Missing resources
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Client mistakes
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrAlreadyVerified),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for an error. Raw
// error strings are logged but never exposed.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Before the bare token sentinels: failed verification links wrap
	// their token-level cause.
	case errors.Is(err, service.ErrInvalidVerificationToken):
		return "Invalid or expired verification link"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Incorrect email or password"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrEmailNotVerified):
		return "Email not verified. Please verify your email before logging in."

	case errors.Is(err, service.ErrUserInactive):
		return "Inactive user"

	case errors.Is(err, service.ErrForbidden):
		return "Access to this resource is restricted"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, service.ErrAlreadyVerified):
		return "Email already verified"

	case errors.Is(err, service.ErrVerificationEmailFailed):
		return "Failed to send verification email"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid input data"

	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError is the single funnel handlers use for service
// errors.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"not owner", service.ErrForbidden, http.StatusForbidden},
		{"unverified email", service.ErrEmailNotVerified, http.StatusForbidden},
		{"inactive user", service.ErrUserInactive, http.StatusForbidden},
		{"user missing", store.ErrUserNotFound, http.StatusNotFound},
		{"task missing", store.ErrTaskNotFound, http.StatusNotFound},
		{"duplicate email", store.ErrEmailExists, http.StatusBadRequest},
		{"bad verification link", service.ErrInvalidVerificationToken, http.StatusBadRequest},
		{"already verified", service.ErrAlreadyVerified, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"email send failure", service.ErrVerificationEmailFailed, http.StatusInternalServerError},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},

		// Verification failures carry their token-level cause; the link
		// sentinel must win over the wrapped auth sentinel.
		{"expired verification link",
			fmt.Errorf("%w: %w", service.ErrInvalidVerificationToken, auth.ErrExpiredToken),
			http.StatusBadRequest},
		{"garbage verification link",
			fmt.Errorf("%w: %w", service.ErrInvalidVerificationToken, auth.ErrInvalidToken),
			http.StatusBadRequest},
		{"access token used as verification link",
			fmt.Errorf("%w: %w", service.ErrInvalidVerificationToken, auth.ErrWrongTokenType),
			http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("internal details never surface", func(t *testing.T) {
		err := errors.New("pq: duplicate key value violates unique constraint \"users_email_key\"")
		msg := GetSafeErrorMessage(err)
		assert.Equal(t, "An unexpected error occurred", msg)
	})

	t.Run("wrapped sentinels keep their message", func(t *testing.T) {
		err := fmt.Errorf("verify: %w", service.ErrInvalidVerificationToken)
		assert.Equal(t, "Invalid or expired verification link", GetSafeErrorMessage(err))
	})

	t.Run("verification link message wins over wrapped token cause", func(t *testing.T) {
		for _, cause := range []error{auth.ErrExpiredToken, auth.ErrInvalidToken, auth.ErrWrongTokenType} {
			err := fmt.Errorf("%w: %w", service.ErrInvalidVerificationToken, cause)
			assert.Equal(t, "Invalid or expired verification link", GetSafeErrorMessage(err), "cause %v", cause)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}

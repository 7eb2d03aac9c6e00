package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskforge/taskforge-api/internal/api/shared"
)

// AuthOperations is the slice of the auth service the handler consumes.
type AuthOperations interface {
	Login(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, tokenString string) error
	ResendVerification(ctx context.Context, email string) error
}

// AuthHandler serves login and the email verification endpoints.
type AuthHandler struct {
	auth AuthOperations
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthOperations) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/token. Credentials arrive as form fields
// (username holds the email) and a successful response carries a bearer
// access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// VerifyEmail handles GET /auth/verify_email/{token}, the target of the
// link sent to the user's address.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Verification token required")
		return
	}

	if err := h.auth.VerifyEmail(r.Context(), token); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Email verified successfully",
	})
}

// ResendVerification handles POST /auth/resend_verification for accounts
// whose original email never arrived.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req ResendVerificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "A valid email is required")
		return
	}

	if err := h.auth.ResendVerification(r.Context(), req.Email); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, MessageResponse{
		Message: "Verification email sent",
	})
}

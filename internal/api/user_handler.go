package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// UserOperations is the slice of the user service the handler consumes.
type UserOperations interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, requesterID, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error)
	UpdateUser(ctx context.Context, requesterID, userID int64, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, requesterID, userID int64) error
}

// UserHandler serves registration and account management endpoints.
type UserHandler struct {
	users UserOperations
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserOperations) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /users/. The account starts unverified; a
// verification link goes out by email before the response is written.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation failed: email and a password of 8-72 characters are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		// The account may exist even though the verification email did
		// not go out; the client can ask for a resend.
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// Me handles GET /users/me, returning the account behind the bearer
// token.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.GetCurrentUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// List handles GET /users/ with skip/limit pagination.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := paginationParams(r)

	users, err := h.users.ListUsers(r.Context(), skip, limit)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Get handles GET /users/{id}. Accounts other than the requester's own
// are off limits.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	requester, userID, ok := h.requesterAndID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), requester.ID, userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Update handles PUT /users/{id} with a partial payload.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	requester, userID, ok := h.requesterAndID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation failed: supplied fields must be a valid email or a password of 8-72 characters")
		return
	}

	user, err := h.users.UpdateUser(r.Context(), requester.ID, userID, req.toDomain())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}. Owned tasks go with the account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester, userID, ok := h.requesterAndID(w, r)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), requester.ID, userID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// requesterAndID resolves the authenticated user and the {id} URL
// parameter, writing the error response itself when either is missing.
func (h *UserHandler) requesterAndID(w http.ResponseWriter, r *http.Request) (*domain.User, int64, bool) {
	requester, ok := shared.GetCurrentUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, 0, false
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid user ID")
		return nil, 0, false
	}
	return requester, userID, true
}

// paginationParams reads skip/limit query parameters, leaving clamping to
// the service layer.
func paginationParams(r *http.Request) (skip, limit int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil {
		skip = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = v
	}
	return skip, limit
}

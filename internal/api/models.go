package api

import (
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
)

// Request and response DTOs. Successful user and task responses serialize
// the domain types directly; credential and token fields carry `json:"-"`
// tags there and never leave the server.

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateUserRequest carries a partial account update. Absent fields stay
// untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ResendVerificationRequest asks for a fresh verification email.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse is the successful login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse wraps informational messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest is the payload for task creation. Status defaults to
// pending when omitted.
type CreateTaskRequest struct {
	Title       string     `json:"title"                 validate:"required,min=1"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"      validate:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest carries a partial task update.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"       validate:"omitempty,min=1"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"      validate:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (r UpdateTaskRequest) toDomain() domain.TaskUpdate {
	update := domain.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		update.Status = &status
	}
	return update
}

func (r UpdateUserRequest) toDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Email:    r.Email,
		Password: r.Password,
		IsActive: r.IsActive,
	}
}

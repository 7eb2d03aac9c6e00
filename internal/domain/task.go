package domain

import (
	"errors"
	"time"
)

// Common task validation errors
var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrMissingTaskOwner  = errors.New("task must have an owning user")
)

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a task bound to the given owner. Status defaults to
// pending when empty. Returns an error if validation fails.
func NewTask(ownerID int64, title, description string, status TaskStatus, dueDate *time.Time) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	if t.UserID == 0 {
		return ErrMissingTaskOwner
	}
	return nil
}

// TaskUpdate describes a partial update to a task. Only non-nil fields
// are applied.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	DueDate     *time.Time
}

// Apply merges the update onto a copy of the stored task and bumps the
// update timestamp. The result should be validated before persisting.
func (up TaskUpdate) Apply(t Task) Task {
	if up.Title != nil {
		t.Title = *up.Title
	}
	if up.Description != nil {
		t.Description = *up.Description
	}
	if up.Status != nil {
		t.Status = *up.Status
	}
	if up.DueDate != nil {
		t.DueDate = up.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	return t
}

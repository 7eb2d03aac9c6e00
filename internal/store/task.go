package store

import (
	"context"
	"database/sql"

	"github.com/taskforge/taskforge-api/internal/domain"
)

// TaskSortFields is the allow-list of fields tasks may be sorted by.
// Any other value is silently ignored and the listing stays unsorted.
var TaskSortFields = map[string]bool{
	"id":         true,
	"title":      true,
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"status":     true,
}

// TaskListOptions narrows and orders a task listing.
type TaskListOptions struct {
	// Status filters by exact status match when non-nil.
	Status *domain.TaskStatus

	// SortBy names the sort field; values outside TaskSortFields are
	// ignored. Order is "asc" unless it case-insensitively equals "desc".
	SortBy string
	Order  string

	// Skip/Limit implement offset pagination.
	Skip  int
	Limit int
}

// TaskStore defines the interface for task data persistence.
// Ownership is NOT checked at this layer; callers must compare the task's
// UserID against the requester before exposing or mutating a record.
type TaskStore interface {
	// Create saves a new task to the store and fills in the generated ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the owner's tasks filtered, sorted and paginated per
	// opts. Only tasks belonging to ownerID are ever returned.
	List(ctx context.Context, ownerID int64, opts TaskListOptions) ([]domain.Task, error)

	// Update writes the complete task record back to the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore backed by the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// TaskService orchestrates ownership-checked task mutations. The
// requester's identity always comes from the authenticated bearer token,
// never from a URL parameter. Checks run in a fixed order on every
// operation: existence first (NotFound), then ownership (Forbidden).
type TaskService struct {
	tasks  store.TaskStore
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, db *sql.DB, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:  tasks,
		db:     db,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask creates a task bound to the requesting owner. Status
// defaults to pending when empty.
func (s *TaskService) CreateTask(
	ctx context.Context,
	ownerID int64,
	title, description string,
	status domain.TaskStatus,
	dueDate *time.Time,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, description, status, dueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task", "error", err, "user_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "user_id", ownerID)
	return task, nil
}

// GetTask returns a single task after the ownership gate.
func (s *TaskService) GetTask(ctx context.Context, requesterID, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != requesterID {
		return nil, ErrForbidden
	}
	return task, nil
}

// ListTasks returns the requester's tasks filtered, sorted and paginated
// per opts. Sort fields outside the allow-list leave the listing
// unsorted; they are never an error.
func (s *TaskService) ListTasks(ctx context.Context, requesterID int64, opts store.TaskListOptions) ([]domain.Task, error) {
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidTaskStatus)
	}

	tasks, err := s.tasks.List(ctx, requesterID, opts)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "user_id", requesterID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update to an owned task. Only supplied
// fields change; ownership itself is immutable.
func (s *TaskService) UpdateTask(ctx context.Context, requesterID, taskID int64, update domain.TaskUpdate) (*domain.Task, error) {
	var updated domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tasks.WithTx(tx)

		current, err := txStore.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if current.UserID != requesterID {
			return ErrForbidden
		}

		updated = update.Apply(*current)
		if err := updated.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		return txStore.Update(ctx, &updated)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, ErrForbidden) ||
			errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		s.logger.Error("failed to update task", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Debug("task updated", "task_id", taskID)
	return &updated, nil
}

// DeleteTask removes an owned task.
func (s *TaskService) DeleteTask(ctx context.Context, requesterID, taskID int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tasks.WithTx(tx)

		current, err := txStore.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if current.UserID != requesterID {
			return ErrForbidden
		}

		return txStore.Delete(ctx, taskID)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, ErrForbidden) {
			return err
		}
		s.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug("task deleted", "task_id", taskID)
	return nil
}

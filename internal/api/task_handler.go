package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// errInvalidStatusFilter rejects status query values outside the enum.
var errInvalidStatusFilter = errors.New("status must be one of pending, in_progress, completed")

// TaskOperations is the slice of the task service the handler consumes.
type TaskOperations interface {
	CreateTask(ctx context.Context, ownerID int64, title, description string, status domain.TaskStatus, dueDate *time.Time) (*domain.Task, error)
	GetTask(ctx context.Context, requesterID, taskID int64) (*domain.Task, error)
	ListTasks(ctx context.Context, requesterID int64, opts store.TaskListOptions) ([]domain.Task, error)
	UpdateTask(ctx context.Context, requesterID, taskID int64, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, requesterID, taskID int64) error
}

// TaskHandler serves the task CRUD endpoints. Every route requires a
// bearer token; all access is scoped to the token's account.
type TaskHandler struct {
	tasks TaskOperations
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks TaskOperations) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester, ok := shared.GetCurrentUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation failed: a non-empty title is required and status must be pending, in_progress or completed")
		return
	}

	task, err := h.tasks.CreateTask(
		r.Context(),
		requester.ID,
		req.Title,
		req.Description,
		domain.TaskStatus(req.Status),
		req.DueDate,
	)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /tasks/ with optional status, sort_by, order, skip and
// limit query parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := shared.GetCurrentUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	opts, err := taskListOptions(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), requester.ID, opts)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	requester, taskID, ok := h.requesterAndID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), requester.ID, taskID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /tasks/{id} with a partial payload.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	requester, taskID, ok := h.requesterAndID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation failed: title must be non-empty and status must be pending, in_progress or completed")
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), requester.ID, taskID, req.toDomain())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester, taskID, ok := h.requesterAndID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), requester.ID, taskID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

func (h *TaskHandler) requesterAndID(w http.ResponseWriter, r *http.Request) (*domain.User, int64, bool) {
	requester, ok := shared.GetCurrentUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, 0, false
	}

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid task ID")
		return nil, 0, false
	}
	return requester, taskID, true
}

// taskListOptions parses the listing query parameters. Unknown sort
// fields are passed through; the store treats them as "unsorted" rather
// than an error.
func taskListOptions(r *http.Request) (store.TaskListOptions, error) {
	q := r.URL.Query()
	opts := store.TaskListOptions{
		SortBy: q.Get("sort_by"),
		Order:  q.Get("order"),
	}

	if raw := q.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			return opts, errInvalidStatusFilter
		}
		opts.Status = &status
	}

	if v, err := strconv.Atoi(q.Get("skip")); err == nil {
		opts.Skip = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	return opts, nil
}

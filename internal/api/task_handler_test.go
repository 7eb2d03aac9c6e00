package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/store"
)

func testTask(id, ownerID int64) *domain.Task {
	return &domain.Task{
		ID:     id,
		UserID: ownerID,
		Title:  "write report",
		Status: domain.TaskStatusPending,
	}
}

// taskRouter mounts the task routes through chi with the requester
// pre-authenticated.
func taskRouter(handler *TaskHandler, requester *domain.User) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, asUser(req, requester))
		})
	})
	r.Post("/tasks/", handler.Create)
	r.Get("/tasks/", handler.List)
	r.Get("/tasks/{id}", handler.Get)
	r.Put("/tasks/{id}", handler.Update)
	r.Delete("/tasks/{id}", handler.Delete)
	return r
}

func TestTaskHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    string
		createErr  error
		wantStatus int
	}{
		{"minimal payload", `{"title":"write report"}`, nil, http.StatusCreated},
		{"explicit status", `{"title":"write report","status":"in_progress"}`, nil, http.StatusCreated},
		{"missing title", `{"description":"no title"}`, nil, http.StatusUnprocessableEntity},
		{"unknown status", `{"title":"t","status":"done"}`, nil, http.StatusUnprocessableEntity},
		{"malformed body", `{`, nil, http.StatusBadRequest},
		{"domain rejection", `{"title":"t"}`, store.ErrInvalidEntity, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTaskOps{createTask: testTask(1, 7), createErr: tt.createErr}
			router := taskRouter(NewTaskHandler(fake), testUser(7))

			req := httptest.NewRequest(http.MethodPost, "/tasks/", bytes.NewReader([]byte(tt.payload)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, int64(7), fake.lastOwnerID)
			}
		})
	}
}

func TestTaskHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("query parameters reach the service", func(t *testing.T) {
		fake := &fakeTaskOps{listTasks: []domain.Task{*testTask(1, 7)}}
		router := taskRouter(NewTaskHandler(fake), testUser(7))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/tasks/?status=completed&sort_by=due_date&order=desc&skip=10&limit=5", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(7), fake.lastOwnerID)
		require.NotNil(t, fake.lastOpts.Status)
		assert.Equal(t, domain.TaskStatusCompleted, *fake.lastOpts.Status)
		assert.Equal(t, "due_date", fake.lastOpts.SortBy)
		assert.Equal(t, "desc", fake.lastOpts.Order)
		assert.Equal(t, 10, fake.lastOpts.Skip)
		assert.Equal(t, 5, fake.lastOpts.Limit)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		router := taskRouter(NewTaskHandler(&fakeTaskOps{}), testUser(7))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("invalid status filter", func(t *testing.T) {
		router := taskRouter(NewTaskHandler(&fakeTaskOps{}), testUser(7))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/?status=done", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestTaskHandler_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		getErr     error
		wantStatus int
	}{
		{"own task", nil, http.StatusOK},
		{"missing task", store.ErrTaskNotFound, http.StatusNotFound},
		{"someone else's task", service.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTaskOps{getTask: testTask(3, 7), getErr: tt.getErr}
			router := taskRouter(NewTaskHandler(fake), testUser(7))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/3", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, int64(3), fake.lastTaskID)
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	t.Parallel()

	t.Run("partial update", func(t *testing.T) {
		updated := testTask(3, 7)
		updated.Status = domain.TaskStatusCompleted
		fake := &fakeTaskOps{updateTask: updated}
		router := taskRouter(NewTaskHandler(fake), testUser(7))

		body := bytes.NewReader([]byte(`{"status":"completed"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tasks/3", body))

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, fake.lastUpdate.Status)
		assert.Equal(t, domain.TaskStatusCompleted, *fake.lastUpdate.Status)
		assert.Nil(t, fake.lastUpdate.Title)

		var resp domain.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, domain.TaskStatusCompleted, resp.Status)
	})

	t.Run("missing before forbidden", func(t *testing.T) {
		fake := &fakeTaskOps{updateErr: store.ErrTaskNotFound}
		router := taskRouter(NewTaskHandler(fake), testUser(7))

		body := bytes.NewReader([]byte(`{"title":"x"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tasks/9999", body))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty title", func(t *testing.T) {
		router := taskRouter(NewTaskHandler(&fakeTaskOps{}), testUser(7))

		body := bytes.NewReader([]byte(`{"title":""}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tasks/3", body))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{"own task", nil, http.StatusNoContent},
		{"missing task", store.ErrTaskNotFound, http.StatusNotFound},
		{"someone else's task", service.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTaskOps{deleteErr: tt.deleteErr}
			router := taskRouter(NewTaskHandler(fake), testUser(7))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/3", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

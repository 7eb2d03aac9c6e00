package api

import (
	"context"
	"net/http"
	"time"

	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// fakeAuthOps implements AuthOperations with scripted results.
type fakeAuthOps struct {
	loginToken  string
	loginErr    error
	verifyErr   error
	resendErr   error
	lastEmail   string
	lastToken   string
	loginCalled bool
}

func (f *fakeAuthOps) Login(ctx context.Context, email, password string) (string, error) {
	f.loginCalled = true
	f.lastEmail = email
	return f.loginToken, f.loginErr
}

func (f *fakeAuthOps) VerifyEmail(ctx context.Context, tokenString string) error {
	f.lastToken = tokenString
	return f.verifyErr
}

func (f *fakeAuthOps) ResendVerification(ctx context.Context, email string) error {
	f.lastEmail = email
	return f.resendErr
}

// fakeUserOps implements UserOperations with scripted results.
type fakeUserOps struct {
	registerUser *domain.User
	registerErr  error
	getUser      *domain.User
	getErr       error
	listUsers    []domain.User
	listErr      error
	updateUser   *domain.User
	updateErr    error
	deleteErr    error

	lastRequesterID int64
	lastUserID      int64
	lastSkip        int
	lastLimit       int
	lastUpdate      domain.UserUpdate
}

func (f *fakeUserOps) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeUserOps) GetUser(ctx context.Context, requesterID, userID int64) (*domain.User, error) {
	f.lastRequesterID, f.lastUserID = requesterID, userID
	return f.getUser, f.getErr
}

func (f *fakeUserOps) ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error) {
	f.lastSkip, f.lastLimit = skip, limit
	return f.listUsers, f.listErr
}

func (f *fakeUserOps) UpdateUser(
	ctx context.Context,
	requesterID, userID int64,
	update domain.UserUpdate,
) (*domain.User, error) {
	f.lastRequesterID, f.lastUserID, f.lastUpdate = requesterID, userID, update
	return f.updateUser, f.updateErr
}

func (f *fakeUserOps) DeleteUser(ctx context.Context, requesterID, userID int64) error {
	f.lastRequesterID, f.lastUserID = requesterID, userID
	return f.deleteErr
}

// fakeTaskOps implements TaskOperations with scripted results.
type fakeTaskOps struct {
	createTask *domain.Task
	createErr  error
	getTask    *domain.Task
	getErr     error
	listTasks  []domain.Task
	listErr    error
	updateTask *domain.Task
	updateErr  error
	deleteErr  error

	lastOwnerID int64
	lastTaskID  int64
	lastStatus  domain.TaskStatus
	lastOpts    store.TaskListOptions
	lastUpdate  domain.TaskUpdate
}

func (f *fakeTaskOps) CreateTask(
	ctx context.Context,
	ownerID int64,
	title, description string,
	status domain.TaskStatus,
	dueDate *time.Time,
) (*domain.Task, error) {
	f.lastOwnerID, f.lastStatus = ownerID, status
	return f.createTask, f.createErr
}

func (f *fakeTaskOps) GetTask(ctx context.Context, requesterID, taskID int64) (*domain.Task, error) {
	f.lastOwnerID, f.lastTaskID = requesterID, taskID
	return f.getTask, f.getErr
}

func (f *fakeTaskOps) ListTasks(
	ctx context.Context,
	requesterID int64,
	opts store.TaskListOptions,
) ([]domain.Task, error) {
	f.lastOwnerID, f.lastOpts = requesterID, opts
	return f.listTasks, f.listErr
}

func (f *fakeTaskOps) UpdateTask(
	ctx context.Context,
	requesterID, taskID int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	f.lastOwnerID, f.lastTaskID, f.lastUpdate = requesterID, taskID, update
	return f.updateTask, f.updateErr
}

func (f *fakeTaskOps) DeleteTask(ctx context.Context, requesterID, taskID int64) error {
	f.lastOwnerID, f.lastTaskID = requesterID, taskID
	return f.deleteErr
}

// asUser attaches an authenticated user to the request context the same
// way the auth middleware does.
func asUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(shared.SetCurrentUser(r.Context(), user))
}

func testUser(id int64) *domain.User {
	return &domain.User{
		ID:         id,
		Email:      "user@example.com",
		IsActive:   true,
		IsVerified: true,
	}
}

package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// mockUserStore implements store.UserStore backed by an in-memory map.
// Individual methods can be overridden through the *Fn fields.
type mockUserStore struct {
	users  map[int64]*domain.User
	nextID int64

	createFn               func(ctx context.Context, user *domain.User) error
	getByIDFn              func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	updateFn               func(ctx context.Context, user *domain.User) error
	deleteFn               func(ctx context.Context, id int64) error
	setVerificationTokenFn func(ctx context.Context, id int64, token string, expiresAt time.Time) error
	markVerifiedFn         func(ctx context.Context, id int64) error

	markVerifiedCalls int
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

// add seeds a user and returns it with an assigned ID.
func (m *mockUserStore) add(user domain.User) *domain.User {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = &user
	return &user
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	var out []domain.User
	for id := int64(1); id < m.nextID; id++ {
		if user, ok := m.users[id]; ok {
			out = append(out, *user)
		}
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for _, existing := range m.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return store.ErrEmailExists
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) SetVerificationToken(
	ctx context.Context,
	id int64,
	token string,
	expiresAt time.Time,
) error {
	if m.setVerificationTokenFn != nil {
		return m.setVerificationTokenFn(ctx, id, token, expiresAt)
	}
	user, ok := m.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.VerificationToken = &token
	user.VerificationTokenExpiresAt = &expiresAt
	return nil
}

func (m *mockUserStore) MarkVerified(ctx context.Context, id int64) error {
	m.markVerifiedCalls++
	if m.markVerifiedFn != nil {
		return m.markVerifiedFn(ctx, id)
	}
	user, ok := m.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.IsVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpiresAt = nil
	return nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// mockTaskStore implements store.TaskStore backed by an in-memory map.
type mockTaskStore struct {
	tasks  map[int64]*domain.Task
	nextID int64

	getByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	listFn    func(ctx context.Context, ownerID int64, opts store.TaskListOptions) ([]domain.Task, error)
	updateFn  func(ctx context.Context, task *domain.Task) error
	deleteFn  func(ctx context.Context, id int64) error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

func (m *mockTaskStore) add(task domain.Task) *domain.Task {
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = &task
	return &task
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	task.ID = m.nextID
	m.nextID++
	clone := *task
	m.tasks[task.ID] = &clone
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (m *mockTaskStore) List(
	ctx context.Context,
	ownerID int64,
	opts store.TaskListOptions,
) ([]domain.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, opts)
	}
	var out []domain.Task
	for id := int64(1); id < m.nextID; id++ {
		task, ok := m.tasks[id]
		if !ok || task.UserID != ownerID {
			continue
		}
		if opts.Status != nil && task.Status != *opts.Status {
			continue
		}
		out = append(out, *task)
	}
	return out, nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	clone := *task
	m.tasks[task.ID] = &clone
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// recordingVerifier implements PasswordVerifier and records which of the
// two comparison paths ran.
type recordingVerifier struct {
	compareErr   error
	compareCalls int
	dummyCalls   int
}

func (v *recordingVerifier) Compare(hashedPassword, password string) error {
	v.compareCalls++
	return v.compareErr
}

func (v *recordingVerifier) CompareDummy(password string) {
	v.dummyCalls++
}

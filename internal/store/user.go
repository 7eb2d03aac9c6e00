package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Implementations return plain domain records; user→task relationships are
// resolved through explicit TaskStore queries, never loaded implicitly.
type UserStore interface {
	// Create saves a new user to the store and fills in the generated ID.
	// The user's HashedPassword must already be set; plaintext passwords
	// never reach this layer. New records always start unverified.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address. The lookup is
	// case-sensitive, matching how emails are stored.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns users in insertion order using offset/limit pagination.
	List(ctx context.Context, skip, limit int) ([]domain.User, error)

	// Update writes the complete user record back to the store. The caller
	// must supply a full record including HashedPassword; partial merges
	// happen at the service layer.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists when the new email collides with another account.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Owned tasks are removed with the user.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// SetVerificationToken records the most recently issued email
	// verification token and its expiry on the user row.
	// Returns ErrUserNotFound if the user does not exist.
	SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time) error

	// MarkVerified flips the user's verified flag and clears any stored
	// verification token. Calling it on an already-verified user is a
	// harmless no-op at this layer.
	// Returns ErrUserNotFound if the user does not exist.
	MarkVerified(ctx context.Context, id int64) error

	// WithTx returns a UserStore backed by the given transaction so
	// multiple operations can commit atomically. The transaction is
	// created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}

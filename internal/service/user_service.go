package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// defaultListLimit bounds listings when the caller does not ask for one.
const defaultListLimit = 100

// UserService provides registration and account management. Operations on
// a specific account other than the requester's own fail with
// ErrForbidden before any lookup happens, so responses cannot be used to
// probe which IDs exist.
type UserService struct {
	users  store.UserStore
	db     *sql.DB
	hasher auth.PasswordHasher
	mailer *VerificationMailer
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	mailer *VerificationMailer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		db:     db,
		hasher: hasher,
		mailer: mailer,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new unverified account and emails the verification
// link. The account is committed before the email goes out: a failed send
// surfaces as ErrVerificationEmailFailed but leaves the account in place
// with no stored token, and a resend can recover.
func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register existing email")
			return nil, store.ErrEmailExists
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := s.mailer.Send(ctx, user)
	if err != nil {
		// The account exists; only the notification is missing.
		return user, err
	}

	if err := s.users.SetVerificationToken(ctx, user.ID, token, expiresAt); err != nil {
		s.logger.Error("failed to store verification token", "error", err, "user_id", user.ID)
		return user, fmt.Errorf("failed to store verification token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// GetUser returns the requested account. Requesters may only read their
// own record.
func (s *UserService) GetUser(ctx context.Context, requesterID, userID int64) (*domain.User, error) {
	if requesterID != userID {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns accounts in insertion order with offset pagination.
func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.users.List(ctx, skip, limit)
}

// UpdateUser applies a partial update to the requester's own account.
// Only supplied fields change; a supplied password is re-hashed before it
// is persisted and email uniqueness is re-checked by the store.
func (s *UserService) UpdateUser(ctx context.Context, requesterID, userID int64, update domain.UserUpdate) (*domain.User, error) {
	if requesterID != userID {
		return nil, ErrForbidden
	}

	if update.Password != nil {
		if err := domain.ValidatePassword(*update.Password); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	var updated domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.users.WithTx(tx)

		current, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		updated = update.Apply(*current)
		if update.Password != nil {
			hashed, err := s.hasher.Hash(*update.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			updated.HashedPassword = hashed
			updated.Password = ""
		}

		if err := updated.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		return txStore.Update(ctx, &updated)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrEmailExists) ||
			errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		s.logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("user updated", "user_id", userID)
	return &updated, nil
}

// DeleteUser removes the requester's own account. The store cascades the
// delete to the account's tasks.
func (s *UserService) DeleteUser(ctx context.Context, requesterID, userID int64) error {
	if requesterID != userID {
		return ErrForbidden
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

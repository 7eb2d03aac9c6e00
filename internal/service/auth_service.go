package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// PasswordVerifier is the credential check the auth service depends on.
// The interface lives with its consumer; auth.BcryptHasher provides the
// production implementation.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext
	// equivalent, returning nil on match.
	Compare(hashedPassword, password string) error

	// CompareDummy burns an equivalent comparison against a throwaway
	// digest so unknown-email logins cost the same as wrong-password ones.
	CompareDummy(password string)
}

// AuthService orchestrates login, bearer authentication and the email
// verification lifecycle.
type AuthService struct {
	users     store.UserStore
	tokens    auth.TokenService
	passwords PasswordVerifier
	mailer    *VerificationMailer
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users store.UserStore,
	tokens auth.TokenService,
	passwords PasswordVerifier,
	mailer *VerificationMailer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		mailer:    mailer,
		logger:    logger.With(slog.String("component", "auth_service")),
	}
}

// Login authenticates the given credentials and returns a signed access
// token. Unknown email and wrong password both fail with
// ErrInvalidCredentials; unverified accounts fail with
// ErrEmailNotVerified, deactivated ones with ErrUserInactive.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Keep the timing profile identical to the wrong-password path.
			s.passwords.CompareDummy(password)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return "", fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", ErrEmailNotVerified
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}

	token, err := s.tokens.GenerateAccessToken(ctx, user.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", "error", err, "user_id", user.ID)
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Debug("login succeeded", "user_id", user.ID)
	return token, nil
}

// CurrentUser resolves a bearer token to the account it was issued for.
// Used by the authentication middleware on every protected request.
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokens.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// The subject no longer exists; the token asserts nothing.
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

// VerifyEmail consumes a verification link token and marks the account
// verified. The operation is idempotent: verifying an already-verified
// account succeeds without a state change.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.ValidateVerificationToken(ctx, tokenString)
	if err != nil {
		s.logger.Debug("verification token rejected", "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidVerificationToken, err)
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user for verification: %w", err)
	}

	if user.IsVerified {
		s.logger.Debug("email already verified", "user_id", user.ID)
		return nil
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		s.logger.Error("failed to mark user verified", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	s.logger.Info("email verified", "user_id", user.ID)
	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// account and emails it. The stored token is only replaced after the send
// succeeds.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user for resend: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	token, expiresAt, err := s.mailer.Send(ctx, user)
	if err != nil {
		return err
	}

	if err := s.users.SetVerificationToken(ctx, user.ID, token, expiresAt); err != nil {
		s.logger.Error("failed to store verification token", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	return nil
}

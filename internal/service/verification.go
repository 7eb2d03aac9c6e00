package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/email"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

// VerificationConfig carries the settings needed to compose verification
// links.
type VerificationConfig struct {
	// BaseURL is the externally reachable base URL of the service.
	BaseURL string

	// TokenLifetime is the validity window of verification links,
	// mirrored into the email body.
	TokenLifetime time.Duration
}

// VerificationMailer issues email verification tokens and delivers the
// verification link to the user's address.
type VerificationMailer struct {
	tokens auth.TokenService
	sender email.Sender
	cfg    VerificationConfig
	logger *slog.Logger
}

// NewVerificationMailer creates a new VerificationMailer.
func NewVerificationMailer(
	tokens auth.TokenService,
	sender email.Sender,
	cfg VerificationConfig,
	logger *slog.Logger,
) *VerificationMailer {
	return &VerificationMailer{
		tokens: tokens,
		sender: sender,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "verification_mailer")),
	}
}

// Send issues a fresh verification token for the user and emails the
// verification link. It returns the token and its expiry so the caller
// can persist them after a successful send. Send itself changes no state.
func (m *VerificationMailer) Send(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, err := m.tokens.GenerateVerificationToken(ctx, user.Email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate verification token: %w", err)
	}
	expiresAt := time.Now().UTC().Add(m.cfg.TokenLifetime)

	link := fmt.Sprintf("%s/api/v1/auth/verify_email/%s",
		strings.TrimRight(m.cfg.BaseURL, "/"), token)

	msg := email.Message{
		To:      user.Email,
		Subject: "Verify your Task Manager Account",
		Body:    m.body(user.Email, link),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.Error("failed to send verification email",
			"error", err,
			"user_id", user.ID)
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrVerificationEmailFailed, err)
	}

	m.logger.Info("verification email sent", "user_id", user.ID)
	return token, expiresAt, nil
}

func (m *VerificationMailer) body(recipient, link string) string {
	hours := int(m.cfg.TokenLifetime / time.Hour)
	return fmt.Sprintf(`Hello %s,

Thank you for registering with Task Manager API!
Please click on the link below to verify your email address:

%s

This link will expire in %d hours.

If you did not register for this account, please ignore this email.

Best regards,
The Task Manager Team
`, recipient, link, hours)
}

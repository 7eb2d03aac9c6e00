package auth

import (
	"context"
	"time"
)

// Token type discriminator values carried in the "type" claim.
const (
	// TokenTypeAccess marks short-lived login tokens.
	TokenTypeAccess = "access"

	// TokenTypeEmailVerification marks the longer-lived tokens embedded
	// in email verification links.
	TokenTypeEmailVerification = "email verification"
)

// TokenService defines operations for issuing and validating the two
// kinds of signed tokens the application uses. Tokens are stateless: a
// leaked token stays valid until its expiry, there is no server-side
// revocation.
type TokenService interface {
	// GenerateAccessToken creates a signed access token whose subject is
	// the user's email.
	GenerateAccessToken(ctx context.Context, email string) (string, error)

	// ValidateAccessToken validates an access token and returns its
	// claims. Tokens of any other type are rejected with
	// ErrWrongTokenType.
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateVerificationToken creates a signed email verification token
	// whose subject is the user's email. Verification tokens live much
	// longer than access tokens.
	GenerateVerificationToken(ctx context.Context, email string) (string, error)

	// ValidateVerificationToken validates an email verification token and
	// returns its claims. The type discriminator is enforced: access
	// tokens presented here fail with ErrWrongTokenType.
	ValidateVerificationToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated contents of a token.
type Claims struct {
	// Email is the subject the token was issued for.
	Email string `json:"sub,omitempty"`

	// TokenType indicates the purpose of the token. Used to prevent
	// token misuse across different contexts.
	TokenType string `json:"type,omitempty"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

package service

import "errors"

// Common service errors. These mark the outcomes the API boundary has to
// distinguish; everything else bubbles up wrapped for logging.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases share one error (and one user-facing message) so login
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrEmailNotVerified blocks login until the address is verified.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrUserInactive blocks authentication for deactivated accounts.
	ErrUserInactive = errors.New("inactive user")

	// ErrForbidden is returned when a valid identity lacks ownership of
	// the resource it is trying to read or mutate.
	ErrForbidden = errors.New("access to this resource is restricted")

	// ErrInvalidVerificationToken covers bad signatures, expired tokens
	// and wrong token types on the email verification path. No identity
	// has been asserted yet, so this maps to a bad request, not an
	// authentication failure.
	ErrInvalidVerificationToken = errors.New("invalid or expired verification link")

	// ErrAlreadyVerified rejects a resend request for a verified address.
	ErrAlreadyVerified = errors.New("email already verified")

	// ErrVerificationEmailFailed reports a failed outbound send. The
	// registration that triggered it is NOT rolled back; the stored token
	// is simply absent and the client may request a resend.
	ErrVerificationEmailFailed = errors.New("failed to send verification email")
)

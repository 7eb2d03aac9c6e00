package domain

import (
	"errors"
	"net/mail"
	"time"
)

// Common user validation errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8
	// maxPasswordLength matches the bcrypt input limit.
	maxPasswordLength = 72
)

// User represents a registered account.
// HashedPassword is the only persisted credential; the plaintext Password
// field is populated transiently during registration and updates and is
// never serialized or stored.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"`
	HashedPassword string     `json:"-"`
	IsActive       bool       `json:"is_active"`
	IsVerified     bool       `json:"is_verified"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// VerificationToken and its expiry track the most recently issued
	// email verification token. Both are cleared once the email is
	// verified.
	VerificationToken          *string    `json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`
}

// NewUser creates a new unverified, active User with the given email and
// plaintext password and sets the creation/update timestamps.
// The caller is responsible for hashing the password before storage.
// Returns an error if validation fails.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:      email,
		Password:   password,
		IsActive:   true,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if err := validateEmail(u.Email); err != nil {
		return err
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}

	// Existing records loaded from storage carry only the hash.
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidatePassword checks a plaintext password against the length rules.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// UserUpdate describes a partial update to a user. Only non-nil fields
// are applied; Password, when present, must be re-hashed by the caller
// before the record is persisted.
type UserUpdate struct {
	Email    *string
	Password *string
	IsActive *bool
}

// Apply merges the update onto a copy of the stored user and bumps the
// update timestamp. The returned user still carries the plaintext
// Password field when one was supplied.
func (up UserUpdate) Apply(u User) User {
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Password != nil {
		u.Password = *up.Password
	}
	if up.IsActive != nil {
		u.IsActive = *up.IsActive
	}
	u.UpdatedAt = time.Now().UTC()
	return u
}

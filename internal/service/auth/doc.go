// Package auth provides the low-level credential primitives: bcrypt
// password hashing/verification and the HMAC-signed token service used for
// both login access tokens and email verification tokens.
package auth

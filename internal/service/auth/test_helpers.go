package auth

import "time"

// NewTestTokenService creates a token service with explicit lifetimes, an
// injectable clock and no clock skew tolerance. Only for use in tests.
func NewTestTokenService(
	secret string,
	accessLifetime time.Duration,
	verificationLifetime time.Duration,
	timeFunc func() time.Time,
) TokenService {
	return &hmacTokenService{
		signingKey:           []byte(secret),
		accessLifetime:       accessLifetime,
		verificationLifetime: verificationLifetime,
		timeFunc:             timeFunc,
		clockSkew:            0,
	}
}

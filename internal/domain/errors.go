package domain

import "errors"

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedIdentity  = errors.New("malformed identity from credentials path")
	ErrTokenInvalid       = errors.New("session token invalid")
	ErrTokenExpired       = errors.New("session token expired")
	ErrTokenRevoked       = errors.New("session token revoked")
)

// Token errors.
var (
	ErrTokenGeneration = errors.New("token generation failed")
	ErrSecretMissing   = errors.New("session secret not configured")
)

// External service errors.
var (
	ErrDirectoryUnavailable = errors.New("directory service unavailable")
	ErrEmailTaken           = errors.New("email already registered")
	ErrProviderUnknown      = errors.New("unknown oauth provider")
	ErrProviderExchange     = errors.New("oauth code exchange failed")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

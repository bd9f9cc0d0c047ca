package domain

import (
	"context"
	"time"
)

// DirectoryClient talks to the external user directory, the system of record
// for canonical identities.
type DirectoryClient interface {
	// VerifyCredentials checks an email/password pair against the directory.
	VerifyCredentials(ctx context.Context, email, password string) (*Identity, error)
	// UpsertOAuthIdentity resolves a provider profile to a canonical identity,
	// creating a directory record on first sight of the email. Idempotent.
	UpsertOAuthIdentity(ctx context.Context, email, name, image string) (*Identity, error)
	// Signup registers a new credentialed user.
	Signup(ctx context.Context, email, password string) error
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Sign(claims *SessionClaims) (string, error)
	Parse(token string) (*SessionClaims, error)
}

// TokenRevoker tracks revoked token ids until their natural expiry.
type TokenRevoker interface {
	Revoke(tokenID string, expiresAt time.Time)
	Revoked(tokenID string) bool
}

// IdentityNormalizer reconciles a raw auth event into a canonical identity.
type IdentityNormalizer interface {
	Normalize(ctx context.Context, event AuthEvent) (*Identity, error)
}

package usecase

import (
	"time"

	"session-hub/internal/domain"
)

// RenewSession slides an existing token's expiry forward. Pure pass-through:
// no network calls, no identity re-resolution. The token id is kept so a
// later sign-out still revokes every renewal of the same login.
type RenewSession struct {
	codec   domain.TokenCodec
	revoker domain.TokenRevoker
	maxAge  time.Duration
}

// NewRenewSession creates a new session renewer.
func NewRenewSession(c domain.TokenCodec, r domain.TokenRevoker, maxAge time.Duration) *RenewSession {
	return &RenewSession{codec: c, revoker: r, maxAge: maxAge}
}

// Execute re-signs the claims carried by tokenString with a fresh expiry.
// An already-set subject is propagated untouched; an anonymous token renews
// as anonymous.
func (uc *RenewSession) Execute(tokenString string) (string, *domain.SessionClaims, error) {
	claims, err := uc.codec.Parse(tokenString)
	if err != nil {
		return "", nil, err
	}

	if uc.revoker.Revoked(claims.TokenID) {
		return "", nil, domain.ErrTokenRevoked
	}

	claims.ExpiresAt = time.Now().Add(uc.maxAge)

	signed, err := uc.codec.Sign(claims)
	if err != nil {
		return "", nil, err
	}

	return signed, claims, nil
}

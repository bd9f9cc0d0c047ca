package usecase

import (
	"context"
	"log/slog"

	"session-hub/internal/domain"
)

// SignOut revokes a session token. Idempotent: revoking an already-revoked,
// expired, or malformed token is a quiet no-op.
type SignOut struct {
	codec   domain.TokenCodec
	revoker domain.TokenRevoker
	logger  *slog.Logger
}

// NewSignOut creates a new sign-out usecase.
func NewSignOut(c domain.TokenCodec, r domain.TokenRevoker, l *slog.Logger) *SignOut {
	return &SignOut{codec: c, revoker: r, logger: l}
}

// Execute invalidates the token. A token that fails to parse carries no
// usable session anyway, so there is nothing to revoke.
func (uc *SignOut) Execute(ctx context.Context, tokenString string) {
	if tokenString == "" {
		return
	}

	claims, err := uc.codec.Parse(tokenString)
	if err != nil {
		return
	}

	uc.revoker.Revoke(claims.TokenID, claims.ExpiresAt)
	uc.logger.InfoContext(ctx, "session signed out", "user_id", claims.Subject)
}

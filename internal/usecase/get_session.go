package usecase

import (
	"context"
	"log/slog"

	"session-hub/internal/domain"
)

// GetSession projects a session token into the view consumed by the UI on
// every request. Fails closed: any defect in the token yields the
// unauthenticated view, never an error.
type GetSession struct {
	codec   domain.TokenCodec
	revoker domain.TokenRevoker
	logger  *slog.Logger
}

// NewGetSession creates a new session projector.
func NewGetSession(c domain.TokenCodec, r domain.TokenRevoker, l *slog.Logger) *GetSession {
	return &GetSession{codec: c, revoker: r, logger: l}
}

// Execute recomputes the session view from the token.
func (uc *GetSession) Execute(ctx context.Context, tokenString string) *domain.SessionView {
	if tokenString == "" {
		return domain.Unauthenticated()
	}

	claims, err := uc.codec.Parse(tokenString)
	if err != nil {
		uc.logger.DebugContext(ctx, "session token rejected", "error", err)
		return domain.Unauthenticated()
	}

	if uc.revoker.Revoked(claims.TokenID) {
		return domain.Unauthenticated()
	}

	if !claims.Authenticated() {
		return domain.Unauthenticated()
	}

	return &domain.SessionView{
		Authenticated: true,
		User: domain.SessionUser{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Image: claims.Image,
		},
		ExpiresAt: claims.ExpiresAt,
	}
}

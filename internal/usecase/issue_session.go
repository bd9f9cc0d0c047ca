package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"session-hub/internal/domain"

	"github.com/google/uuid"
)

// IssueSession mints the session token for a login event. Invoked exactly
// once per successful provider sign-in.
type IssueSession struct {
	normalizer domain.IdentityNormalizer
	codec      domain.TokenCodec
	maxAge     time.Duration
	strict     bool
	logger     *slog.Logger
}

// NewIssueSession creates a new session issuer. When strict is set, a
// directory outage during OAuth reconciliation fails the login instead of
// degrading to an anonymous session.
func NewIssueSession(n domain.IdentityNormalizer, c domain.TokenCodec, maxAge time.Duration, strict bool, l *slog.Logger) *IssueSession {
	return &IssueSession{normalizer: n, codec: c, maxAge: maxAge, strict: strict, logger: l}
}

// Execute normalizes the event and signs the resulting token. Normalization
// always completes before signing: a token is never signed with a
// partially-resolved identity.
func (uc *IssueSession) Execute(ctx context.Context, event domain.AuthEvent) (string, *domain.SessionClaims, error) {
	now := time.Now()
	claims := &domain.SessionClaims{
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(uc.maxAge),
	}

	identity, err := uc.normalizer.Normalize(ctx, event)
	switch {
	case err == nil:
		claims.Subject = identity.ID
		claims.Email = identity.Email
		claims.Name = identity.Name
		claims.Image = identity.Image

	case errors.Is(err, domain.ErrDirectoryUnavailable) && !uc.strict:
		// The login already succeeded at the provider; degrade to an
		// anonymous session rather than bouncing the user. The UI treats a
		// subject-less token as not signed in.
		uc.logger.WarnContext(ctx, "directory unreachable, issuing anonymous session", "error", err)

	default:
		return "", nil, err
	}

	signed, err := uc.codec.Sign(claims)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to sign session token", "error", err)
		return "", nil, err
	}

	return signed, claims, nil
}

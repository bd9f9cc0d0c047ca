package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"session-hub/internal/domain"
)

// NormalizeIdentity reconciles a raw authentication event into the canonical
// directory identity.
// Implements domain.IdentityNormalizer.
type NormalizeIdentity struct {
	directory domain.DirectoryClient
	logger    *slog.Logger
}

// NewNormalizeIdentity creates a new identity normalizer.
func NewNormalizeIdentity(d domain.DirectoryClient, l *slog.Logger) *NormalizeIdentity {
	return &NormalizeIdentity{directory: d, logger: l}
}

// Normalize maps the event to a canonical identity. The credentials variant
// is checked first and never triggers a network call: the directory assigned
// its id when the password was verified. Only the OAuth variant reconciles
// against the directory.
func (uc *NormalizeIdentity) Normalize(ctx context.Context, event domain.AuthEvent) (*domain.Identity, error) {
	switch event.Kind {
	case domain.EventCredentials:
		return uc.fromCredentials(event.Credentials)
	case domain.EventOAuth:
		return uc.fromOAuth(ctx, event.OAuth)
	default:
		return nil, fmt.Errorf("%w: unknown event kind %d", domain.ErrMalformedIdentity, event.Kind)
	}
}

func (uc *NormalizeIdentity) fromCredentials(res *domain.CredentialsResult) (*domain.Identity, error) {
	if res == nil || res.ID == "" {
		return nil, fmt.Errorf("%w: credentials result has no id", domain.ErrMalformedIdentity)
	}

	return &domain.Identity{
		ID:    res.ID,
		Email: res.Email,
	}, nil
}

func (uc *NormalizeIdentity) fromOAuth(ctx context.Context, profile *domain.OAuthProfile) (*domain.Identity, error) {
	if profile == nil || profile.Email == "" {
		return nil, fmt.Errorf("%w: oauth profile has no email", domain.ErrMalformedIdentity)
	}

	identity, err := uc.directory.UpsertOAuthIdentity(ctx, profile.Email, profile.Name, profile.Image)
	if err != nil {
		uc.logger.WarnContext(ctx, "oauth identity reconciliation failed",
			"provider", profile.Provider,
			"error", err)
		return nil, err
	}

	uc.logger.DebugContext(ctx, "oauth identity reconciled",
		"provider", profile.Provider,
		"user_id", identity.ID)

	return identity, nil
}

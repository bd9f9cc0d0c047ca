// Package provider adapts external OAuth providers into the common profile
// shape. Adapters return profile facts only; reconciliation against the
// directory happens in the usecase layer.
package provider

import (
	"context"

	"session-hub/internal/domain"
)

// Provider drives the OAuth authorization-code flow for one external
// provider and normalizes the resulting profile.
type Provider interface {
	// Name returns the provider identifier (e.g. "google", "github").
	Name() string

	// AuthCodeURL returns the provider authorization URL for the given state.
	AuthCodeURL(state string) string

	// FetchProfile exchanges the authorization code and fetches the user
	// profile, mapped to the canonical field names.
	FetchProfile(ctx context.Context, code string) (*domain.OAuthProfile, error)
}

// Registry holds the configured providers by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a registry from the given providers, skipping nils.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, domain.ErrProviderUnknown
	}
	return p, nil
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"session-hub/internal/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Google implements Provider for Google sign-in.
type Google struct {
	cfg         *oauth2.Config
	userInfoURL string
}

// NewGoogle creates a Google provider. Returns nil when the client pair is
// not configured, so the registry simply skips it.
func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	if clientID == "" || clientSecret == "" {
		return nil
	}

	return &Google{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

// Name returns the provider identifier used by the registry.
func (g *Google) Name() string {
	return "google"
}

// AuthCodeURL builds the Google authorization URL.
func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// googleProfile is the OpenID Connect userinfo payload.
type googleProfile struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// FetchProfile exchanges the code and reads the userinfo endpoint.
func (g *Google) FetchProfile(ctx context.Context, code string) (*domain.OAuthProfile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderExchange, err)
	}

	body, err := fetchJSON(ctx, g.cfg.Client(ctx, tok), g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderExchange, err)
	}

	var profile googleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: unparsable userinfo response", domain.ErrProviderExchange)
	}

	return &domain.OAuthProfile{
		Provider: g.Name(),
		Email:    profile.Email,
		Name:     profile.Name,
		Image:    profile.Picture,
	}, nil
}

// fetchJSON performs a GET with the token-bearing client and reads the body
// once, capped at 1 MiB.
func fetchJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"session-hub/internal/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// GitHub implements Provider for GitHub sign-in.
type GitHub struct {
	cfg       *oauth2.Config
	userURL   string
	emailsURL string
}

// NewGitHub creates a GitHub provider. Returns nil when the client pair is
// not configured.
func NewGitHub(clientID, clientSecret, redirectURL string) *GitHub {
	if clientID == "" || clientSecret == "" {
		return nil
	}

	return &GitHub{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		userURL:   githubUserURL,
		emailsURL: githubEmailsURL,
	}
}

// Name returns the provider identifier used by the registry.
func (g *GitHub) Name() string {
	return "github"
}

// AuthCodeURL builds the GitHub authorization URL.
func (g *GitHub) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// githubProfile is the GitHub user payload. Email is null for users who
// keep their address private; the emails endpoint covers that case.
type githubProfile struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// FetchProfile exchanges the code and reads the user endpoints.
func (g *GitHub) FetchProfile(ctx context.Context, code string) (*domain.OAuthProfile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderExchange, err)
	}

	client := g.cfg.Client(ctx, tok)

	body, err := fetchJSON(ctx, client, g.userURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderExchange, err)
	}

	var profile githubProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: unparsable user response", domain.ErrProviderExchange)
	}

	email := profile.Email
	if email == "" {
		email, err = g.primaryEmail(ctx, client)
		if err != nil {
			return nil, err
		}
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	return &domain.OAuthProfile{
		Provider: g.Name(),
		Email:    email,
		Name:     name,
		Image:    profile.AvatarURL,
	}, nil
}

func (g *GitHub) primaryEmail(ctx context.Context, client *http.Client) (string, error) {
	body, err := fetchJSON(ctx, client, g.emailsURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrProviderExchange, err)
	}

	var emails []githubEmail
	if err := json.Unmarshal(body, &emails); err != nil {
		return "", fmt.Errorf("%w: unparsable emails response", domain.ErrProviderExchange)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}

	return "", nil
}

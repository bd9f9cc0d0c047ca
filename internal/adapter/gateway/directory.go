package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"session-hub/internal/domain"
)

// DirectoryGateway implements domain.DirectoryClient against the user
// directory REST API.
type DirectoryGateway struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewDirectoryGateway creates a new directory gateway with tuned HTTP transport.
func NewDirectoryGateway(baseURL string, timeout time.Duration) *DirectoryGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &DirectoryGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// flexID accepts the directory id whether it arrives as a JSON number or
// a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = flexID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*f = flexID(asNumber.String())
	return nil
}

// directoryUser is the identity record returned by the directory service.
type directoryUser struct {
	ID    flexID `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (u *directoryUser) toIdentity() *domain.Identity {
	return &domain.Identity{
		ID:    string(u.ID),
		Email: u.Email,
		Name:  u.Name,
		Image: u.Image,
	}
}

// VerifyCredentials checks an email/password pair against the directory.
// Any non-200 status or unparsable body signals invalid credentials; raw
// transport errors never escape this boundary.
func (g *DirectoryGateway) VerifyCredentials(ctx context.Context, email, password string) (*domain.Identity, error) {
	body, status, err := g.post(ctx, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: directory returned status %d", domain.ErrInvalidCredentials, status)
	}

	var user directoryUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: unparsable directory response", domain.ErrInvalidCredentials)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: directory response missing id", domain.ErrInvalidCredentials)
	}

	return user.toIdentity(), nil
}

// UpsertOAuthIdentity resolves a provider profile to a canonical identity.
// The directory merges on email and mints a record on first sight, so
// repeated calls with the same email return the same id.
func (g *DirectoryGateway) UpsertOAuthIdentity(ctx context.Context, email, name, image string) (*domain.Identity, error) {
	body, status, err := g.post(ctx, "/api/auth/oauth-signin", map[string]string{
		"email": email,
		"name":  name,
		"image": image,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: directory returned status %d", domain.ErrDirectoryUnavailable, status)
	}

	var user directoryUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: unparsable directory response", domain.ErrDirectoryUnavailable)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: directory response missing id", domain.ErrDirectoryUnavailable)
	}

	return user.toIdentity(), nil
}

// Signup registers a new credentialed user in the directory.
func (g *DirectoryGateway) Signup(ctx context.Context, email, password string) error {
	_, status, err := g.post(ctx, "/api/auth/signup", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}

	switch status {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusBadRequest, http.StatusConflict:
		return domain.ErrEmailTaken
	default:
		return fmt.Errorf("%w: directory returned status %d", domain.ErrDirectoryUnavailable, status)
	}
}

// post sends a JSON body and reads the response body once, capped at 1 MiB.
func (g *DirectoryGateway) post(ctx context.Context, path string, payload map[string]string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

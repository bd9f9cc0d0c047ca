package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"session-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

// fakeProviderServer serves a token endpoint plus userinfo payloads.
func fakeProviderServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
			return
		}
		if body, ok := routes[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
			return
		}
		http.NotFound(w, r)
	}))
}

func TestRegistry_Lookup(t *testing.T) {
	google := NewGoogle("id", "secret", "https://app.test/auth/google/callback")
	registry := NewRegistry(google, nil)

	p, err := registry.Lookup("google")
	assert.NoError(t, err)
	assert.Equal(t, "google", p.Name())

	p, err = registry.Lookup("gitlab")
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, domain.ErrProviderUnknown))
}

func TestRegistry_SkipsUnconfigured(t *testing.T) {
	// Unset client pairs construct as nil and must not register.
	registry := NewRegistry(NewGoogle("", "", ""), NewGitHub("", "", ""))

	_, err := registry.Lookup("google")
	assert.True(t, errors.Is(err, domain.ErrProviderUnknown))
	_, err = registry.Lookup("github")
	assert.True(t, errors.Is(err, domain.ErrProviderUnknown))
}

func TestGoogle_AuthCodeURL(t *testing.T) {
	google := NewGoogle("client-123", "secret", "https://app.test/auth/google/callback")

	url := google.AuthCodeURL("state-abc")

	assert.Contains(t, url, "client_id=client-123")
	assert.Contains(t, url, "state=state-abc")
	assert.Contains(t, url, "scope=openid+profile+email")
}

func TestGoogle_FetchProfile(t *testing.T) {
	server := fakeProviderServer(t, map[string]string{
		"/userinfo": `{"sub":"g-1","email":"user@example.com","name":"Test User","picture":"https://cdn.test/u.png"}`,
	})
	defer server.Close()

	google := NewGoogle("id", "secret", "https://app.test/cb")
	google.cfg.Endpoint = oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"}
	google.userInfoURL = server.URL + "/userinfo"

	profile, err := google.FetchProfile(context.Background(), "code-123")

	assert.NoError(t, err)
	assert.Equal(t, "google", profile.Provider)
	assert.Equal(t, "user@example.com", profile.Email)
	assert.Equal(t, "Test User", profile.Name)
	assert.Equal(t, "https://cdn.test/u.png", profile.Image)
}

func TestGoogle_FetchProfile_ExchangeFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	google := NewGoogle("id", "secret", "https://app.test/cb")
	google.cfg.Endpoint = oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"}

	profile, err := google.FetchProfile(context.Background(), "bad-code")

	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, domain.ErrProviderExchange))
}

func TestGitHub_FetchProfile_PublicEmail(t *testing.T) {
	server := fakeProviderServer(t, map[string]string{
		"/user": `{"login":"octo","email":"octo@example.com","name":"Octo Cat","avatar_url":"https://cdn.test/octo.png"}`,
	})
	defer server.Close()

	gh := NewGitHub("id", "secret", "https://app.test/cb")
	gh.cfg.Endpoint = oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"}
	gh.userURL = server.URL + "/user"

	profile, err := gh.FetchProfile(context.Background(), "code-123")

	assert.NoError(t, err)
	assert.Equal(t, "github", profile.Provider)
	assert.Equal(t, "octo@example.com", profile.Email)
	assert.Equal(t, "Octo Cat", profile.Name)
	assert.Equal(t, "https://cdn.test/octo.png", profile.Image)
}

func TestGitHub_FetchProfile_PrivateEmail(t *testing.T) {
	server := fakeProviderServer(t, map[string]string{
		"/user":   `{"login":"octo","email":"","name":"","avatar_url":""}`,
		"/emails": `[{"email":"secondary@example.com","primary":false,"verified":true},{"email":"primary@example.com","primary":true,"verified":true}]`,
	})
	defer server.Close()

	gh := NewGitHub("id", "secret", "https://app.test/cb")
	gh.cfg.Endpoint = oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"}
	gh.userURL = server.URL + "/user"
	gh.emailsURL = server.URL + "/emails"

	profile, err := gh.FetchProfile(context.Background(), "code-123")

	assert.NoError(t, err)
	assert.Equal(t, "primary@example.com", profile.Email)
	// Display name falls back to the login when unset.
	assert.Equal(t, "octo", profile.Name)
}

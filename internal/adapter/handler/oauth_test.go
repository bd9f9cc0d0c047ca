package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"session-hub/internal/adapter/provider"
	"session-hub/internal/domain"
	"session-hub/internal/infrastructure/token"
	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func oauthHandler(t *testing.T, directory domain.DirectoryClient, p provider.Provider, strict bool) (*OAuthHandler, *token.JWTCodec, *token.StateCodec) {
	t.Helper()
	codec, _, _, _, _, _ := testStack(directory)
	normalizer := usecase.NewNormalizeIdentity(directory, slog.Default())
	issue := usecase.NewIssueSession(normalizer, codec, time.Hour, strict, slog.Default())
	state := token.NewStateCodec(testSecret)
	registry := provider.NewRegistry(p)
	return NewOAuthHandler(registry, state, issue, testBase, time.Hour, true), codec, state
}

func stateCookieFrom(t *testing.T, rec interface{ Result() *http.Response }) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == stateCookieName {
			return cookie
		}
	}
	return nil
}

func TestOAuthHandler_Start(t *testing.T) {
	p := &fakeProvider{name: "google"}
	h, _, state := oauthHandler(t, &mockDirectory{}, p, false)

	c, rec := newTestContext(t, http.MethodGet, "/auth/google/start?redirect=/home", "")
	c.SetParamNames("provider")
	c.SetParamValues("google")

	assert.NoError(t, h.HandleStart(c))
	assert.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Equal(t, "provider.test", location.Host)

	// Redirect target was validated and sealed into the signed state.
	cookie := stateCookieFrom(t, rec)
	assert.NotNil(t, cookie)
	assert.Equal(t, location.Query().Get("state"), cookie.Value)

	target, err := state.Decode(cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, "https://app.test/home", target)
}

func TestOAuthHandler_Start_UnknownProvider(t *testing.T) {
	h, _, _ := oauthHandler(t, &mockDirectory{}, &fakeProvider{name: "google"}, false)

	c, _ := newTestContext(t, http.MethodGet, "/auth/gitlab/start", "")
	c.SetParamNames("provider")
	c.SetParamValues("gitlab")

	err := h.HandleStart(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestOAuthHandler_Callback_Success(t *testing.T) {
	directory := &mockDirectory{identity: &domain.Identity{ID: "dir-7", Email: "user@example.com"}}
	p := &fakeProvider{
		name:    "google",
		profile: &domain.OAuthProfile{Provider: "google", Email: "user@example.com", Name: "User"},
	}
	h, codec, stateCodec := oauthHandler(t, directory, p, false)

	state, err := stateCodec.Encode("https://app.test/home")
	assert.NoError(t, err)

	c, rec := newTestContext(t, http.MethodGet, "/auth/google/callback?code=abc&state="+url.QueryEscape(state), "")
	c.SetParamNames("provider")
	c.SetParamValues("google")
	c.Request().AddCookie(&http.Cookie{Name: stateCookieName, Value: state})

	assert.NoError(t, h.HandleCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.test/home", rec.Header().Get("Location"))

	cookie := sessionCookieFrom(t, rec)
	assert.NotNil(t, cookie)

	claims, err := codec.Parse(cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, "dir-7", claims.Subject)
	assert.Equal(t, 1, directory.upserts)
}

func TestOAuthHandler_Callback_StateMismatch(t *testing.T) {
	p := &fakeProvider{name: "google"}
	h, _, stateCodec := oauthHandler(t, &mockDirectory{}, p, false)

	state, err := stateCodec.Encode("/home")
	assert.NoError(t, err)

	// Query state does not match the browser-bound cookie.
	c, _ := newTestContext(t, http.MethodGet, "/auth/google/callback?code=abc&state="+url.QueryEscape(state), "")
	c.SetParamNames("provider")
	c.SetParamValues("google")
	c.Request().AddCookie(&http.Cookie{Name: stateCookieName, Value: "different"})

	err = h.HandleCallback(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestOAuthHandler_Callback_ExchangeFailure(t *testing.T) {
	p := &fakeProvider{name: "google", err: domain.ErrProviderExchange}
	h, _, stateCodec := oauthHandler(t, &mockDirectory{}, p, false)

	state, err := stateCodec.Encode("https://app.test/home")
	assert.NoError(t, err)

	c, rec := newTestContext(t, http.MethodGet, "/auth/google/callback?code=bad&state="+url.QueryEscape(state), "")
	c.SetParamNames("provider")
	c.SetParamValues("google")
	c.Request().AddCookie(&http.Cookie{Name: stateCookieName, Value: state})

	// Bounced back to the sign-in page, not a hard failure.
	assert.NoError(t, h.HandleCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.test/signin?error=exchange_failed", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookieFrom(t, rec))
}

func TestOAuthHandler_Callback_DirectoryDownDegrades(t *testing.T) {
	directory := &mockDirectory{upsertErr: domain.ErrDirectoryUnavailable}
	p := &fakeProvider{
		name:    "google",
		profile: &domain.OAuthProfile{Provider: "google", Email: "user@example.com"},
	}
	h, codec, stateCodec := oauthHandler(t, directory, p, false)

	state, err := stateCodec.Encode("https://app.test/home")
	assert.NoError(t, err)

	c, rec := newTestContext(t, http.MethodGet, "/auth/google/callback?code=abc&state="+url.QueryEscape(state), "")
	c.SetParamNames("provider")
	c.SetParamValues("google")
	c.Request().AddCookie(&http.Cookie{Name: stateCookieName, Value: state})

	// Redirect proceeds; the issued token is anonymous.
	assert.NoError(t, h.HandleCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.test/home", rec.Header().Get("Location"))

	cookie := sessionCookieFrom(t, rec)
	assert.NotNil(t, cookie)
	claims, err := codec.Parse(cookie.Value)
	assert.NoError(t, err)
	assert.False(t, claims.Authenticated())
}

func TestOAuthHandler_Callback_DirectoryDownStrict(t *testing.T) {
	directory := &mockDirectory{upsertErr: domain.ErrDirectoryUnavailable}
	p := &fakeProvider{
		name:    "google",
		profile: &domain.OAuthProfile{Provider: "google", Email: "user@example.com"},
	}
	h, _, stateCodec := oauthHandler(t, directory, p, true)

	state, err := stateCodec.Encode("https://app.test/home")
	assert.NoError(t, err)

	c, rec := newTestContext(t, http.MethodGet, "/auth/google/callback?code=abc&state="+url.QueryEscape(state), "")
	c.SetParamNames("provider")
	c.SetParamValues("google")
	c.Request().AddCookie(&http.Cookie{Name: stateCookieName, Value: state})

	err = h.HandleCallback(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	assert.Nil(t, sessionCookieFrom(t, rec))
}

func TestOAuthHandler_Callback_ProviderError(t *testing.T) {
	p := &fakeProvider{name: "google"}
	h, _, stateCodec := oauthHandler(t, &mockDirectory{}, p, false)

	state, err := stateCodec.Encode("https://app.test/home")
	assert.NoError(t, err)

	c, rec := newTestContext(t, http.MethodGet, "/auth/google/callback?error=access_denied&state="+url.QueryEscape(state), "")
	c.SetParamNames("provider")
	c.SetParamValues("google")
	c.Request().AddCookie(&http.Cookie{Name: stateCookieName, Value: state})

	assert.NoError(t, h.HandleCallback(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.test/signin?error=access_denied", rec.Header().Get("Location"))
}

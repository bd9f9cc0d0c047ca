package handler

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"time"

	"session-hub/internal/adapter/provider"
	"session-hub/internal/domain"
	"session-hub/internal/redirect"
	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// OAuthStateCodec signs and verifies the state value round-tripped through
// the provider.
type OAuthStateCodec interface {
	Encode(redirect string) (string, error)
	Decode(state string) (string, error)
}

// OAuthHandler drives the provider authorization-code flow.
type OAuthHandler struct {
	registry       *provider.Registry
	state          OAuthStateCodec
	issue          *usecase.IssueSession
	trustedBaseURL string
	maxAge         time.Duration
	secure         bool
}

// NewOAuthHandler creates a new OAuth handler.
func NewOAuthHandler(r *provider.Registry, s OAuthStateCodec, issue *usecase.IssueSession, trustedBaseURL string, maxAge time.Duration, secure bool) *OAuthHandler {
	return &OAuthHandler{
		registry:       r,
		state:          s,
		issue:          issue,
		trustedBaseURL: trustedBaseURL,
		maxAge:         maxAge,
		secure:         secure,
	}
}

// HandleStart processes GET /auth/:provider/start and sends the browser to
// the provider. The post-login redirect target is validated here, before it
// is sealed into the state.
func (h *OAuthHandler) HandleStart(c echo.Context) error {
	p, err := h.registry.Lookup(c.Param("provider"))
	if err != nil {
		return mapDomainError(err)
	}

	target := redirect.Resolve(c.QueryParam("redirect"), h.trustedBaseURL)

	state, err := h.state.Encode(target)
	if err != nil {
		return mapDomainError(err)
	}

	c.SetCookie(stateCookie(state, h.secure))
	return c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

// HandleCallback processes GET /auth/:provider/callback. A provider-side
// failure bounces back to the sign-in page; a directory failure during
// reconciliation follows the configured policy inside IssueSession.
func (h *OAuthHandler) HandleCallback(c echo.Context) error {
	p, err := h.registry.Lookup(c.Param("provider"))
	if err != nil {
		return mapDomainError(err)
	}

	state := c.QueryParam("state")
	cookie, err := c.Cookie(stateCookieName)
	if err != nil || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "state mismatch")
	}
	c.SetCookie(clearedStateCookie(h.secure))

	target, err := h.state.Decode(state)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "state mismatch")
	}
	// The state is signed, but re-validate anyway so a key leak alone can
	// never produce an open redirect.
	target = redirect.Resolve(target, h.trustedBaseURL)

	if errParam := c.QueryParam("error"); errParam != "" {
		return h.redirectWithError(c, errParam)
	}

	profile, err := p.FetchProfile(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return h.redirectWithError(c, "exchange_failed")
	}

	signed, _, err := h.issue.Execute(c.Request().Context(), domain.OAuthEvent(profile))
	if err != nil {
		return mapDomainError(err)
	}

	c.SetCookie(sessionCookie(signed, h.maxAge, h.secure))
	return c.Redirect(http.StatusFound, target)
}

// redirectWithError sends the browser back to the sign-in page with an
// error code the UI can render inline.
func (h *OAuthHandler) redirectWithError(c echo.Context, code string) error {
	u := h.trustedBaseURL + "/signin?error=" + url.QueryEscape(code)
	return c.Redirect(http.StatusFound, u)
}

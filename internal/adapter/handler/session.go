package handler

import (
	"net/http"
	"time"

	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionHandler handles /session, the only surface the Web UI reads
// identity from.
type SessionHandler struct {
	get    *usecase.GetSession
	renew  *usecase.RenewSession
	maxAge time.Duration
	secure bool
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(get *usecase.GetSession, renew *usecase.RenewSession, maxAge time.Duration, secure bool) *SessionHandler {
	return &SessionHandler{get: get, renew: renew, maxAge: maxAge, secure: secure}
}

// Handle processes GET /session. Always 200: a missing, expired, or revoked
// token projects to the unauthenticated view rather than an error. A live
// token slides its expiry forward on the way out.
func (h *SessionHandler) Handle(c echo.Context) error {
	tokenString := ""
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		tokenString = cookie.Value
	}

	view := h.get.Execute(c.Request().Context(), tokenString)

	if tokenString != "" {
		if renewed, claims, err := h.renew.Execute(tokenString); err == nil {
			c.SetCookie(sessionCookie(renewed, h.maxAge, h.secure))
			if view.Authenticated {
				view.ExpiresAt = claims.ExpiresAt
			}
		}
	}

	return c.JSON(http.StatusOK, view)
}

package handler

import (
	"net/http"

	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SignOutHandler handles POST /auth/logout.
type SignOutHandler struct {
	signOut *usecase.SignOut
	secure  bool
}

// NewSignOutHandler creates a new sign-out handler.
func NewSignOutHandler(signOut *usecase.SignOut, secure bool) *SignOutHandler {
	return &SignOutHandler{signOut: signOut, secure: secure}
}

// Handle revokes the current token and clears the cookie. Idempotent: a
// request without a session cookie still gets 204.
func (h *SignOutHandler) Handle(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		h.signOut.Execute(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(clearedSessionCookie(h.secure))
	return c.NoContent(http.StatusNoContent)
}

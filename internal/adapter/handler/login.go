package handler

import (
	"net/http"
	"time"

	"session-hub/internal/domain"
	"session-hub/internal/redirect"
	"session-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LoginHandler handles credentials sign-in.
type LoginHandler struct {
	directory      domain.DirectoryClient
	issue          *usecase.IssueSession
	trustedBaseURL string
	maxAge         time.Duration
	secure         bool
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(d domain.DirectoryClient, issue *usecase.IssueSession, trustedBaseURL string, maxAge time.Duration, secure bool) *LoginHandler {
	return &LoginHandler{
		directory:      d,
		issue:          issue,
		trustedBaseURL: trustedBaseURL,
		maxAge:         maxAge,
		secure:         secure,
	}
}

// loginRequest is the credentials sign-in payload.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Redirect string `json:"redirect"`
}

// loginResponse is returned on successful sign-in.
type loginResponse struct {
	OK         bool               `json:"ok"`
	User       domain.SessionUser `json:"user"`
	RedirectTo string             `json:"redirectTo"`
}

// Handle processes POST /auth/login.
func (h *LoginHandler) Handle(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, err := h.directory.VerifyCredentials(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapDomainError(err)
	}

	event := domain.CredentialsEvent(&domain.CredentialsResult{
		ID:    identity.ID,
		Email: identity.Email,
	})

	signed, claims, err := h.issue.Execute(c.Request().Context(), event)
	if err != nil {
		return mapDomainError(err)
	}

	c.SetCookie(sessionCookie(signed, h.maxAge, h.secure))

	return c.JSON(http.StatusOK, loginResponse{
		OK: true,
		User: domain.SessionUser{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Image: claims.Image,
		},
		RedirectTo: redirect.Resolve(req.Redirect, h.trustedBaseURL),
	})
}

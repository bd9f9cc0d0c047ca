package handler

import (
	"net/http"

	"session-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// SignupHandler proxies registration to the directory service.
type SignupHandler struct {
	directory domain.DirectoryClient
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(d domain.DirectoryClient) *SignupHandler {
	return &SignupHandler{directory: d}
}

// signupRequest is the registration payload.
type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Handle processes POST /auth/signup.
func (h *SignupHandler) Handle(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.directory.Signup(c.Request().Context(), req.Email, req.Password); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
}

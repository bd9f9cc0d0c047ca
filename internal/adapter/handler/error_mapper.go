package handler

import (
	"errors"
	"net/http"

	"session-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// Messages are safe to surface inline in the UI; they never echo submitted
// credentials back.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrMalformedIdentity):
		return echo.NewHTTPError(http.StatusUnauthorized, "sign-in failed")

	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "email already registered")

	case errors.Is(err, domain.ErrProviderUnknown):
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider")

	case errors.Is(err, domain.ErrDirectoryUnavailable),
		errors.Is(err, domain.ErrProviderExchange):
		return echo.NewHTTPError(http.StatusBadGateway, "identity backend unavailable")

	case errors.Is(err, domain.ErrTokenGeneration),
		errors.Is(err, domain.ErrSecretMissing):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

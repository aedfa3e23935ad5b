package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// RBAC enforces role-based access control against the durable user record.
// The cookie role is never trusted here: degraded identities are rejected and
// the role is re-read from the store on every request.
func RBAC(users ports.UserRepository, log zerolog.Logger, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(ContextIdentity).(*domain.Identity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if state, _ := c.Get(ContextState).(domain.ReconcileState); state == domain.StateDegradedFallback || identity.UserID == "" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "session could not be verified"})
			}

			user, err := users.FindByID(c.Request().Context(), identity.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
				}
				log.Error().Err(err).Str("user_id", identity.UserID).Msg("role check failed")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "user store unavailable")
			}
			// The cookie user id must belong to the provider-verified email.
			if !strings.EqualFold(user.Email, identity.Email) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			identity.Role = user.Role
			return next(c)
		}
	}
}

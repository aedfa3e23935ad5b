package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cotizador/quoting-system/internal/api/middleware"
	"github.com/cotizador/quoting-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// performs a fast-fail check before any service call:
//   - the identity must be present (presence proves the middleware ran).
//   - a degraded identity has no user id; it can be displayed but it cannot
//     own or read quotes, so it is rejected with 401.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := c.Get(middleware.ContextIdentity).(*domain.Identity)
	if !ok || identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if identity.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session could not be verified")
	}
	return identity, nil
}

// ctxOptionalIdentity returns the identity when present, degraded ones included.
func ctxOptionalIdentity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(middleware.ContextIdentity).(*domain.Identity)
	return identity
}

// ctxState returns the reconciliation state, unauthenticated when absent.
func ctxState(c echo.Context) domain.ReconcileState {
	if s, ok := c.Get(middleware.ContextState).(domain.ReconcileState); ok {
		return s
	}
	return domain.StateUnauthenticated
}

func ctxAccessToken(c echo.Context) string {
	token, _ := c.Get(middleware.ContextAccessToken).(string)
	return token
}

package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/api/cookies"
	"github.com/cotizador/quoting-system/internal/api/metrics"
	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// Context keys set by Session.
const (
	ContextIdentity    = "identity"
	ContextState       = "session_state"
	ContextAccessToken = "access_token"
)

// Session resolves the caller on every request. The provider session is
// authoritative; the identity cookies are reconciled against it and
// rewritten or cleared as the reconciler decides. It never rejects a request
// by itself except when the provider cannot be reached; use RequireSession
// on protected routes.
func Session(
	provider ports.IdentityProvider,
	reconciler ports.SessionReconciler,
	cfg cookies.Config,
	log zerolog.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			access, refresh := cookies.ReadTokens(c)

			var pu *domain.ProviderUser
			if access != "" {
				u, err := provider.GetUser(ctx, access)
				switch {
				case err == nil:
					pu = u
				case errors.Is(err, domain.ErrNoSession):
					// Expired or revoked. A refresh below may still recover it.
				default:
					log.Error().Err(err).Msg("identity provider unavailable")
					return echo.NewHTTPError(http.StatusServiceUnavailable, "identity provider unavailable")
				}
			}

			if pu == nil && refresh != "" {
				s, err := provider.RefreshSession(ctx, refresh)
				switch {
				case err == nil:
					cfg.WriteSession(c, s, time.Now())
					access = s.AccessToken
					pu = &s.User
				case errors.Is(err, domain.ErrNoSession):
				default:
					log.Error().Err(err).Msg("identity provider refresh failed")
					return echo.NewHTTPError(http.StatusServiceUnavailable, "identity provider unavailable")
				}
			}

			res := reconciler.Reconcile(ctx, pu, cookies.ReadIdentity(c))
			metrics.SessionReconcileTotal.WithLabelValues(string(res.State)).Inc()

			switch {
			case res.Clear:
				cfg.ClearAll(c)
			case res.Write != nil:
				cfg.WriteIdentity(c, *res.Write)
			}

			c.Set(ContextState, res.State)
			if res.Authenticated() {
				c.Set(ContextIdentity, res.Identity)
				c.Set(ContextAccessToken, access)
			}
			return next(c)
		}
	}
}

// RequireSession rejects requests without a provider-backed identity.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(ContextIdentity).(*domain.Identity); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

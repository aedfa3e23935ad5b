// Package cookies reads and writes the browser session cookies.
//
// Two groups exist: the provider session (access and refresh token) which
// authenticates, and the identity cache (role, name, user id, owner email)
// which is only ever rewritten as a unit after reconciliation.
package cookies

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

const (
	Role         = "session_role"
	User         = "session_user"
	UserID       = "session_user_id"
	Email        = "session_email"
	AccessToken  = "sb-access-token"
	RefreshToken = "sb-refresh-token"
)

const (
	identityMaxAge = 7 * 24 * time.Hour
	refreshMaxAge  = 30 * 24 * time.Hour
	minAccessAge   = time.Minute
)

// Config controls cookie attributes. Secure is enabled in production.
type Config struct {
	Secure bool
}

// ReadIdentity returns the identity cache as sent by the browser.
func ReadIdentity(c echo.Context) domain.SessionCookies {
	return domain.SessionCookies{
		Role:   value(c, Role),
		Name:   value(c, User),
		UserID: value(c, UserID),
		Email:  value(c, Email),
	}
}

// ReadTokens returns the provider tokens, falling back to a bearer header
// for the access token.
func ReadTokens(c echo.Context) (access, refresh string) {
	access = value(c, AccessToken)
	if access == "" {
		if h := c.Request().Header.Get(echo.HeaderAuthorization); len(h) > 7 && (h[:7] == "Bearer " || h[:7] == "bearer ") {
			access = h[7:]
		}
	}
	return access, value(c, RefreshToken)
}

// WriteIdentity writes the identity cookies together.
func (cfg Config) WriteIdentity(c echo.Context, sc domain.SessionCookies) {
	cfg.set(c, Role, sc.Role, identityMaxAge)
	cfg.set(c, User, sc.Name, identityMaxAge)
	cfg.set(c, UserID, sc.UserID, identityMaxAge)
	cfg.set(c, Email, sc.Email, identityMaxAge)
}

// WriteSession stores the provider tokens.
func (cfg Config) WriteSession(c echo.Context, s *domain.ProviderSession, now time.Time) {
	ttl := s.ExpiresAt.Sub(now)
	if ttl < minAccessAge {
		ttl = minAccessAge
	}
	cfg.set(c, AccessToken, s.AccessToken, ttl)
	if s.RefreshToken != "" {
		cfg.set(c, RefreshToken, s.RefreshToken, refreshMaxAge)
	}
}

// ClearAll expires every session cookie.
func (cfg Config) ClearAll(c echo.Context) {
	for _, name := range []string{Role, User, UserID, Email, AccessToken, RefreshToken} {
		c.SetCookie(cfg.cookie(name, "", -1))
	}
}

func (cfg Config) set(c echo.Context, name, v string, maxAge time.Duration) {
	c.SetCookie(cfg.cookie(name, url.QueryEscape(v), int(maxAge.Seconds())))
}

func (cfg Config) cookie(name, v string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    v,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func value(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ck.Value
	}
	return v
}

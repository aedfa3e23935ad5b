package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/api/cookies"
	"github.com/cotizador/quoting-system/internal/api/metrics"
	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

const (
	defaultRedirect = "/"
	loginPath       = "/login"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     cookies.Config
	log         zerolog.Logger
	now         func() time.Time
}

func NewAuthHandler(authService ports.AuthService, ck cookies.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: ck, log: log, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	User     *domain.Identity `json:"user"`
	Migrated bool             `json:"migrated,omitempty"`
}

type signUpResponse struct {
	User                 *domain.Identity `json:"user"`
	VerificationRequired bool             `json:"verification_required"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	State         string           `json:"state"`
	User          *domain.Identity `json:"user,omitempty"`
}

// Login authenticates against the identity provider, migrating accounts that
// only exist in the user store.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(result, err)).Inc()
	if err != nil {
		return err
	}

	h.establish(c, result)
	return c.JSON(http.StatusOK, authResponse{User: identityOf(result), Migrated: result.Migrated})
}

// SignUp registers a new account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  signUpResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.SignUp(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	identity := &domain.Identity{
		UserID: result.User.ID,
		Name:   result.User.Name,
		Email:  result.User.Email,
		Role:   result.User.Role,
	}
	if result.Session != nil {
		h.cookies.WriteSession(c, result.Session, h.now())
		h.cookies.WriteIdentity(c, domain.SessionCookies{
			Role:   identity.Role,
			Name:   identity.Name,
			UserID: identity.UserID,
			Email:  strings.ToLower(identity.Email),
		})
	}

	return c.JSON(http.StatusCreated, signUpResponse{
		User:                 identity,
		VerificationRequired: result.VerificationRequired,
	})
}

// Callback completes the provider redirect (email confirmation, OAuth).
// Failures redirect to the login page with an error code.
//
// @Summary      Identity provider callback
// @Tags         auth
// @Param        code           query  string  true   "Authorization code"
// @Param        code_verifier  query  string  false  "PKCE verifier"
// @Param        next           query  string  false  "Local path to continue to"
// @Success      303
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	result, err := h.authService.Callback(c.Request().Context(), c.QueryParam("code"), c.QueryParam("code_verifier"))
	if err != nil {
		code := "callback_failed"
		if errors.Is(err, domain.ErrEmailNotVerified) {
			code = "email_not_verified"
		} else {
			h.log.Warn().Err(err).Msg("auth callback failed")
		}
		return c.Redirect(http.StatusSeeOther, loginPath+"?error="+url.QueryEscape(code))
	}

	h.establish(c, result)
	return c.Redirect(http.StatusSeeOther, safeRedirect(c.QueryParam("next")))
}

// Logout signs the user out everywhere and clears every session cookie.
// Cookies are cleared even when the provider call fails.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := ctxAccessToken(c)
	if token == "" {
		token, _ = cookies.ReadTokens(c)
	}
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		h.log.Warn().Err(err).Msg("provider sign out failed")
	}
	h.cookies.ClearAll(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Session reports the reconciled identity of the caller.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	state := ctxState(c)
	identity := ctxOptionalIdentity(c)
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: identity != nil,
		State:         string(state),
		User:          identity,
	})
}

func (h *AuthHandler) establish(c echo.Context, result *ports.AuthResult) {
	h.cookies.WriteSession(c, result.Session, h.now())
	h.cookies.WriteIdentity(c, result.Cookies)
}

func identityOf(result *ports.AuthResult) *domain.Identity {
	return &domain.Identity{
		UserID: result.Cookies.UserID,
		Name:   result.Cookies.Name,
		Email:  result.User.Email,
		Role:   result.Cookies.Role,
	}
}

func loginOutcome(result *ports.AuthResult, err error) string {
	switch {
	case err == nil && result.Migrated:
		return "migrated"
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrEmailNotVerified):
		return "email_not_verified"
	case errors.Is(err, domain.ErrMigrationFailed):
		return "migration_failed"
	case errors.Is(err, domain.ErrPostMigrationLoginFailed):
		return "retry_failed"
	default:
		return "error"
	}
}

// safeRedirect only follows local paths.
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultRedirect
	}
	return next
}

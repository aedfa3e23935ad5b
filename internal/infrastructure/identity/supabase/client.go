// Package supabase implements ports.IdentityProvider on top of the Supabase
// auth client.
package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	auth "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// Config holds the project settings. JWTSecret is optional; when set, access
// tokens are verified locally instead of calling /auth/v1/user.
type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string
}

// Client adapts auth.Client to the identity provider port. The underlying
// client is not context aware, so calls only check ctx before starting.
type Client struct {
	api      auth.Client
	verifier *TokenVerifier
	now      func() time.Time
}

func NewClient(cfg Config) *Client {
	c := &Client{
		api: auth.New("", cfg.AnonKey).WithCustomAuthURL(strings.TrimRight(cfg.URL, "/") + "/auth/v1"),
		now: time.Now,
	}
	if cfg.JWTSecret != "" {
		c.verifier = NewTokenVerifier(cfg.JWTSecret)
	}
	return c
}

var _ ports.IdentityProvider = (*Client)(nil)

func toProviderUser(u types.User) domain.ProviderUser {
	name, _ := u.UserMetadata["name"].(string)
	if name == "" {
		name, _ = u.UserMetadata["full_name"].(string)
	}
	return domain.ProviderUser{
		ID:             u.ID.String(),
		Email:          strings.ToLower(u.Email),
		Name:           name,
		EmailConfirmed: u.EmailConfirmedAt != nil || !u.ConfirmedAt.IsZero(),
	}
}

func (c *Client) toSession(s types.Session) (*domain.ProviderSession, error) {
	if s.AccessToken == "" || s.User.Email == "" {
		return nil, fmt.Errorf("supabase: incomplete session response")
	}
	exp := time.Unix(s.ExpiresAt, 0)
	if s.ExpiresAt == 0 {
		exp = c.now().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return &domain.ProviderSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    exp,
		User:         toProviderUser(s.User),
	}, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.ProviderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := c.api.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, wrapError("sign in", err)
	}
	return c.toSession(resp.Session)
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) (*domain.ProviderUser, *domain.ProviderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	resp, err := c.api.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     map[string]interface{}{"name": name},
	})
	if err != nil {
		return nil, nil, wrapError("sign up", err)
	}

	// Auto-confirm projects answer with a session, the others with a bare user.
	if resp.Session.AccessToken != "" {
		s, err := c.toSession(resp.Session)
		if err != nil {
			return nil, nil, err
		}
		return &s.User, s, nil
	}
	if resp.User.Email == "" {
		return nil, nil, fmt.Errorf("supabase: sign up returned no user")
	}
	u := toProviderUser(resp.User)
	return &u, nil, nil
}

func (c *Client) ExchangeCodeForSession(ctx context.Context, code, verifier string) (*domain.ProviderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := c.api.Token(types.TokenRequest{
		GrantType:    "pkce",
		Code:         code,
		CodeVerifier: verifier,
	})
	if err != nil {
		return nil, wrapError("exchange code", err)
	}
	return c.toSession(resp.Session)
}

func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*domain.ProviderSession, error) {
	if refreshToken == "" {
		return nil, domain.ErrNoSession
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := c.api.RefreshToken(refreshToken)
	if err != nil {
		return nil, asSessionError(wrapError("refresh", err))
	}
	return c.toSession(resp.Session)
}

// GetUser verifies the access token locally when a JWT secret is configured,
// otherwise asks the provider.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.ProviderUser, error) {
	if accessToken == "" {
		return nil, domain.ErrNoSession
	}
	if c.verifier != nil {
		return c.verifier.Verify(accessToken)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.api.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, asSessionError(wrapError("get user", err))
	}
	u := toProviderUser(resp.User)
	return &u, nil
}

// SignOut revokes the user's sessions. The provider defaults to global scope.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.api.WithToken(accessToken).Logout(); err != nil {
		return asSessionError(wrapError("sign out", err))
	}
	return nil
}

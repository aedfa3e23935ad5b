package supabase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// Claims is the subset of a Supabase access token this service reads.
type Claims struct {
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 access tokens signed with the project secret.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify returns the token's user. An invalid or expired token yields
// domain.ErrNoSession. Tokens are only issued to confirmed accounts.
func (v *TokenVerifier) Verify(token string) (*domain.ProviderUser, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", domain.ErrNoSession)
		}
		return nil, fmt.Errorf("%w: invalid token", domain.ErrNoSession)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrNoSession)
	}

	name, _ := claims.UserMetadata["name"].(string)
	return &domain.ProviderUser{
		ID:             claims.Subject,
		Email:          strings.ToLower(claims.Email),
		Name:           name,
		EmailConfirmed: true,
	}, nil
}

package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// IdentityProvider abstracts the external identity provider.
//
// Implementations return domain.ErrNoSession when a token is absent, expired
// or revoked, domain.ErrProviderRejected for bad credentials,
// domain.ErrProviderEmailUnconfirmed when the account awaits verification and
// domain.ErrAlreadyRegistered when signing up an existing email.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.ProviderSession, error)
	// SignUp registers the account. The session is nil while email
	// verification is pending.
	SignUp(ctx context.Context, email, password, name string) (*domain.ProviderUser, *domain.ProviderSession, error)
	ExchangeCodeForSession(ctx context.Context, code, verifier string) (*domain.ProviderSession, error)
	GetUser(ctx context.Context, accessToken string) (*domain.ProviderUser, error)
	RefreshSession(ctx context.Context, refreshToken string) (*domain.ProviderSession, error)
	// SignOut revokes every session of the token's user (global scope).
	SignOut(ctx context.Context, accessToken string) error
}

package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// LoginState is a step of the credentials login flow, including the bridge
// for accounts provisioned before the identity provider existed.
type LoginState string

const (
	LoginCredentialsSubmitted LoginState = "CREDENTIALS_SUBMITTED"
	LoginProviderAuthFailed   LoginState = "PROVIDER_AUTH_FAILED"
	LoginLegacyRecordFound    LoginState = "LEGACY_RECORD_FOUND"
	LoginMigrationAttempted   LoginState = "MIGRATION_ATTEMPTED"
	LoginRetry                LoginState = "RETRY_LOGIN"
	LoginSessionEstablished   LoginState = "SESSION_ESTABLISHED"
	LoginFailed               LoginState = "FAILED"
)

// AuthResult is returned by every flow that ends with an established session.
type AuthResult struct {
	Session *domain.ProviderSession
	User    *domain.User
	Cookies domain.SessionCookies
	// Path lists the states the login walked through, in order.
	Path []LoginState
	// Migrated is true when the legacy bridge created the provider account.
	Migrated bool
}

// SignUpResult reports the outcome of a registration.
type SignUpResult struct {
	User *domain.User
	// Session is nil while the provider waits for email verification.
	Session              *domain.ProviderSession
	VerificationRequired bool
}

// AuthService drives the identity-provider flows and keeps user records in sync.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SignUp(ctx context.Context, name, email, password string) (*SignUpResult, error)
	Callback(ctx context.Context, code, verifier string) (*AuthResult, error)
	Logout(ctx context.Context, accessToken string) error
}

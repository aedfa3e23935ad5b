package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrRateNotFound       = errors.New("rate entry not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid quote status")
	ErrProfileUnavailable = errors.New("profile not available")

	// Outcomes surfaced to the end user on login.
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrMigrationFailed          = errors.New("migration failed")
	ErrPostMigrationLoginFailed = errors.New("post-migration retry failed")

	// Identity provider adapter errors.
	ErrNoSession                = errors.New("no active identity session")
	ErrAlreadyRegistered        = errors.New("user already registered")
	ErrProviderRejected         = errors.New("identity provider rejected credentials")
	ErrProviderEmailUnconfirmed = errors.New("identity provider email not confirmed")
)

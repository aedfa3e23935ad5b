package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// AuthService implements login, sign-up, OAuth callback and logout on top of
// the identity provider, keeping the durable user records in sync.
type AuthService struct {
	provider    ports.IdentityProvider
	users       ports.UserRepository
	defaultRole string
	log         zerolog.Logger
}

func NewAuthService(provider ports.IdentityProvider, users ports.UserRepository, defaultRole string, log zerolog.Logger) *AuthService {
	if !domain.IsKnownRole(defaultRole) {
		defaultRole = domain.RoleConsultor
	}
	return &AuthService{provider: provider, users: users, defaultRole: defaultRole, log: log}
}

// loginRun holds the data carried between states of a single login attempt.
type loginRun struct {
	email    string
	password string
	session  *domain.ProviderSession
	legacy   *domain.User
	migrated bool
	path     []ports.LoginState
	err      error
}

func (r *loginRun) enter(state ports.LoginState) ports.LoginState {
	r.path = append(r.path, state)
	return state
}

func (r *loginRun) fail(err error) ports.LoginState {
	r.err = err
	return r.enter(ports.LoginFailed)
}

// Login authenticates with the identity provider. When the provider rejects
// the credentials but a legacy record with a matching password exists, the
// account is created at the provider and the login retried once.
//
// Every step is safe to repeat: the provider account is keyed by email and an
// existing registration is treated as already migrated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	run := &loginRun{email: email, password: password}
	state := run.enter(ports.LoginCredentialsSubmitted)

	for state != ports.LoginSessionEstablished && state != ports.LoginFailed {
		switch state {
		case ports.LoginCredentialsSubmitted:
			state = s.stepSignIn(ctx, run)
		case ports.LoginProviderAuthFailed:
			state = s.stepFindLegacy(ctx, run)
		case ports.LoginLegacyRecordFound:
			state = s.stepMigrate(ctx, run)
		case ports.LoginMigrationAttempted:
			state = run.enter(ports.LoginRetry)
		case ports.LoginRetry:
			state = s.stepRetry(ctx, run)
		default:
			state = run.fail(fmt.Errorf("login: unexpected state %s", state))
		}
	}

	if state == ports.LoginFailed {
		s.log.Info().Str("email", email).Strs("path", pathStrings(run.path)).Err(run.err).Msg("login failed")
		return nil, run.err
	}

	result, err := s.establish(ctx, run.session)
	if err != nil {
		return nil, err
	}
	result.Path = run.path
	result.Migrated = run.migrated

	s.log.Info().
		Str("user_id", result.User.ID).
		Bool("migrated", run.migrated).
		Msg("login succeeded")
	return result, nil
}

func (s *AuthService) stepSignIn(ctx context.Context, run *loginRun) ports.LoginState {
	session, err := s.provider.SignInWithPassword(ctx, run.email, run.password)
	switch {
	case err == nil:
		run.session = session
		return run.enter(ports.LoginSessionEstablished)
	case errors.Is(err, domain.ErrProviderEmailUnconfirmed):
		return run.fail(domain.ErrEmailNotVerified)
	case errors.Is(err, domain.ErrProviderRejected):
		return run.enter(ports.LoginProviderAuthFailed)
	default:
		return run.fail(fmt.Errorf("login: sign in: %w", err))
	}
}

func (s *AuthService) stepFindLegacy(ctx context.Context, run *loginRun) ports.LoginState {
	user, err := s.users.FindByEmail(ctx, run.email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return run.fail(domain.ErrInvalidCredentials)
		}
		return run.fail(fmt.Errorf("login: find legacy user: %w", err))
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(run.password)) != nil {
		return run.fail(domain.ErrInvalidCredentials)
	}
	run.legacy = user
	return run.enter(ports.LoginLegacyRecordFound)
}

func (s *AuthService) stepMigrate(ctx context.Context, run *loginRun) ports.LoginState {
	_, _, err := s.provider.SignUp(ctx, run.email, run.password, run.legacy.Name)
	if err != nil && !errors.Is(err, domain.ErrAlreadyRegistered) {
		s.log.Warn().Err(err).Str("email", run.email).Msg("legacy account migration failed")
		return run.fail(domain.ErrMigrationFailed)
	}
	run.migrated = err == nil
	return run.enter(ports.LoginMigrationAttempted)
}

func (s *AuthService) stepRetry(ctx context.Context, run *loginRun) ports.LoginState {
	session, err := s.provider.SignInWithPassword(ctx, run.email, run.password)
	switch {
	case err == nil:
		run.session = session
		return run.enter(ports.LoginSessionEstablished)
	case errors.Is(err, domain.ErrProviderEmailUnconfirmed):
		return run.fail(domain.ErrEmailNotVerified)
	default:
		s.log.Warn().Err(err).Str("email", run.email).Msg("login retry after migration failed")
		return run.fail(domain.ErrPostMigrationLoginFailed)
	}
}

// SignUp registers the account at the provider and upserts the user record.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*ports.SignUpResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return nil, fmt.Errorf("sign up: %w: email and password are required", domain.ErrValidation)
	}

	pu, session, err := s.provider.SignUp(ctx, email, password, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if pu != nil && pu.Email != "" {
		email = strings.ToLower(pu.Email)
	}

	user, err := s.users.UpsertByEmail(ctx, email, name, s.defaultRole)
	if err != nil {
		return nil, fmt.Errorf("sign up: upsert user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Bool("verification_required", session == nil).Msg("user signed up")

	return &ports.SignUpResult{
		User:                 user,
		Session:              session,
		VerificationRequired: session == nil,
	}, nil
}

// Callback completes the provider redirect flow.
func (s *AuthService) Callback(ctx context.Context, code, verifier string) (*ports.AuthResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("callback: %w: missing code", domain.ErrValidation)
	}
	session, err := s.provider.ExchangeCodeForSession(ctx, code, verifier)
	if err != nil {
		if errors.Is(err, domain.ErrProviderEmailUnconfirmed) {
			return nil, domain.ErrEmailNotVerified
		}
		return nil, fmt.Errorf("callback: exchange code: %w", err)
	}
	result, err := s.establish(ctx, session)
	if err != nil {
		return nil, err
	}
	result.Path = []ports.LoginState{ports.LoginSessionEstablished}
	return result, nil
}

// Logout revokes the provider session in every browser of the user.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := s.provider.SignOut(ctx, accessToken); err != nil && !errors.Is(err, domain.ErrNoSession) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// establish upserts the user record for a verified session and derives the
// session cookies from it.
func (s *AuthService) establish(ctx context.Context, session *domain.ProviderSession) (*ports.AuthResult, error) {
	if session == nil || session.User.Email == "" {
		return nil, fmt.Errorf("establish session: %w", domain.ErrNoSession)
	}
	if !session.User.EmailConfirmed {
		return nil, domain.ErrEmailNotVerified
	}

	email := strings.ToLower(session.User.Email)
	user, err := s.users.UpsertByEmail(ctx, email, session.User.Name, s.defaultRole)
	if err != nil {
		return nil, fmt.Errorf("establish session: upsert user: %w", err)
	}

	role := user.Role
	if !domain.IsKnownRole(role) {
		role = s.defaultRole
	}

	return &ports.AuthResult{
		Session: session,
		User:    user,
		Cookies: domain.SessionCookies{
			Role:   role,
			Name:   displayName(user.Name, user.Email),
			UserID: user.ID,
			Email:  strings.ToLower(user.Email),
		},
	}, nil
}

func pathStrings(path []ports.LoginState) []string {
	out := make([]string, len(path))
	for i, p := range path {
		out[i] = string(p)
	}
	return out
}

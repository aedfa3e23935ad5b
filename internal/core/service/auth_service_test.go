package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// stubProvider models a provider with a set of registered accounts.
type stubProvider struct {
	accounts    map[string]string // email -> password
	unconfirmed map[string]bool
	signUpErr   error
	signInErr   error // forced error on every sign in
	retryErr    error // forced error on the second sign in only
	signOutErr  error
	signIns     int
	signUps     int
	signedOut   []string
}

func newStubProvider() *stubProvider {
	return &stubProvider{accounts: map[string]string{}, unconfirmed: map[string]bool{}}
}

func (p *stubProvider) session(email string) *domain.ProviderSession {
	return &domain.ProviderSession{
		AccessToken:  "at-" + email,
		RefreshToken: "rt-" + email,
		User:         domain.ProviderUser{ID: "p-" + email, Email: email, EmailConfirmed: !p.unconfirmed[email]},
	}
}

func (p *stubProvider) SignInWithPassword(_ context.Context, email, password string) (*domain.ProviderSession, error) {
	p.signIns++
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	if p.signIns > 1 && p.retryErr != nil {
		return nil, p.retryErr
	}
	pw, ok := p.accounts[email]
	if !ok || pw != password {
		return nil, domain.ErrProviderRejected
	}
	if p.unconfirmed[email] {
		return nil, domain.ErrProviderEmailUnconfirmed
	}
	return p.session(email), nil
}

func (p *stubProvider) SignUp(_ context.Context, email, password, _ string) (*domain.ProviderUser, *domain.ProviderSession, error) {
	p.signUps++
	if p.signUpErr != nil {
		return nil, nil, p.signUpErr
	}
	if _, ok := p.accounts[email]; ok {
		return nil, nil, domain.ErrAlreadyRegistered
	}
	p.accounts[email] = password
	s := p.session(email)
	if p.unconfirmed[email] {
		return &s.User, nil, nil
	}
	return &s.User, s, nil
}

func (p *stubProvider) ExchangeCodeForSession(_ context.Context, code, _ string) (*domain.ProviderSession, error) {
	if code != "good-code" {
		return nil, domain.ErrNoSession
	}
	s := p.session("oauth@example.com")
	s.User.Name = "OAuth User"
	return s, nil
}

func (p *stubProvider) GetUser(_ context.Context, _ string) (*domain.ProviderUser, error) {
	return nil, domain.ErrNoSession
}

func (p *stubProvider) RefreshSession(_ context.Context, _ string) (*domain.ProviderSession, error) {
	return nil, domain.ErrNoSession
}

func (p *stubProvider) SignOut(_ context.Context, token string) error {
	if p.signOutErr != nil {
		return p.signOutErr
	}
	p.signedOut = append(p.signedOut, token)
	return nil
}

func legacyUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &domain.User{ID: "legacy-1", Name: "Legacy Lu", Email: email, Role: domain.RoleAdmin, PasswordHash: string(hash)}
}

func TestLogin_ProviderAccount(t *testing.T) {
	prov := newStubProvider()
	prov.accounts["ana@example.com"] = "s3cret"
	repo := newStubUserRepo()
	svc := NewAuthService(prov, repo, domain.RoleConsultor, zerolog.Nop())

	res, err := svc.Login(context.Background(), " Ana@Example.com ", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	want := []ports.LoginState{ports.LoginCredentialsSubmitted, ports.LoginSessionEstablished}
	if !reflect.DeepEqual(res.Path, want) {
		t.Fatalf("unexpected path %v", res.Path)
	}
	if res.Cookies.Role != domain.RoleConsultor || res.Cookies.Name != "ana" || res.Cookies.UserID == "" {
		t.Fatalf("unexpected cookies %+v", res.Cookies)
	}
	if res.Migrated {
		t.Fatalf("provider account should not be flagged as migrated")
	}
}

func TestLogin_LegacyBridge_EstablishesSession(t *testing.T) {
	prov := newStubProvider()
	repo := newStubUserRepo(legacyUser(t, "lu@example.com", "old-pass"))
	svc := NewAuthService(prov, repo, domain.RoleConsultor, zerolog.Nop())

	res, err := svc.Login(context.Background(), "lu@example.com", "old-pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	want := []ports.LoginState{
		ports.LoginCredentialsSubmitted,
		ports.LoginProviderAuthFailed,
		ports.LoginLegacyRecordFound,
		ports.LoginMigrationAttempted,
		ports.LoginRetry,
		ports.LoginSessionEstablished,
	}
	if !reflect.DeepEqual(res.Path, want) {
		t.Fatalf("unexpected path %v", res.Path)
	}
	if !res.Migrated || prov.signUps != 1 || prov.signIns != 2 {
		t.Fatalf("expected one migration and two sign-ins, got signUps=%d signIns=%d", prov.signUps, prov.signIns)
	}
	// The legacy role survives the migration.
	if res.Cookies.Role != domain.RoleAdmin || res.Cookies.UserID != "legacy-1" {
		t.Fatalf("unexpected cookies %+v", res.Cookies)
	}
}

func TestLogin_LegacyBridge_AlreadyRegisteredCountsAsMigrated(t *testing.T) {
	prov := newStubProvider()
	prov.accounts["lu@example.com"] = "old-pass"
	prov.signUpErr = domain.ErrAlreadyRegistered
	repo := newStubUserRepo(legacyUser(t, "lu@example.com", "old-pass"))

	// The first sign in is rejected to force the bridge.
	reject := true
	svc := NewAuthService(&rejectOnceProvider{stubProvider: prov, reject: &reject}, repo, domain.RoleConsultor, zerolog.Nop())

	res, err := svc.Login(context.Background(), "lu@example.com", "old-pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Migrated {
		t.Fatalf("existing registration must not be reported as a fresh migration")
	}
	if res.Path[len(res.Path)-1] != ports.LoginSessionEstablished {
		t.Fatalf("unexpected path %v", res.Path)
	}
}

type rejectOnceProvider struct {
	*stubProvider
	reject *bool
}

func (p *rejectOnceProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.ProviderSession, error) {
	if *p.reject {
		*p.reject = false
		return nil, domain.ErrProviderRejected
	}
	return p.stubProvider.SignInWithPassword(ctx, email, password)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*stubProvider, *stubUserRepo)
		password string
		wantErr  error
	}{
		{
			name:     "no legacy record",
			setup:    func(*stubProvider, *stubUserRepo) {},
			password: "x",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "legacy hash mismatch",
			setup:    func(*stubProvider, *stubUserRepo) {},
			password: "wrong",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name: "migration rejected",
			setup: func(p *stubProvider, _ *stubUserRepo) {
				p.signUpErr = errors.New("weak password")
			},
			password: "old-pass",
			wantErr:  domain.ErrMigrationFailed,
		},
		{
			name: "retry rejected",
			setup: func(p *stubProvider, _ *stubUserRepo) {
				p.retryErr = domain.ErrProviderRejected
			},
			password: "old-pass",
			wantErr:  domain.ErrPostMigrationLoginFailed,
		},
		{
			name: "retry needs verification",
			setup: func(p *stubProvider, _ *stubUserRepo) {
				p.unconfirmed["lu@example.com"] = true
			},
			password: "old-pass",
			wantErr:  domain.ErrEmailNotVerified,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prov := newStubProvider()
			var repo *stubUserRepo
			if tc.name == "no legacy record" {
				repo = newStubUserRepo()
			} else {
				repo = newStubUserRepo(legacyUser(t, "lu@example.com", "old-pass"))
			}
			tc.setup(prov, repo)
			svc := NewAuthService(prov, repo, domain.RoleConsultor, zerolog.Nop())

			res, err := svc.Login(context.Background(), "lu@example.com", tc.password)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if res != nil {
				t.Fatalf("expected no result on failure")
			}
		})
	}
}

func TestLogin_ProviderUnconfirmed(t *testing.T) {
	prov := newStubProvider()
	prov.accounts["ana@example.com"] = "pw"
	prov.unconfirmed["ana@example.com"] = true
	svc := NewAuthService(prov, newStubUserRepo(), domain.RoleConsultor, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "ana@example.com", "pw"); !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(newStubProvider(), newStubUserRepo(), "", zerolog.Nop())
	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUp_VerificationPending(t *testing.T) {
	prov := newStubProvider()
	prov.unconfirmed["new@example.com"] = true
	repo := newStubUserRepo()
	svc := NewAuthService(prov, repo, domain.RoleConsultor, zerolog.Nop())

	res, err := svc.SignUp(context.Background(), "New Person", "new@example.com", "pw")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if !res.VerificationRequired || res.Session != nil {
		t.Fatalf("expected pending verification, got %+v", res)
	}
	if res.User.Role != domain.RoleConsultor || res.User.Name != "New Person" {
		t.Fatalf("unexpected user %+v", res.User)
	}
}

func TestSignUp_AlreadyRegistered(t *testing.T) {
	prov := newStubProvider()
	prov.accounts["ana@example.com"] = "pw"
	svc := NewAuthService(prov, newStubUserRepo(), domain.RoleConsultor, zerolog.Nop())

	if _, err := svc.SignUp(context.Background(), "Ana", "ana@example.com", "pw"); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestCallback(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(newStubProvider(), repo, domain.RoleConsultor, zerolog.Nop())

	res, err := svc.Callback(context.Background(), "good-code", "verifier")
	if err != nil {
		t.Fatalf("Callback returned error: %v", err)
	}
	if res.Cookies.Name != "OAuth User" || repo.upserts != 1 {
		t.Fatalf("unexpected callback result %+v", res.Cookies)
	}

	if _, err := svc.Callback(context.Background(), "", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing code, got %v", err)
	}
	if _, err := svc.Callback(context.Background(), "bad", ""); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for bad code, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	prov := newStubProvider()
	svc := NewAuthService(prov, newStubUserRepo(), domain.RoleConsultor, zerolog.Nop())

	if err := svc.Logout(context.Background(), "at-1"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(prov.signedOut) != 1 {
		t.Fatalf("expected provider sign out")
	}

	prov.signOutErr = domain.ErrNoSession
	if err := svc.Logout(context.Background(), "expired"); err != nil {
		t.Fatalf("expired session should log out cleanly, got %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty token should be a no-op, got %v", err)
	}
}

func TestLogin_ProviderOutage_DoesNotBridge(t *testing.T) {
	prov := newStubProvider()
	prov.signInErr = errors.New("connection refused")
	repo := newStubUserRepo(legacyUser(t, "lu@example.com", "old-pass"))
	svc := NewAuthService(prov, repo, domain.RoleConsultor, zerolog.Nop())

	_, err := svc.Login(context.Background(), "lu@example.com", "old-pass")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected a transport error, got %v", err)
	}
	if prov.signUps != 0 || repo.finds != 0 {
		t.Fatalf("outage must not trigger the legacy bridge")
	}
}

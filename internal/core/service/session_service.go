package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// SessionService reconciles the session cookies with the identity provider.
// The provider is authoritative; the cookies are a cache of the user record.
type SessionService struct {
	users       ports.UserRepository
	defaultRole string
	log         zerolog.Logger
}

// NewSessionService returns a reconciler that repairs cookies from users.
// An empty or unknown defaultRole falls back to domain.RoleConsultor.
func NewSessionService(users ports.UserRepository, defaultRole string, log zerolog.Logger) *SessionService {
	if !domain.IsKnownRole(defaultRole) {
		defaultRole = domain.RoleConsultor
	}
	return &SessionService{users: users, defaultRole: defaultRole, log: log}
}

// Reconcile never mutates the user record. Cookie writes are described by the
// result and applied by the transport layer. Cookies only count as synced when
// they are complete and bound to the provider's email.
func (s *SessionService) Reconcile(ctx context.Context, pu *domain.ProviderUser, cookies domain.SessionCookies) domain.ReconcileResult {
	if pu == nil {
		return domain.ReconcileResult{State: domain.StateUnauthenticated, Clear: true}
	}

	if cookies.Complete() && cookies.BoundTo(pu.Email) {
		return domain.ReconcileResult{
			State: domain.StateSynced,
			Identity: &domain.Identity{
				UserID: cookies.UserID,
				Name:   cookies.Name,
				Email:  pu.Email,
				Role:   cookies.Role,
			},
		}
	}

	if cookies.Complete() {
		s.log.Warn().
			Str("email", pu.Email).
			Str("cookie_email", cookies.Email).
			Msg("session cookies belong to another account, repairing")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(pu.Email))
	if err != nil {
		s.log.Warn().Err(err).
			Str("email", pu.Email).
			Msg("session repair lookup failed, using degraded identity")
		return domain.ReconcileResult{
			State: domain.StateDegradedFallback,
			Identity: &domain.Identity{
				Name:  displayName(pu.Name, pu.Email),
				Email: pu.Email,
				Role:  s.defaultRole,
			},
		}
	}

	role := user.Role
	if !domain.IsKnownRole(role) {
		role = s.defaultRole
	}
	write := &domain.SessionCookies{
		Role:   role,
		Name:   displayName(user.Name, user.Email),
		UserID: user.ID,
		Email:  strings.ToLower(user.Email),
	}

	s.log.Debug().Str("user_id", user.ID).Msg("session cookies repaired from store")

	return domain.ReconcileResult{
		State: domain.StateRepairedFromStore,
		Identity: &domain.Identity{
			UserID: write.UserID,
			Name:   write.Name,
			Email:  user.Email,
			Role:   write.Role,
		},
		Write: write,
	}
}

func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// SessionReconciler resolves the caller identity from the provider session
// (nil when absent) and the session cookie snapshot.
type SessionReconciler interface {
	Reconcile(ctx context.Context, session *domain.ProviderUser, cookies domain.SessionCookies) domain.ReconcileResult
}

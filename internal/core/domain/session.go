package domain

import (
	"strings"
	"time"
)

// ProviderUser is the identity as verified by the external identity provider.
type ProviderUser struct {
	ID             string
	Email          string
	Name           string
	EmailConfirmed bool
}

// ProviderSession is an active identity-provider session.
type ProviderSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         ProviderUser
}

// SessionCookies is the browser-side cache of the durable user record.
// It never grants access on its own. Email binds the cache to the account it
// was written for.
type SessionCookies struct {
	Role   string
	Name   string
	UserID string
	Email  string
}

// Complete reports whether every value is present and the role is one the
// application recognises.
func (c SessionCookies) Complete() bool {
	return c.Name != "" && c.UserID != "" && c.Email != "" && IsKnownRole(c.Role)
}

// BoundTo reports whether the cache was written for the given account.
func (c SessionCookies) BoundTo(email string) bool {
	return email != "" && strings.EqualFold(c.Email, email)
}

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// ReconcileState tags the outcome of session reconciliation.
type ReconcileState string

const (
	StateUnauthenticated   ReconcileState = "unauthenticated"
	StateSynced            ReconcileState = "synced"
	StateRepairedFromStore ReconcileState = "repaired_from_store"
	StateDegradedFallback  ReconcileState = "degraded_fallback"
)

// ReconcileResult is the tagged outcome of reconciling cookies against the
// provider session.
//
// Write is non-nil only for StateRepairedFromStore and holds the values to
// rewrite together. Clear is set only for StateUnauthenticated.
// A StateDegradedFallback identity is for display and must not be used for
// privileged authorization.
type ReconcileResult struct {
	State    ReconcileState
	Identity *Identity
	Write    *SessionCookies
	Clear    bool
}

// Authenticated reports whether the result carries any identity.
func (r ReconcileResult) Authenticated() bool {
	return r.State != StateUnauthenticated && r.Identity != nil
}

// Trusted reports whether the identity was sourced from the durable record,
// directly or through previously synced cookies.
func (r ReconcileResult) Trusted() bool {
	return r.State == StateSynced || r.State == StateRepairedFromStore
}

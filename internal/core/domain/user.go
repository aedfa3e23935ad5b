package domain

import "time"

const (
	RoleConsultor = "CONSULTOR"
	RoleAdmin     = "ADMIN"
)

// IsKnownRole reports whether role belongs to the closed role enumeration.
func IsKnownRole(role string) bool {
	return role == RoleConsultor || role == RoleAdmin
}

// User is the durable identity record. PasswordHash is only set for accounts
// provisioned before the identity provider was introduced.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

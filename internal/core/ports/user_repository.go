package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// UserRepository defines persistence operations for durable user records.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpsertByEmail creates the user with defaultRole when the email is new,
	// otherwise it only refreshes the name. The stored record is returned.
	UpsertByEmail(ctx context.Context, email, name, defaultRole string) (*domain.User, error)
}

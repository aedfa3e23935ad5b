package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// RateRepository defines persistence operations for the rate table.
type RateRepository interface {
	// List returns every entry; a non-empty frequency narrows the result.
	List(ctx context.Context, frequency domain.BillingFrequency) ([]domain.RateEntry, error)
	// Upsert inserts or replaces the entry for its (service, level, frequency).
	Upsert(ctx context.Context, entry *domain.RateEntry) error
	Delete(ctx context.Context, id string) error
}

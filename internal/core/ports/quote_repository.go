package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// ListQuotesFilter carries the query parameters for listing quotes.
type ListQuotesFilter struct {
	UserID string // empty = all quotes (admin)
	Status string
	Page   int // 1-based
	Limit  int
}

// QuoteRepository defines persistence operations for quotes.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) error
	FindByID(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context, filter ListQuotesFilter) ([]*domain.Quote, int64, error)
	// UpdateFields applies a partial update keyed by column name. It returns
	// domain.ErrQuoteNotFound when no row has the given id.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// QuoteEventRepository persists the audit trail of quote changes.
type QuoteEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.QuoteEvent) error
	ListByQuote(ctx context.Context, quoteID string, limit int) ([]domain.QuoteEvent, error)
}

package ports

import (
	"context"
	"encoding/json"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// StaffingInput is one requested role on a new quote.
type StaffingInput struct {
	Role     string
	Level    string
	Quantity int
	// DefaultPrice enables the multiplier fallback for roles missing from the rate table.
	DefaultPrice *float64
}

// CreateQuoteInput carries the form state of a new quote.
type CreateQuoteInput struct {
	ClientName          string
	ProjectType         string
	ServiceType         string
	TechnicalParameters json.RawMessage
	Staffing            []StaffingInput
	DiagramDefinition   string
	BoardItemID         string
	// UserID and Email identify the owner; both must match the same stored user.
	UserID string
	Email  string
}

// ListQuotesInput carries the parameters of the list endpoints.
type ListQuotesInput struct {
	Identity domain.Identity
	Status   string
	Page     int
	Limit    int
}

// ListQuotesResult is a page of quotes.
type ListQuotesResult struct {
	Items      []*domain.Quote
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReviewQuoteInput is an administrative status transition.
type ReviewQuoteInput struct {
	QuoteID string
	Status  string
	ActorID string
}

// QuoteService defines the use-case operations on quotes.
type QuoteService interface {
	CreateQuote(ctx context.Context, in CreateQuoteInput) (*domain.Quote, error)
	GetQuote(ctx context.Context, id string, caller domain.Identity) (*domain.Quote, error)
	ListQuotes(ctx context.Context, in ListQuotesInput) (*ListQuotesResult, error)
	ReviewQuote(ctx context.Context, in ReviewQuoteInput) (*domain.Quote, error)
	DeleteQuote(ctx context.Context, id, actorID string) error
	History(ctx context.Context, id string) ([]domain.QuoteEvent, error)
}

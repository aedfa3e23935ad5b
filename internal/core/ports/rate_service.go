package ports

import (
	"context"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// ProfileOptionsInput asks for the selectable tiers of a role.
type ProfileOptionsInput struct {
	Role string
	// DefaultPrice enables the multiplier fallback when non-nil.
	DefaultPrice *float64
}

// ProfileOption is one selectable tier with its resolved monthly price.
type ProfileOption struct {
	Level domain.Level `json:"level"`
	Price float64      `json:"price"`
}

// UpsertRateInput carries an administrative rate-table edit.
type UpsertRateInput struct {
	ServiceName string
	Level       string
	BasePrice   float64
	Multiplier  float64
	Frequency   string
}

// RateService exposes the rate table and price resolution.
type RateService interface {
	ListRates(ctx context.Context) ([]domain.RateEntry, error)
	UpsertRate(ctx context.Context, in UpsertRateInput) (*domain.RateEntry, error)
	DeleteRate(ctx context.Context, id string) error
	ProfileOptions(ctx context.Context, in ProfileOptionsInput) ([]ProfileOption, error)
}

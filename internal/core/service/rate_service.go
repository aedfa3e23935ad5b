package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
	"github.com/cotizador/quoting-system/internal/core/pricing"
)

type RateService struct {
	repo        ports.RateRepository
	multipliers map[domain.Level]float64
	logger      zerolog.Logger
}

// NewRateService returns a RateService. A nil multipliers table selects
// pricing.DefaultMultipliers.
func NewRateService(repo ports.RateRepository, multipliers map[domain.Level]float64, logger zerolog.Logger) *RateService {
	if multipliers == nil {
		multipliers = pricing.DefaultMultipliers
	}
	return &RateService{repo: repo, multipliers: multipliers, logger: logger}
}

func (s *RateService) ListRates(ctx context.Context) ([]domain.RateEntry, error) {
	rates, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	return rates, nil
}

// UpsertRate validates and stores an administrative rate edit.
func (s *RateService) UpsertRate(ctx context.Context, in ports.UpsertRateInput) (*domain.RateEntry, error) {
	service := strings.TrimSpace(in.ServiceName)
	if service == "" {
		return nil, fmt.Errorf("upsert rate: %w: service name is required", domain.ErrValidation)
	}
	level, ok := domain.ParseLevel(in.Level)
	if !ok {
		return nil, fmt.Errorf("upsert rate: %w: unknown level %q", domain.ErrValidation, in.Level)
	}
	if in.BasePrice < 0 {
		return nil, fmt.Errorf("upsert rate: %w: base price must not be negative", domain.ErrValidation)
	}
	freq := domain.BillingFrequency(strings.ToUpper(strings.TrimSpace(in.Frequency)))
	switch freq {
	case "":
		freq = domain.FrequencyMonthly
	case domain.FrequencyMonthly, domain.FrequencyOneTime:
	default:
		return nil, fmt.Errorf("upsert rate: %w: unknown frequency %q", domain.ErrValidation, in.Frequency)
	}
	multiplier := in.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}

	now := time.Now().UTC()
	entry := &domain.RateEntry{
		ID:          uuid.NewString(),
		ServiceName: service,
		Level:       level,
		BasePrice:   in.BasePrice,
		Multiplier:  multiplier,
		Frequency:   freq,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("service", service).Msg("failed to upsert rate")
		return nil, fmt.Errorf("upsert rate: %w", err)
	}

	s.logger.Info().
		Str("service", service).
		Str("level", string(level)).
		Float64("base_price", in.BasePrice).
		Msg("rate entry saved")
	return entry, nil
}

func (s *RateService) DeleteRate(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rate %s: %w", id, err)
	}
	s.logger.Info().Str("rate_id", id).Msg("rate entry deleted")
	return nil
}

// ProfileOptions lists the selectable tiers of a role from the monthly rates.
func (s *RateService) ProfileOptions(ctx context.Context, in ports.ProfileOptionsInput) ([]ports.ProfileOption, error) {
	rates, err := s.repo.List(ctx, domain.FrequencyMonthly)
	if err != nil {
		return nil, fmt.Errorf("profile options: %w", err)
	}

	opts := pricing.Options(in.Role, rates, s.fallback(in.DefaultPrice))
	out := make([]ports.ProfileOption, len(opts))
	for i, o := range opts {
		out[i] = ports.ProfileOption{Level: o.Level, Price: o.Price}
	}
	return out, nil
}

// priceLines resolves the unit price of every staffing line against the
// monthly rate table. A line that does not resolve to a positive price is
// unavailable.
func (s *RateService) priceLines(ctx context.Context, in []ports.StaffingInput) ([]domain.StaffingLine, error) {
	if len(in) == 0 {
		return []domain.StaffingLine{}, nil
	}
	rates, err := s.repo.List(ctx, domain.FrequencyMonthly)
	if err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}

	lines := make([]domain.StaffingLine, 0, len(in))
	for i, st := range in {
		role := strings.TrimSpace(st.Role)
		level, ok := domain.ParseLevel(st.Level)
		if role == "" || !ok {
			return nil, fmt.Errorf("staffing[%d]: %w: role and a known level are required", i, domain.ErrValidation)
		}
		qty := st.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := pricing.ResolvePrice(role, level, rates, s.fallback(st.DefaultPrice))
		if price <= 0 {
			return nil, fmt.Errorf("staffing[%d] %s/%s: %w", i, role, level, domain.ErrProfileUnavailable)
		}
		lines = append(lines, domain.StaffingLine{
			Role:      role,
			Level:     level,
			Quantity:  qty,
			UnitPrice: price,
		})
	}
	return lines, nil
}

func (s *RateService) fallback(defaultPrice *float64) *pricing.Fallback {
	if defaultPrice == nil {
		return nil
	}
	return &pricing.Fallback{DefaultPrice: *defaultPrice, Multipliers: s.multipliers}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

func TestUpsertRate_Defaults(t *testing.T) {
	repo := &stubRateRepo{}
	svc := NewRateService(repo, nil, zerolog.Nop())

	entry, err := svc.UpsertRate(context.Background(), ports.UpsertRateInput{
		ServiceName: " DevOps ",
		Level:       "Senior",
		BasePrice:   3900,
	})
	if err != nil {
		t.Fatalf("UpsertRate returned error: %v", err)
	}
	if entry.ServiceName != "DevOps" || entry.Level != domain.LevelSenior {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Frequency != domain.FrequencyMonthly || entry.Multiplier != 1 || entry.ID == "" {
		t.Fatalf("expected defaults, got %+v", entry)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("entry not saved")
	}
}

func TestUpsertRate_Validation(t *testing.T) {
	svc := NewRateService(&stubRateRepo{}, nil, zerolog.Nop())
	for _, in := range []ports.UpsertRateInput{
		{ServiceName: "", Level: "mid"},
		{ServiceName: "QA", Level: "lead"},
		{ServiceName: "QA", Level: "mid", BasePrice: -1},
		{ServiceName: "QA", Level: "mid", Frequency: "WEEKLY"},
	} {
		if _, err := svc.UpsertRate(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestProfileOptions(t *testing.T) {
	svc := NewRateService(monthlyRates(), nil, zerolog.Nop())

	opts, err := svc.ProfileOptions(context.Background(), ports.ProfileOptionsInput{Role: "Backend Developer"})
	if err != nil {
		t.Fatalf("ProfileOptions returned error: %v", err)
	}
	// Only the monthly senior tier is configured; the one-time entry is ignored.
	if len(opts) != 1 || opts[0].Level != domain.LevelSenior || opts[0].Price != 4200 {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = svc.ProfileOptions(context.Background(), ports.ProfileOptionsInput{Role: "Architect", DefaultPrice: floatPtr(1000)})
	if err != nil {
		t.Fatalf("ProfileOptions returned error: %v", err)
	}
	if len(opts) != len(domain.Levels) || opts[1].Level != domain.LevelMid || opts[1].Price != 1000 {
		t.Fatalf("expected fallback tiers, got %+v", opts)
	}
}

func TestDeleteRate(t *testing.T) {
	repo := monthlyRates()
	svc := NewRateService(repo, nil, zerolog.Nop())

	if err := svc.DeleteRate(context.Background(), "r1"); err != nil {
		t.Fatalf("DeleteRate returned error: %v", err)
	}
	if err := svc.DeleteRate(context.Background(), "r1"); !errors.Is(err, domain.ErrRateNotFound) {
		t.Fatalf("expected ErrRateNotFound, got %v", err)
	}
}

func TestRates_StoreFailure(t *testing.T) {
	svc := NewRateService(&stubRateRepo{listErr: errStoreDown}, nil, zerolog.Nop())
	if _, err := svc.ListRates(context.Background()); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}

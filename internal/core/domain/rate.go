package domain

import (
	"strings"
	"time"
)

// Level is a seniority tier.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
	LevelExpert Level = "expert"
)

// Levels lists every tier in ascending seniority.
var Levels = []Level{LevelJunior, LevelMid, LevelSenior, LevelExpert}

// ParseLevel normalises s to a known Level. The second result is false for
// anything outside the closed set.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels {
		if l == known {
			return l, true
		}
	}
	return l, false
}

// BillingFrequency tells how a rate entry is charged.
type BillingFrequency string

const (
	FrequencyMonthly BillingFrequency = "MONTHLY"
	FrequencyOneTime BillingFrequency = "ONE_TIME"
)

// RateEntry is a single row of the rate table. At most one entry exists per
// (ServiceName, Level, Frequency); the store enforces it.
type RateEntry struct {
	ID          string           `json:"id"`
	ServiceName string           `json:"service_name"`
	Level       Level            `json:"level"`
	BasePrice   float64          `json:"base_price"`
	Multiplier  float64          `json:"multiplier"`
	Frequency   BillingFrequency `json:"frequency"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

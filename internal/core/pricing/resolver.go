// Package pricing resolves monthly role prices from the rate table and sums
// priced lines into quote totals.
package pricing

import (
	"strings"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// DefaultMultipliers scales a default price by seniority when a role has no
// rate-table entry.
var DefaultMultipliers = map[domain.Level]float64{
	domain.LevelJunior: 0.7,
	domain.LevelMid:    1.0,
	domain.LevelSenior: 1.35,
	domain.LevelExpert: 1.7,
}

// Fallback enables the default-price path of ResolvePrice. Both fields must be
// set for it to apply.
type Fallback struct {
	DefaultPrice float64
	Multipliers  map[domain.Level]float64
}

// ResolvePrice returns the monthly price of roleName at level.
//
// An entry matching the role (case-insensitive) and level wins when its price
// is non-zero; a zero-priced entry counts as missing. Otherwise the fallback
// default price is scaled by the level multiplier, 1.0 for unlisted levels.
// Zero means the tier is unavailable for this role and must not be offered.
func ResolvePrice(roleName string, level domain.Level, rates []domain.RateEntry, fb *Fallback) float64 {
	role := strings.TrimSpace(roleName)
	for _, r := range rates {
		if r.Level != level || !strings.EqualFold(strings.TrimSpace(r.ServiceName), role) {
			continue
		}
		if r.BasePrice != 0 {
			return r.BasePrice
		}
		break
	}

	if fb == nil || fb.Multipliers == nil {
		return 0
	}
	m, ok := fb.Multipliers[level]
	if !ok {
		m = 1.0
	}
	return fb.DefaultPrice * m
}

// Option is a selectable tier for a role.
type Option struct {
	Level domain.Level
	Price float64
}

// Options lists the tiers of roleName that resolve to a usable price, in
// ascending seniority. Unavailable tiers are left out.
func Options(roleName string, rates []domain.RateEntry, fb *Fallback) []Option {
	out := make([]Option, 0, len(domain.Levels))
	for _, lvl := range domain.Levels {
		if p := ResolvePrice(roleName, lvl, rates, fb); p > 0 {
			out = append(out, Option{Level: lvl, Price: p})
		}
	}
	return out
}

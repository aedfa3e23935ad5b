package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

var sampleRates = []domain.RateEntry{
	{ServiceName: "Backend Developer", Level: domain.LevelJunior, BasePrice: 1800},
	{ServiceName: "Backend Developer", Level: domain.LevelSenior, BasePrice: 4200},
	{ServiceName: "Backend Developer", Level: domain.LevelExpert, BasePrice: 0},
	{ServiceName: "QA Analyst", Level: domain.LevelMid, BasePrice: 2100},
}

func TestResolvePrice_ExactEntry(t *testing.T) {
	tests := []struct {
		role  string
		level domain.Level
		want  float64
	}{
		{"Backend Developer", domain.LevelJunior, 1800},
		{"backend developer", domain.LevelJunior, 1800},
		{"BACKEND DEVELOPER", domain.LevelSenior, 4200},
		{"qa analyst", domain.LevelMid, 2100},
	}

	for _, tt := range tests {
		fb := &Fallback{DefaultPrice: 1000, Multipliers: DefaultMultipliers}
		assert.Equal(t, tt.want, ResolvePrice(tt.role, tt.level, sampleRates, nil), "%s/%s without fallback", tt.role, tt.level)
		assert.Equal(t, tt.want, ResolvePrice(tt.role, tt.level, sampleRates, fb), "%s/%s with fallback", tt.role, tt.level)
	}
}

func TestResolvePrice_FallbackScalesDefault(t *testing.T) {
	fb := &Fallback{DefaultPrice: 2000, Multipliers: map[domain.Level]float64{
		domain.LevelJunior: 0.5,
		domain.LevelSenior: 1.5,
	}}

	assert.Equal(t, 1000.0, ResolvePrice("Data Engineer", domain.LevelJunior, sampleRates, fb))
	assert.Equal(t, 3000.0, ResolvePrice("Data Engineer", domain.LevelSenior, sampleRates, fb))
	// Unlisted level scales by 1.0.
	assert.Equal(t, 2000.0, ResolvePrice("Data Engineer", domain.LevelMid, sampleRates, fb))
}

func TestResolvePrice_ZeroEntryTreatedAsMissing(t *testing.T) {
	assert.Equal(t, 0.0, ResolvePrice("Backend Developer", domain.LevelExpert, sampleRates, nil))

	fb := &Fallback{DefaultPrice: 1000, Multipliers: DefaultMultipliers}
	assert.Equal(t, 1700.0, ResolvePrice("Backend Developer", domain.LevelExpert, sampleRates, fb))
}

func TestResolvePrice_NoEntryNoFallback(t *testing.T) {
	assert.Equal(t, 0.0, ResolvePrice("Unknown Role", domain.LevelMid, sampleRates, nil))
	assert.Equal(t, 0.0, ResolvePrice("Unknown Role", domain.LevelMid, nil, nil))
	// A default price without a multiplier table does not apply.
	assert.Equal(t, 0.0, ResolvePrice("Unknown Role", domain.LevelMid, sampleRates, &Fallback{DefaultPrice: 1000}))
}

func TestOptions_SuppressesUnavailableTiers(t *testing.T) {
	opts := Options("backend developer", sampleRates, nil)

	assert.Equal(t, []Option{
		{Level: domain.LevelJunior, Price: 1800},
		{Level: domain.LevelSenior, Price: 4200},
	}, opts)

	assert.Empty(t, Options("Unknown Role", sampleRates, nil))
}

func TestOptions_WithFallbackCoversEveryTier(t *testing.T) {
	fb := &Fallback{DefaultPrice: 1000, Multipliers: DefaultMultipliers}
	opts := Options("QA Analyst", sampleRates, fb)

	assert.Len(t, opts, len(domain.Levels))
	assert.Equal(t, 700.0, opts[0].Price)
	assert.Equal(t, 2100.0, opts[1].Price)
}

func TestTotal(t *testing.T) {
	lines := []domain.StaffingLine{
		{Role: "Backend Developer", Level: domain.LevelSenior, Quantity: 2, UnitPrice: 4200},
		{Role: "QA Analyst", Level: domain.LevelMid, Quantity: 1, UnitPrice: 2100.556},
	}

	assert.Equal(t, 10500.56, Total(lines))
	assert.Equal(t, 0.0, Total(nil))
}

package pricing

import (
	"math"

	"github.com/cotizador/quoting-system/internal/core/domain"
)

// Total sums the selected lines (unit price times quantity) rounded to cents.
func Total(lines []domain.StaffingLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return RoundCents(sum)
}

// RoundCents rounds v to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

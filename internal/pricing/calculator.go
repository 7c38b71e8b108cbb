package pricing

import (
	"math"
	"time"

	"github.com/tailtown/pricingservice/internal/domain"
)

// CalculateAmount derives an amount from a booking total. Unknown amount
// types return 0 rather than failing: bad configuration degrades to a
// zero amount instead of blocking the quote.
func CalculateAmount(totalCost float64, amountType domain.AmountType, percentage, fixedAmount float64) float64 {
	switch amountType {
	case domain.AmountTypeFull:
		return totalCost
	case domain.AmountTypePercentage:
		return Round2(totalCost * percentage / 100)
	case domain.AmountTypeFixed:
		return math.Min(fixedAmount, totalCost)
	default:
		return 0
	}
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AdvanceDays returns how many whole days ahead of today a start date
// lies, rounding partial days up and clamping at zero.
func AdvanceDays(today, start time.Time) int {
	days := int(math.Ceil(start.Sub(today).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// DaysBetween returns the non-negative whole-day count from one date to
// another.
func DaysBetween(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Package explain renders calculation results into the human-readable
// sentences the booking screens display. Display-only: no business logic
// beyond string selection by type.
package explain

import (
	"fmt"

	"github.com/tailtown/pricingservice/internal/domain"
)

// Currency formats an amount to two decimals with a currency sign.
func Currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Percent formats a percentage to integer precision when whole, one
// decimal otherwise.
func Percent(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d%%", int64(v))
	}
	return fmt.Sprintf("%.1f%%", v)
}

// Deposit explains how a deposit amount was derived.
func Deposit(amountType domain.AmountType, percentage, fixedAmount, deposit float64, ruleName string) string {
	source := "standard deposit policy"
	if ruleName != "" {
		source = fmt.Sprintf("rule %q", ruleName)
	}
	switch amountType {
	case domain.AmountTypeFull:
		return fmt.Sprintf("Full payment of %s is due as deposit per %s.", Currency(deposit), source)
	case domain.AmountTypePercentage:
		return fmt.Sprintf("A %s deposit of %s applies per %s.", Percent(percentage), Currency(deposit), source)
	case domain.AmountTypeFixed:
		return fmt.Sprintf("A fixed deposit of %s applies per %s.", Currency(deposit), source)
	default:
		return "No deposit is required."
	}
}

// Refund explains a cancellation refund outcome.
func Refund(q domain.RefundQuote, policy domain.RefundPolicy) string {
	switch policy {
	case domain.RefundPolicyNonRefundable:
		return "This deposit is non-refundable."
	case domain.RefundPolicyFull:
		return fmt.Sprintf("The full deposit of %s will be refunded.", Currency(q.RefundAmount))
	case domain.RefundPolicyTiered:
		if q.MatchedTier == nil {
			return fmt.Sprintf("Cancelling %d days before the start date qualifies for no refund.", q.DaysBeforeStart)
		}
		return fmt.Sprintf("Cancelling %d days before the start date qualifies for a %s refund of %s.",
			q.DaysBeforeStart, Percent(q.RefundPercentage), Currency(q.RefundAmount))
	default:
		return "No refund applies."
	}
}

// MultiPet explains a multi-pet price composition.
func MultiPet(capacity domain.SuiteCapacity, numberOfPets int, total float64) string {
	if numberOfPets < 1 {
		return "No pets selected"
	}
	switch capacity.PricingType {
	case domain.PricingTypePerPet:
		return fmt.Sprintf("%s for the first pet plus %s per additional pet: %s total for %d pets.",
			Currency(capacity.BasePrice), Currency(capacity.AdditionalPetPrice), Currency(total), numberOfPets)
	case domain.PricingTypeFlatRate:
		return fmt.Sprintf("Flat rate of %s covers up to %d pets.", Currency(total), capacity.MaxPets)
	case domain.PricingTypeTiered:
		return fmt.Sprintf("Tiered rate of %s applies for %d pets.", Currency(total), numberOfPets)
	case domain.PricingTypePercentageOff:
		return fmt.Sprintf("%s for the first pet with %s off each additional pet: %s total for %d pets.",
			Currency(capacity.BasePrice), Percent(capacity.PercentageOff), Currency(total), numberOfPets)
	default:
		return fmt.Sprintf("Standard rate of %s applies.", Currency(total))
	}
}

// Price explains a dynamic pricing adjustment.
func Price(amountType domain.AmountType, percentage, amount float64, ruleName string) string {
	if ruleName == "" {
		return "No pricing adjustment applies."
	}
	switch amountType {
	case domain.AmountTypeFull:
		return fmt.Sprintf("Rule %q applies to the full amount of %s.", ruleName, Currency(amount))
	case domain.AmountTypePercentage:
		return fmt.Sprintf("Rule %q applies %s, amounting to %s.", ruleName, Percent(percentage), Currency(amount))
	case domain.AmountTypeFixed:
		return fmt.Sprintf("Rule %q applies a fixed amount of %s.", ruleName, Currency(amount))
	default:
		return "No pricing adjustment applies."
	}
}

// Package deposit computes booking deposits and cancellation refunds from
// tenant deposit rules and defaults. All functions are pure.
package deposit

import (
	"sort"
	"time"

	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/explain"
	"github.com/tailtown/pricingservice/internal/pricing"
)

// Calculate matches the tenant's deposit rules against the booking and
// derives the deposit amount; when no rule matches, the tenant default
// configuration applies.
func Calculate(rules []domain.Rule, cfg domain.DepositConfig, ctx domain.BookingContext) domain.DepositQuote {
	quote := domain.DepositQuote{
		TotalCost:    ctx.TotalCost,
		RefundPolicy: cfg.RefundPolicy,
	}

	if rule := pricing.Match(rules, ctx); rule != nil {
		quote.AmountType = rule.AmountType
		quote.DepositAmount = pricing.CalculateAmount(ctx.TotalCost, rule.AmountType, rule.Percentage, rule.FixedAmount)
		id := rule.ID
		quote.MatchedRuleID = &id
		quote.MatchedRuleName = rule.Name
		quote.Explanation = explain.Deposit(rule.AmountType, rule.Percentage, rule.FixedAmount, quote.DepositAmount, rule.Name)
		return quote
	}

	quote.AmountType = cfg.DefaultAmountType
	quote.DepositAmount = pricing.CalculateAmount(ctx.TotalCost, cfg.DefaultAmountType, cfg.DefaultPercentage, cfg.DefaultFixedAmount)
	quote.Explanation = explain.Deposit(cfg.DefaultAmountType, cfg.DefaultPercentage, cfg.DefaultFixedAmount, quote.DepositAmount, "")
	return quote
}

// CalculateRefund resolves the refund owed when a booking is cancelled.
// Unknown policies refund nothing, matching the documented degrade
// behavior rather than erroring.
func CalculateRefund(depositAmount float64, policy domain.RefundPolicy, tiers []domain.RefundTier, start, cancel time.Time) domain.RefundQuote {
	quote := domain.RefundQuote{
		DepositAmount:   depositAmount,
		DaysBeforeStart: pricing.DaysBetween(cancel, start),
	}

	switch policy {
	case domain.RefundPolicyNonRefundable:
		// refund stays 0
	case domain.RefundPolicyFull:
		quote.RefundAmount = depositAmount
		quote.RefundPercentage = 100
	case domain.RefundPolicyTiered:
		if tier := resolveTier(tiers, quote.DaysBeforeStart); tier != nil {
			t := *tier
			quote.MatchedTier = &t
			quote.RefundPercentage = tier.RefundPercentage
			quote.RefundAmount = pricing.CalculateAmount(depositAmount, domain.AmountTypePercentage, tier.RefundPercentage, 0)
		}
	default:
		// unknown policy refunds nothing
	}

	quote.Explanation = explain.Refund(quote, policy)
	return quote
}

// resolveTier picks the most generous tier whose threshold is met: tiers
// sorted descending by days-before-start, first threshold <= the actual
// day count wins. Nil when the cancellation is closer to the start date
// than the smallest threshold.
func resolveTier(tiers []domain.RefundTier, daysBeforeStart int) *domain.RefundTier {
	sorted := make([]domain.RefundTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DaysBeforeStart > sorted[j].DaysBeforeStart
	})
	for i := range sorted {
		if sorted[i].DaysBeforeStart <= daysBeforeStart {
			return &sorted[i]
		}
	}
	return nil
}

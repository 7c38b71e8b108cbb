package pricing

import (
	"sort"

	"github.com/tailtown/pricingservice/internal/domain"
)

// Match returns the first active rule whose conditions hold for the
// booking, in ascending priority order, or nil when none apply. First
// match wins; there is no scoring. Callers fall back to tenant defaults
// on a nil result.
func Match(rules []domain.Rule, ctx domain.BookingContext) *domain.Rule {
	candidates := make([]domain.Rule, 0, len(rules))
	for _, r := range rules {
		if !r.Active {
			continue
		}
		if r.ValidFrom != nil && ctx.Today.Before(*r.ValidFrom) {
			continue
		}
		if r.ValidUntil != nil && ctx.Today.After(*r.ValidUntil) {
			continue
		}
		candidates = append(candidates, r)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})

	for i := range candidates {
		if conditionsMet(candidates[i].Conditions, ctx) {
			return &candidates[i]
		}
	}
	return nil
}

// conditionsMet evaluates the condition conjunction. Every unset field is
// vacuously true.
func conditionsMet(c domain.RuleConditions, ctx domain.BookingContext) bool {
	if c.MinCost != nil && ctx.TotalCost < *c.MinCost {
		return false
	}
	if c.MaxCost != nil && ctx.TotalCost > *c.MaxCost {
		return false
	}
	if len(c.ServiceIDs) > 0 && !containsString(c.ServiceIDs, ctx.ServiceID) {
		return false
	}
	if c.MinAdvanceDays != nil || c.MaxAdvanceDays != nil {
		advance := AdvanceDays(ctx.Today, ctx.StartDate)
		if c.MinAdvanceDays != nil && advance < *c.MinAdvanceDays {
			return false
		}
		if c.MaxAdvanceDays != nil && advance > *c.MaxAdvanceDays {
			return false
		}
	}
	if len(c.DateRanges) > 0 && !inAnyDateRange(c.DateRanges, ctx.StartDate.Format("2006-01-02")) {
		return false
	}
	if len(c.DaysOfWeek) > 0 && !containsInt(c.DaysOfWeek, int(ctx.StartDate.Weekday())) {
		return false
	}
	if c.MinNights != nil || c.MaxNights != nil {
		nights := DaysBetween(ctx.StartDate, ctx.EndDate)
		if c.MinNights != nil && nights < *c.MinNights {
			return false
		}
		if c.MaxNights != nil && nights > *c.MaxNights {
			return false
		}
	}
	if c.FirstTimeCustomer != nil && ctx.FirstTimeCustomer != *c.FirstTimeCustomer {
		return false
	}
	return true
}

// inAnyDateRange compares ISO date strings lexically; for the fixed
// 2006-01-02 layout that ordering matches chronological ordering.
func inAnyDateRange(ranges []domain.DateRange, date string) bool {
	for _, r := range ranges {
		if date >= r.Start && date <= r.End {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, n := range set {
		if n == v {
			return true
		}
	}
	return false
}

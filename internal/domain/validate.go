package domain

import (
	"fmt"
	"sort"
	"time"
)

// The calculators deliberately never validate and degrade to zero on bad
// configuration, so it has to be caught where it is written. These checks
// run on admin writes only.

// Validate checks a rule before it is persisted.
func (r Rule) Validate() error {
	if r.TenantID == "" {
		return NewInvalidInputError("tenant_id is required", "")
	}
	if r.Kind != RuleKindDeposit && r.Kind != RuleKindPricing {
		return NewInvalidInputError("invalid rule kind", string(r.Kind))
	}
	if r.Name == "" {
		return NewInvalidInputError("rule name is required", "")
	}
	switch r.AmountType {
	case AmountTypeFull:
	case AmountTypePercentage:
		if r.Percentage < 0 || r.Percentage > 100 {
			return NewInvalidInputError("percentage must be within [0,100]",
				fmt.Sprintf("percentage: %v", r.Percentage))
		}
	case AmountTypeFixed:
		if r.FixedAmount < 0 {
			return NewInvalidInputError("fixed amount must not be negative",
				fmt.Sprintf("fixed_amount: %v", r.FixedAmount))
		}
	default:
		return NewInvalidInputError("invalid amount type", string(r.AmountType))
	}
	if err := r.Conditions.validate(); err != nil {
		return err
	}
	return nil
}

func (c RuleConditions) validate() error {
	if c.MinCost != nil && c.MaxCost != nil && *c.MinCost > *c.MaxCost {
		return NewInvalidInputError("min_cost exceeds max_cost", "")
	}
	if c.MinAdvanceDays != nil && c.MaxAdvanceDays != nil && *c.MinAdvanceDays > *c.MaxAdvanceDays {
		return NewInvalidInputError("min_advance_days exceeds max_advance_days", "")
	}
	if c.MinNights != nil && c.MaxNights != nil && *c.MinNights > *c.MaxNights {
		return NewInvalidInputError("min_nights exceeds max_nights", "")
	}
	for _, d := range c.DaysOfWeek {
		if d < 0 || d > 6 {
			return NewInvalidInputError("day of week out of range",
				fmt.Sprintf("day: %d", d))
		}
	}
	for _, dr := range c.DateRanges {
		for _, v := range []string{dr.Start, dr.End} {
			if _, err := time.Parse("2006-01-02", v); err != nil {
				return NewInvalidInputError("date range value is not an ISO date", v)
			}
		}
		if dr.Start > dr.End {
			return NewInvalidInputError("date range start after end",
				fmt.Sprintf("%s..%s", dr.Start, dr.End))
		}
	}
	return nil
}

// ValidatePriorities rejects duplicate priorities within one tenant's rule
// set of a given kind. The matcher assumes priorities are unique.
func ValidatePriorities(rules []Rule) error {
	seen := make(map[int]string, len(rules))
	for _, r := range rules {
		if other, ok := seen[r.Priority]; ok {
			return NewInvalidConfigError("duplicate rule priority",
				fmt.Sprintf("priority %d used by %q and %q", r.Priority, other, r.Name))
		}
		seen[r.Priority] = r.Name
	}
	return nil
}

// Validate checks a deposit config before it is persisted.
func (c DepositConfig) Validate() error {
	if c.TenantID == "" {
		return NewInvalidInputError("tenant_id is required", "")
	}
	switch c.DefaultAmountType {
	case AmountTypeFull, AmountTypeFixed:
	case AmountTypePercentage:
		if c.DefaultPercentage < 0 || c.DefaultPercentage > 100 {
			return NewInvalidInputError("default percentage must be within [0,100]",
				fmt.Sprintf("percentage: %v", c.DefaultPercentage))
		}
	default:
		return NewInvalidInputError("invalid default amount type", string(c.DefaultAmountType))
	}
	switch c.RefundPolicy {
	case RefundPolicyNonRefundable, RefundPolicyFull:
	case RefundPolicyTiered:
		if len(c.RefundTiers) == 0 {
			return NewInvalidInputError("tiered refund policy requires tiers", "")
		}
	default:
		return NewInvalidInputError("invalid refund policy", string(c.RefundPolicy))
	}
	seen := make(map[int]bool, len(c.RefundTiers))
	for _, t := range c.RefundTiers {
		if t.DaysBeforeStart < 0 {
			return NewInvalidInputError("refund tier threshold must not be negative",
				fmt.Sprintf("days_before_start: %d", t.DaysBeforeStart))
		}
		if t.RefundPercentage < 0 || t.RefundPercentage > 100 {
			return NewInvalidInputError("refund percentage must be within [0,100]",
				fmt.Sprintf("refund_percentage: %v", t.RefundPercentage))
		}
		if seen[t.DaysBeforeStart] {
			return NewInvalidInputError("duplicate refund tier threshold",
				fmt.Sprintf("days_before_start: %d", t.DaysBeforeStart))
		}
		seen[t.DaysBeforeStart] = true
	}
	return nil
}

// Validate checks a suite capacity before it is persisted. Tier bands must
// be non-overlapping and contiguous; the composer relies on it.
func (s SuiteCapacity) Validate() error {
	if s.TenantID == "" {
		return NewInvalidInputError("tenant_id is required", "")
	}
	if s.SuiteType == "" {
		return NewInvalidInputError("suite_type is required", "")
	}
	if s.MaxPets < 1 {
		return NewInvalidInputError("max_pets must be at least 1",
			fmt.Sprintf("max_pets: %d", s.MaxPets))
	}
	if s.BasePrice < 0 {
		return NewInvalidInputError("base_price must not be negative", "")
	}
	switch s.PricingType {
	case PricingTypeFlatRate:
	case PricingTypePerPet:
		if s.AdditionalPetPrice <= 0 {
			return NewInvalidInputError("per-pet pricing requires additional_pet_price", "")
		}
	case PricingTypePercentageOff:
		if s.AdditionalPetPrice <= 0 {
			return NewInvalidInputError("percentage-off pricing requires additional_pet_price", "")
		}
		if s.PercentageOff < 0 || s.PercentageOff > 100 {
			return NewInvalidInputError("percentage_off must be within [0,100]",
				fmt.Sprintf("percentage_off: %v", s.PercentageOff))
		}
	case PricingTypeTiered:
		if len(s.TieredPricing) == 0 {
			return NewInvalidInputError("tiered pricing requires bands", "")
		}
		bands := make([]PetTier, len(s.TieredPricing))
		copy(bands, s.TieredPricing)
		sort.Slice(bands, func(i, j int) bool { return bands[i].MinPets < bands[j].MinPets })
		for i, b := range bands {
			if b.MinPets < 1 || b.MaxPets < b.MinPets {
				return NewInvalidInputError("invalid tier band bounds",
					fmt.Sprintf("band %d..%d", b.MinPets, b.MaxPets))
			}
			if i > 0 && b.MinPets != bands[i-1].MaxPets+1 {
				return NewInvalidInputError("tier bands must be contiguous and non-overlapping",
					fmt.Sprintf("band %d..%d follows %d..%d",
						b.MinPets, b.MaxPets, bands[i-1].MinPets, bands[i-1].MaxPets))
			}
		}
	default:
		return NewInvalidInputError("invalid pricing type", string(s.PricingType))
	}
	return nil
}

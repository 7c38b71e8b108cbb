package domain

import (
	"time"

	"github.com/google/uuid"
)

// AmountType selects how a rule (or tenant default) derives an amount
// from a booking's total cost.
type AmountType string

const (
	AmountTypeFull       AmountType = "FULL"
	AmountTypePercentage AmountType = "PERCENTAGE"
	AmountTypeFixed      AmountType = "FIXED"
)

// RefundPolicy controls how much of a deposit is returned on cancellation.
type RefundPolicy string

const (
	RefundPolicyNonRefundable RefundPolicy = "NON_REFUNDABLE"
	RefundPolicyFull          RefundPolicy = "FULL_REFUND"
	RefundPolicyTiered        RefundPolicy = "TIERED_REFUND"
)

// PricingType selects the multi-pet pricing scheme for a suite type.
type PricingType string

const (
	PricingTypePerPet        PricingType = "PER_PET"
	PricingTypeFlatRate      PricingType = "FLAT_RATE"
	PricingTypeTiered        PricingType = "TIERED"
	PricingTypePercentageOff PricingType = "PERCENTAGE_OFF"
)

// RuleKind separates deposit rules from dynamic pricing rules. Both share
// the same condition/effect shape and matching semantics.
type RuleKind string

const (
	RuleKindDeposit RuleKind = "deposit"
	RuleKindPricing RuleKind = "pricing"
)

// DateRange is an inclusive calendar date window in ISO form (2006-01-02).
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RuleConditions is a conjunction of independent checks. A nil/empty field
// means "no constraint" and is vacuously true.
type RuleConditions struct {
	MinCost           *float64    `json:"min_cost,omitempty"`
	MaxCost           *float64    `json:"max_cost,omitempty"`
	ServiceIDs        []string    `json:"service_ids,omitempty"`
	MinAdvanceDays    *int        `json:"min_advance_days,omitempty"`
	MaxAdvanceDays    *int        `json:"max_advance_days,omitempty"`
	DateRanges        []DateRange `json:"date_ranges,omitempty"`
	DaysOfWeek        []int       `json:"days_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	MinNights         *int        `json:"min_nights,omitempty"`
	MaxNights         *int        `json:"max_nights,omitempty"`
	FirstTimeCustomer *bool       `json:"first_time_customer,omitempty"`
}

// Rule is a named, prioritized, optionally time-bounded configuration
// record. Rules are owned by tenant configuration and treated as
// immutable once matched against a booking.
type Rule struct {
	ID          uuid.UUID      `json:"id"`
	TenantID    string         `json:"tenant_id"`
	Kind        RuleKind       `json:"kind"`
	Name        string         `json:"name"`
	Priority    int            `json:"priority"`
	Active      bool           `json:"active"`
	ValidFrom   *time.Time     `json:"valid_from,omitempty"`
	ValidUntil  *time.Time     `json:"valid_until,omitempty"`
	Conditions  RuleConditions `json:"conditions"`
	AmountType  AmountType     `json:"amount_type"`
	Percentage  float64        `json:"percentage"`
	FixedAmount float64        `json:"fixed_amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// RefundTier maps a days-before-start threshold to a refund percentage.
// Tiers are evaluated descending by threshold; the first tier whose
// threshold is met applies.
type RefundTier struct {
	DaysBeforeStart  int     `json:"days_before_start"`
	RefundPercentage float64 `json:"refund_percentage"`
}

// DepositConfig is the singleton-per-tenant default behavior used when no
// deposit rule matches a booking.
type DepositConfig struct {
	TenantID           string       `json:"tenant_id"`
	DefaultAmountType  AmountType   `json:"default_amount_type"`
	DefaultPercentage  float64      `json:"default_percentage"`
	DefaultFixedAmount float64      `json:"default_fixed_amount"`
	RefundPolicy       RefundPolicy `json:"refund_policy"`
	RefundTiers        []RefundTier `json:"refund_tiers,omitempty"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// PetTier is one band of a tiered multi-pet price schedule. Bands are
// assumed contiguous and non-overlapping; Validate enforces this on admin
// writes, the calculation path does not.
type PetTier struct {
	MinPets int     `json:"min_pets"`
	MaxPets int     `json:"max_pets"`
	Price   float64 `json:"price"`
}

// SuiteCapacity is the per-suite-type pricing configuration.
type SuiteCapacity struct {
	TenantID           string      `json:"tenant_id"`
	SuiteType          string      `json:"suite_type"`
	MaxPets            int         `json:"max_pets"`
	BasePrice          float64     `json:"base_price"`
	PricingType        PricingType `json:"pricing_type"`
	AdditionalPetPrice float64     `json:"additional_pet_price,omitempty"`
	TieredPricing      []PetTier   `json:"tiered_pricing,omitempty"`
	PercentageOff      float64     `json:"percentage_off,omitempty"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// BookingContext carries the booking facts a rule is matched against.
// Dates are date-only values parsed and validated at the transport
// boundary; the matcher never sees a malformed date.
type BookingContext struct {
	TotalCost         float64
	ServiceID         string
	StartDate         time.Time
	EndDate           time.Time
	Today             time.Time
	FirstTimeCustomer bool
}

// BreakdownLine is one human-visible line of a price breakdown.
type BreakdownLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// DepositQuote is the ephemeral result of a deposit calculation. Advisory
// is always false here: this service is the authoritative recomputation
// that client-side previews shadow.
type DepositQuote struct {
	TotalCost       float64      `json:"total_cost"`
	DepositAmount   float64      `json:"deposit_amount"`
	AmountType      AmountType   `json:"amount_type"`
	MatchedRuleID   *uuid.UUID   `json:"matched_rule_id,omitempty"`
	MatchedRuleName string       `json:"matched_rule_name,omitempty"`
	RefundPolicy    RefundPolicy `json:"refund_policy"`
	Explanation     string       `json:"explanation"`
	Advisory        bool         `json:"advisory"`
}

// RefundQuote is the ephemeral result of a cancellation refund calculation.
type RefundQuote struct {
	DepositAmount    float64     `json:"deposit_amount"`
	RefundAmount     float64     `json:"refund_amount"`
	RefundPercentage float64     `json:"refund_percentage"`
	DaysBeforeStart  int         `json:"days_before_start"`
	MatchedTier      *RefundTier `json:"matched_tier,omitempty"`
	Explanation      string      `json:"explanation"`
	Advisory         bool        `json:"advisory"`
}

// PricingQuote is the ephemeral result of a multi-pet price composition.
type PricingQuote struct {
	TotalPrice  float64         `json:"total_price"`
	Breakdown   []BreakdownLine `json:"breakdown"`
	PerPetCost  float64         `json:"per_pet_cost"`
	Savings     float64         `json:"savings,omitempty"`
	Explanation string          `json:"explanation"`
	Advisory    bool            `json:"advisory"`
}

// PriceQuote is the ephemeral result of a dynamic pricing rule evaluation:
// the derived amount a matched rule (if any) produces from the base cost.
type PriceQuote struct {
	BaseCost        float64    `json:"base_cost"`
	Amount          float64    `json:"amount"`
	AmountType      AmountType `json:"amount_type,omitempty"`
	MatchedRuleID   *uuid.UUID `json:"matched_rule_id,omitempty"`
	MatchedRuleName string     `json:"matched_rule_name,omitempty"`
	Explanation     string     `json:"explanation"`
	Advisory        bool       `json:"advisory"`
}

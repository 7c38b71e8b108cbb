package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tailtown/pricingservice/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func testContext() domain.BookingContext {
	return domain.BookingContext{
		TotalCost:         250,
		ServiceID:         "boarding",
		Today:             time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		StartDate:         time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		FirstTimeCustomer: false,
	}
}

func rule(name string, priority int, conds domain.RuleConditions) domain.Rule {
	return domain.Rule{
		ID:         uuid.New(),
		TenantID:   "t1",
		Kind:       domain.RuleKindDeposit,
		Name:       name,
		Priority:   priority,
		Active:     true,
		Conditions: conds,
		AmountType: domain.AmountTypePercentage,
		Percentage: 20,
	}
}

func TestMatch_FirstByPriorityWins(t *testing.T) {
	rules := []domain.Rule{
		rule("second", 20, domain.RuleConditions{}),
		rule("first", 10, domain.RuleConditions{}),
	}
	got := Match(rules, testContext())
	if got == nil || got.Name != "first" {
		t.Fatalf("expected rule 'first', got %+v", got)
	}
}

func TestMatch_SkipsInactive(t *testing.T) {
	inactive := rule("inactive", 1, domain.RuleConditions{})
	inactive.Active = false
	rules := []domain.Rule{inactive, rule("active", 2, domain.RuleConditions{})}
	got := Match(rules, testContext())
	if got == nil || got.Name != "active" {
		t.Fatalf("expected rule 'active', got %+v", got)
	}
}

func TestMatch_EmptyRuleSet(t *testing.T) {
	if got := Match(nil, testContext()); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestMatch_CostBounds(t *testing.T) {
	rules := []domain.Rule{
		rule("expensive", 1, domain.RuleConditions{MinCost: floatPtr(500)}),
		rule("mid", 2, domain.RuleConditions{MinCost: floatPtr(100), MaxCost: floatPtr(400)}),
	}
	got := Match(rules, testContext())
	if got == nil || got.Name != "mid" {
		t.Fatalf("expected rule 'mid', got %+v", got)
	}
}

func TestMatch_ServiceMembership(t *testing.T) {
	rules := []domain.Rule{
		rule("daycare-only", 1, domain.RuleConditions{ServiceIDs: []string{"daycare"}}),
		rule("boarding-only", 2, domain.RuleConditions{ServiceIDs: []string{"boarding", "grooming"}}),
	}
	got := Match(rules, testContext())
	if got == nil || got.Name != "boarding-only" {
		t.Fatalf("expected rule 'boarding-only', got %+v", got)
	}
}

func TestMatch_AdvanceDays(t *testing.T) {
	// context books 10 days out
	rules := []domain.Rule{
		rule("last-minute", 1, domain.RuleConditions{MaxAdvanceDays: intPtr(3)}),
		rule("early-bird", 2, domain.RuleConditions{MinAdvanceDays: intPtr(7)}),
	}
	got := Match(rules, testContext())
	if got == nil || got.Name != "early-bird" {
		t.Fatalf("expected rule 'early-bird', got %+v", got)
	}
}

func TestMatch_DateRanges(t *testing.T) {
	rules := []domain.Rule{
		rule("holidays", 1, domain.RuleConditions{DateRanges: []domain.DateRange{
			{Start: "2026-12-20", End: "2027-01-05"},
		}}),
		rule("summer", 2, domain.RuleConditions{DateRanges: []domain.DateRange{
			{Start: "2026-06-01", End: "2026-08-31"},
		}}),
	}
	got := Match(rules, testContext())
	if got == nil || got.Name != "summer" {
		t.Fatalf("expected rule 'summer', got %+v", got)
	}
}

func TestMatch_DaysOfWeek(t *testing.T) {
	// 2026-06-11 is a Thursday (weekday 4)
	rules := []domain.Rule{
		rule("weekend", 1, domain.RuleConditions{DaysOfWeek: []int{0, 6}}),
		rule("weekday", 2, domain.RuleConditions{DaysOfWeek: []int{1, 2, 3, 4, 5}}),
	}
	got := Match(rules, testContext())
	if got == nil || got.Name != "weekday" {
		t.Fatalf("expected rule 'weekday', got %+v", got)
	}
}

func TestMatch_NightsRange(t *testing.T) {
	// context stays 3 nights
	rules := []domain.Rule{
		rule("long-stay", 1, domain.RuleConditions{MinNights: intPtr(7)}),
		rule("short-stay", 2, domain.RuleConditions{MaxNights: intPtr(5)}),
	}
	got := Match(rules, testContext())
	if got == nil || got.Name != "short-stay" {
		t.Fatalf("expected rule 'short-stay', got %+v", got)
	}
}

func TestMatch_FirstTimeCustomer(t *testing.T) {
	rules := []domain.Rule{
		rule("new-customer", 1, domain.RuleConditions{FirstTimeCustomer: boolPtr(true)}),
	}
	ctx := testContext()
	if got := Match(rules, ctx); got != nil {
		t.Fatalf("expected no match for returning customer, got %+v", got)
	}
	ctx.FirstTimeCustomer = true
	if got := Match(rules, ctx); got == nil || got.Name != "new-customer" {
		t.Fatalf("expected rule 'new-customer', got %+v", got)
	}
}

func TestMatch_ValidityWindow(t *testing.T) {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	expired := rule("expired", 1, domain.RuleConditions{})
	until := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	expired.ValidUntil = &until
	future := rule("future", 2, domain.RuleConditions{})
	future.ValidFrom = &from
	current := rule("current", 3, domain.RuleConditions{})

	got := Match([]domain.Rule{expired, future, current}, testContext())
	if got == nil || got.Name != "current" {
		t.Fatalf("expected rule 'current', got %+v", got)
	}
}

func TestMatch_Idempotent(t *testing.T) {
	rules := []domain.Rule{
		rule("a", 2, domain.RuleConditions{}),
		rule("b", 1, domain.RuleConditions{MinCost: floatPtr(100)}),
	}
	ctx := testContext()
	first := Match(rules, ctx)
	second := Match(rules, ctx)
	if first == nil || second == nil || first.ID != second.ID {
		t.Fatalf("expected identical match on repeat calls, got %+v / %+v", first, second)
	}
}

func TestMatch_UnsetConditionsAreVacuouslyTrue(t *testing.T) {
	got := Match([]domain.Rule{rule("anything", 1, domain.RuleConditions{})}, testContext())
	if got == nil || got.Name != "anything" {
		t.Fatalf("expected unconditional rule to match, got %+v", got)
	}
}

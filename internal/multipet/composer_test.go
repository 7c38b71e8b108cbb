package multipet

import (
	"testing"

	"github.com/tailtown/pricingservice/internal/domain"
)

func TestCalculate_PerPet(t *testing.T) {
	capacity := domain.SuiteCapacity{
		PricingType:        domain.PricingTypePerPet,
		BasePrice:          40,
		AdditionalPetPrice: 25,
		MaxPets:            4,
	}
	quote := Calculate(capacity, 3)
	// 40 + 25 + 25
	if quote.TotalPrice != 90 {
		t.Fatalf("expected total 90, got %v", quote.TotalPrice)
	}
	if quote.PerPetCost != 30 {
		t.Fatalf("expected per-pet 30, got %v", quote.PerPetCost)
	}
	if len(quote.Breakdown) != 3 {
		t.Fatalf("expected 3 breakdown lines, got %d", len(quote.Breakdown))
	}
}

func TestCalculate_PerPetFormula(t *testing.T) {
	capacity := domain.SuiteCapacity{
		PricingType:        domain.PricingTypePerPet,
		BasePrice:          55,
		AdditionalPetPrice: 20,
	}
	for n := 1; n <= 6; n++ {
		quote := Calculate(capacity, n)
		want := 55 + float64(n-1)*20
		if quote.TotalPrice != want {
			t.Fatalf("n=%d: expected %v, got %v", n, want, quote.TotalPrice)
		}
	}
}

func TestCalculate_ZeroPetsGuard(t *testing.T) {
	capacity := domain.SuiteCapacity{PricingType: domain.PricingTypePerPet, BasePrice: 40, AdditionalPetPrice: 25}
	quote := Calculate(capacity, 0)
	if quote.TotalPrice != 0 || quote.PerPetCost != 0 {
		t.Fatalf("expected all-zero result, got %+v", quote)
	}
	if len(quote.Breakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %d lines", len(quote.Breakdown))
	}
	if quote.Explanation != "No pets selected" {
		t.Fatalf("unexpected explanation: %q", quote.Explanation)
	}
}

func TestCalculate_FlatRate(t *testing.T) {
	capacity := domain.SuiteCapacity{PricingType: domain.PricingTypeFlatRate, BasePrice: 120, MaxPets: 5}
	quote := Calculate(capacity, 4)
	if quote.TotalPrice != 120 {
		t.Fatalf("expected flat 120, got %v", quote.TotalPrice)
	}
	if len(quote.Breakdown) != 1 {
		t.Fatalf("expected single line, got %d", len(quote.Breakdown))
	}
	if quote.PerPetCost != 30 {
		t.Fatalf("expected per-pet 30, got %v", quote.PerPetCost)
	}
}

func TestCalculate_TieredBand(t *testing.T) {
	capacity := domain.SuiteCapacity{
		PricingType: domain.PricingTypeTiered,
		BasePrice:   50,
		TieredPricing: []domain.PetTier{
			{MinPets: 1, MaxPets: 2, Price: 60},
			{MinPets: 3, MaxPets: 5, Price: 100},
		},
	}
	quote := Calculate(capacity, 4)
	if quote.TotalPrice != 100 {
		t.Fatalf("expected 100, got %v", quote.TotalPrice)
	}
}

func TestCalculate_TieredOutOfRangeFallsBackToBase(t *testing.T) {
	capacity := domain.SuiteCapacity{
		PricingType: domain.PricingTypeTiered,
		BasePrice:   50,
		TieredPricing: []domain.PetTier{
			{MinPets: 1, MaxPets: 2, Price: 60},
			{MinPets: 3, MaxPets: 5, Price: 100},
		},
	}
	// 6 pets is outside every band: documented degraded behavior is a
	// single base-price line, not an error
	quote := Calculate(capacity, 6)
	if quote.TotalPrice != 50 {
		t.Fatalf("expected base-price fallback 50, got %v", quote.TotalPrice)
	}
	if len(quote.Breakdown) != 1 {
		t.Fatalf("expected single fallback line, got %d", len(quote.Breakdown))
	}
}

func TestCalculate_PercentageOff(t *testing.T) {
	capacity := domain.SuiteCapacity{
		PricingType:        domain.PricingTypePercentageOff,
		BasePrice:          40,
		AdditionalPetPrice: 40,
		PercentageOff:      50,
	}
	quote := Calculate(capacity, 3)
	// 40 + 20 + 20
	if quote.TotalPrice != 80 {
		t.Fatalf("expected 80, got %v", quote.TotalPrice)
	}
	if len(quote.Breakdown) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(quote.Breakdown))
	}
	// standard total would be 120
	if quote.Savings != 40 {
		t.Fatalf("expected savings 40, got %v", quote.Savings)
	}
}

func TestCalculate_SavingsOnlyWhenPositive(t *testing.T) {
	capacity := domain.SuiteCapacity{
		PricingType:        domain.PricingTypePerPet,
		BasePrice:          40,
		AdditionalPetPrice: 60,
	}
	// 40 + 60 = 100 > 80 standard: no savings reported
	quote := Calculate(capacity, 2)
	if quote.Savings != 0 {
		t.Fatalf("expected no savings, got %v", quote.Savings)
	}
}

func TestCalculate_UnknownPricingTypeFallsBackToBase(t *testing.T) {
	capacity := domain.SuiteCapacity{PricingType: domain.PricingType("DYNAMIC"), BasePrice: 75}
	quote := Calculate(capacity, 2)
	if quote.TotalPrice != 75 {
		t.Fatalf("expected base price 75, got %v", quote.TotalPrice)
	}
}

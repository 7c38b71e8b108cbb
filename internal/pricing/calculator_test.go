package pricing

import (
	"testing"
	"time"

	"github.com/tailtown/pricingservice/internal/domain"
)

func TestCalculateAmount_Percentage(t *testing.T) {
	// 20% of 250 -> 50.00
	got := CalculateAmount(250, domain.AmountTypePercentage, 20, 0)
	if got != 50.00 {
		t.Fatalf("expected 50.00, got %v", got)
	}
}

func TestCalculateAmount_PercentageRoundsHalfUp(t *testing.T) {
	// 25% of 0.50 = 0.125 -> 0.13
	got := CalculateAmount(0.50, domain.AmountTypePercentage, 25, 0)
	if got != 0.13 {
		t.Fatalf("expected 0.13, got %v", got)
	}
}

func TestCalculateAmount_Full(t *testing.T) {
	got := CalculateAmount(312.45, domain.AmountTypeFull, 0, 0)
	if got != 312.45 {
		t.Fatalf("expected 312.45, got %v", got)
	}
}

func TestCalculateAmount_FixedCappedAtTotal(t *testing.T) {
	if got := CalculateAmount(80, domain.AmountTypeFixed, 0, 50); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	// fixed amount never exceeds the total cost
	if got := CalculateAmount(80, domain.AmountTypeFixed, 0, 120); got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}
}

func TestCalculateAmount_UnknownTypeIsZero(t *testing.T) {
	if got := CalculateAmount(100, domain.AmountType("SOMETHING_ELSE"), 50, 50); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := CalculateAmount(100, domain.AmountType(""), 50, 50); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestCalculateAmount_PercentageWithinBounds(t *testing.T) {
	costs := []float64{0, 0.01, 9.99, 100, 2500.75}
	percentages := []float64{0, 12.5, 50, 99.9, 100}
	for _, cost := range costs {
		for _, pct := range percentages {
			got := CalculateAmount(cost, domain.AmountTypePercentage, pct, 0)
			if got < 0 || got > cost {
				t.Fatalf("percentage result %v outside [0, %v] for pct %v", got, cost, pct)
			}
		}
	}
}

func TestAdvanceDays_ClampsAtZero(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -3)
	if got := AdvanceDays(today, past); got != 0 {
		t.Fatalf("expected 0 for past start date, got %d", got)
	}
	if got := AdvanceDays(today, today.AddDate(0, 0, 7)); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestAdvanceDays_PartialDayRoundsUp(t *testing.T) {
	today := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	if got := AdvanceDays(today, start); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := DaysBetween(b, a); got != 0 {
		t.Fatalf("expected 0 for reversed dates, got %d", got)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0.125:  0.13,
		1.004:  1.0,
		-0.125: -0.13,
		50.0:   50.0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v): expected %v, got %v", in, want, got)
		}
	}
}

// Package multipet composes line-by-line price breakdowns for boarding
// multiple pets in one suite.
package multipet

import (
	"fmt"

	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/explain"
	"github.com/tailtown/pricingservice/internal/pricing"
)

// Calculate produces the price breakdown for boarding numberOfPets under
// the given capacity configuration. Unknown pricing types and pet counts
// outside the tiered bands degrade to the base price as a single line;
// numberOfPets < 1 short-circuits to an all-zero result.
func Calculate(capacity domain.SuiteCapacity, numberOfPets int) domain.PricingQuote {
	if numberOfPets < 1 {
		return domain.PricingQuote{
			Breakdown:   []domain.BreakdownLine{},
			Explanation: explain.MultiPet(capacity, numberOfPets, 0),
		}
	}

	var (
		total     float64
		breakdown []domain.BreakdownLine
	)

	switch capacity.PricingType {
	case domain.PricingTypePerPet:
		total = capacity.BasePrice
		breakdown = append(breakdown, domain.BreakdownLine{Label: "Pet 1", Amount: capacity.BasePrice})
		for i := 2; i <= numberOfPets; i++ {
			total += capacity.AdditionalPetPrice
			breakdown = append(breakdown, domain.BreakdownLine{
				Label:  fmt.Sprintf("Pet %d", i),
				Amount: capacity.AdditionalPetPrice,
			})
		}

	case domain.PricingTypeFlatRate:
		total = capacity.BasePrice
		breakdown = append(breakdown, domain.BreakdownLine{
			Label:  fmt.Sprintf("Flat rate (%d pets)", numberOfPets),
			Amount: capacity.BasePrice,
		})

	case domain.PricingTypeTiered:
		if band := findBand(capacity.TieredPricing, numberOfPets); band != nil {
			total = band.Price
			breakdown = append(breakdown, domain.BreakdownLine{
				Label:  fmt.Sprintf("Tier %d-%d pets", band.MinPets, band.MaxPets),
				Amount: band.Price,
			})
		} else {
			// out-of-range pet counts fall back to the base price
			total = capacity.BasePrice
			breakdown = append(breakdown, domain.BreakdownLine{Label: "Standard rate", Amount: capacity.BasePrice})
		}

	case domain.PricingTypePercentageOff:
		total = capacity.BasePrice
		breakdown = append(breakdown, domain.BreakdownLine{Label: "Pet 1", Amount: capacity.BasePrice})
		discounted := pricing.Round2(capacity.AdditionalPetPrice * (100 - capacity.PercentageOff) / 100)
		for i := 2; i <= numberOfPets; i++ {
			total += discounted
			breakdown = append(breakdown, domain.BreakdownLine{
				Label:  fmt.Sprintf("Pet %d (%s off)", i, explain.Percent(capacity.PercentageOff)),
				Amount: discounted,
			})
		}

	default:
		total = capacity.BasePrice
		breakdown = append(breakdown, domain.BreakdownLine{Label: "Standard rate", Amount: capacity.BasePrice})
	}

	total = pricing.Round2(total)
	quote := domain.PricingQuote{
		TotalPrice:  total,
		Breakdown:   breakdown,
		PerPetCost:  pricing.Round2(total / float64(numberOfPets)),
		Explanation: explain.MultiPet(capacity, numberOfPets, total),
	}

	// savings against the hypothetical standard total, reported only
	// when positive
	standard := capacity.BasePrice * float64(numberOfPets)
	if saved := pricing.Round2(standard - total); saved > 0 {
		quote.Savings = saved
	}
	return quote
}

func findBand(bands []domain.PetTier, numberOfPets int) *domain.PetTier {
	for i := range bands {
		if bands[i].MinPets <= numberOfPets && numberOfPets <= bands[i].MaxPets {
			return &bands[i]
		}
	}
	return nil
}

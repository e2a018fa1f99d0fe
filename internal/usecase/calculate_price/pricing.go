package calculate_price

import (
	"math"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// computePrice builds the final quote from the provider's base price.
//
// The vehicle-type modifier is a percentage of base and may be negative
// (motorcycles are cheaper to service). Vehicles older than the threshold
// pay an additional 5% of base per year over it, with the surcharge years
// clamped so the age modifier never exceeds 50% of base. The total is
// rounded to the nearest whole peso and floored at zero: a discount can
// never push a quote negative.
func computePrice(basePrice, vehicleTypeModifierPercent float64, vehicleAgeYears int) PriceBreakdown {
	vehicleModifier := basePrice * vehicleTypeModifierPercent / 100

	ageModifier := 0.0
	if vehicleAgeYears > domain.AgeSurchargeThresholdYears {
		yearsOver := vehicleAgeYears - domain.AgeSurchargeThresholdYears
		if yearsOver > domain.AgeSurchargeMaxYears {
			yearsOver = domain.AgeSurchargeMaxYears
		}
		ageModifier = basePrice * domain.AgeSurchargeRatePerYear * float64(yearsOver)
	}

	total := math.Round(basePrice + vehicleModifier + ageModifier)
	if total < 0 {
		total = 0
	}

	return PriceBreakdown{
		BasePrice:       basePrice,
		VehicleModifier: vehicleModifier,
		AgeModifier:     ageModifier,
		Total:           total,
	}
}

package calculate_price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name            string
		basePrice       float64
		modifierPercent float64
		ageYears        int
		want            PriceBreakdown
	}{
		{
			name:            "base price only",
			basePrice:       50000,
			modifierPercent: 0,
			ageYears:        5,
			want:            PriceBreakdown{BasePrice: 50000, Total: 50000},
		},
		{
			name:            "motorcycle discount",
			basePrice:       10000,
			modifierPercent: -30,
			ageYears:        2,
			want:            PriceBreakdown{BasePrice: 10000, VehicleModifier: -3000, Total: 7000},
		},
		{
			name:            "truck surcharge",
			basePrice:       10000,
			modifierPercent: 20,
			ageYears:        3,
			want:            PriceBreakdown{BasePrice: 10000, VehicleModifier: 2000, Total: 12000},
		},
		{
			name:            "no age surcharge at exactly the threshold",
			basePrice:       10000,
			modifierPercent: 0,
			ageYears:        10,
			want:            PriceBreakdown{BasePrice: 10000, Total: 10000},
		},
		{
			name:            "age surcharge per year over threshold",
			basePrice:       10000,
			modifierPercent: 0,
			ageYears:        13,
			want:            PriceBreakdown{BasePrice: 10000, AgeModifier: 1500, Total: 11500},
		},
		{
			name:            "age surcharge capped at ten years over",
			basePrice:       10000,
			modifierPercent: 20,
			ageYears:        25,
			want:            PriceBreakdown{BasePrice: 10000, VehicleModifier: 2000, AgeModifier: 5000, Total: 17000},
		},
		{
			name:            "discount never pushes the total negative",
			basePrice:       1000,
			modifierPercent: -150,
			ageYears:        0,
			want:            PriceBreakdown{BasePrice: 1000, VehicleModifier: -1500, Total: 0},
		},
		{
			name:            "total rounded to whole pesos",
			basePrice:       333,
			modifierPercent: 10,
			ageYears:        0,
			want:            PriceBreakdown{BasePrice: 333, VehicleModifier: 33.3, Total: 366},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computePrice(tt.basePrice, tt.modifierPercent, tt.ageYears)
			assert.Equal(t, tt.want, got)
		})
	}
}

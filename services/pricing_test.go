package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warungku/warung-app/models"
)

func TestCalculatePricingChargesDeliveryBelowThreshold(t *testing.T) {
	setting := models.PricingSetting{
		MinimumOrderAmount:    50000,
		DeliveryFee:           10000,
		FreeDeliveryThreshold: 200000,
	}

	breakdown := CalculatePricing(150000, setting)

	assert.Equal(t, int64(150000), breakdown.Subtotal)
	assert.Equal(t, int64(10000), breakdown.DeliveryFee)
	assert.False(t, breakdown.IsFreeDelivery)
	assert.Equal(t, int64(160000), breakdown.Total)
	assert.Equal(t, int64(0), breakdown.Discount)
}

func TestCalculatePricingFreeDeliveryAtThreshold(t *testing.T) {
	setting := models.PricingSetting{
		MinimumOrderAmount:    50000,
		DeliveryFee:           10000,
		FreeDeliveryThreshold: 200000,
	}

	breakdown := CalculatePricing(250000, setting)

	assert.True(t, breakdown.IsFreeDelivery)
	assert.Equal(t, int64(0), breakdown.DeliveryFee)
	assert.Equal(t, int64(250000), breakdown.Total)

	// Tepat di threshold juga gratis
	atThreshold := CalculatePricing(200000, setting)
	assert.True(t, atThreshold.IsFreeDelivery)
	assert.Equal(t, int64(200000), atThreshold.Total)
}

func TestCalculatePricingThresholdZeroNeverFree(t *testing.T) {
	setting := models.PricingSetting{
		DeliveryFee:           15000,
		FreeDeliveryThreshold: 0,
	}

	for _, subtotal := range []int64{0, 1, 15000, 1000000, 999999999} {
		breakdown := CalculatePricing(subtotal, setting)
		assert.False(t, breakdown.IsFreeDelivery, "subtotal %d", subtotal)
		assert.Equal(t, int64(15000), breakdown.DeliveryFee)
	}
}

func TestCalculatePricingTotalInvariant(t *testing.T) {
	settings := []models.PricingSetting{
		{DeliveryFee: 0, FreeDeliveryThreshold: 0},
		{DeliveryFee: 10000, FreeDeliveryThreshold: 0},
		{DeliveryFee: 10000, FreeDeliveryThreshold: 100000},
		{DeliveryFee: 25000, FreeDeliveryThreshold: 1},
	}
	subtotals := []int64{0, 999, 50000, 100000, 150000, 5000000}

	for _, setting := range settings {
		for _, subtotal := range subtotals {
			b := CalculatePricing(subtotal, setting)
			assert.Equal(t, b.Subtotal+b.DeliveryFee, b.Total)
			if b.IsFreeDelivery {
				assert.Equal(t, int64(0), b.DeliveryFee)
			}
		}
	}
}

func TestMeetsMinimum(t *testing.T) {
	setting := models.PricingSetting{MinimumOrderAmount: 50000}

	ok, msg := MeetsMinimum(20000, setting)
	assert.False(t, ok)
	assert.Contains(t, msg, "Rp 50.000")
	assert.Contains(t, msg, "Rp 20.000")

	ok, msg = MeetsMinimum(50000, setting)
	assert.True(t, ok)
	assert.Empty(t, msg)

	// Tanpa minimum semua lolos
	ok, _ = MeetsMinimum(0, models.PricingSetting{})
	assert.True(t, ok)
}

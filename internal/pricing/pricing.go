// Package pricing holds the cart/checkout totals arithmetic. Everything here
// is pure: the calculator never reaches for storage, settings, or the clock,
// so the same inputs always produce the same breakdown.
package pricing

import (
	"math"

	"github.com/vurel/storefront/internal/models"
)

// DefaultTaxRate is applied to the post-discount, pre-shipping subtotal.
const DefaultTaxRate = 0.04

// ComputeTotals combines the cart lines, an already-validated discount, the
// shipping threshold policy, and the tax rate into a PricingBreakdown.
//
// The discount is trusted as-is; keeping it within the subtotal is the
// caller's responsibility. Tax is rounded to the nearest whole currency unit,
// matching what the storefront displays.
func ComputeTotals(lines []models.CartLine, discount float64, policy models.ShippingPolicy, taxRate float64) models.PricingBreakdown {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	if len(lines) == 0 {
		return models.PricingBreakdown{}
	}

	shippingCost := policy.DeliveryCharge
	if subtotal >= policy.FreeDeliveryMinimum {
		shippingCost = 0
	}

	tax := math.Round((subtotal - discount) * taxRate)

	return models.PricingBreakdown{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shippingCost,
		Tax:          tax,
		Total:        subtotal - discount + shippingCost + tax,
	}
}

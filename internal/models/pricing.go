package models

// ShippingPolicy is the binary free-shipping threshold rule. Orders at or
// above FreeDeliveryMinimum ship free, everything below pays DeliveryCharge.
type ShippingPolicy struct {
	FreeDeliveryMinimum float64 `json:"free_delivery_minimum"`
	DeliveryCharge      float64 `json:"delivery_charge"`
}

// PricingBreakdown is derived, never stored.
type PricingBreakdown struct {
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

package models

// ShippingSettings is the externally configured half of the pricing rule set
// (the tax rate is fixed). Stored as a JSON blob under the shipping_settings
// key of site_settings.
type ShippingSettings struct {
	FreeDeliveryMinimum float64 `json:"free_delivery_minimum"`
	DeliveryCharge      float64 `json:"delivery_charge"`
}

func (s ShippingSettings) Policy() ShippingPolicy {
	return ShippingPolicy{
		FreeDeliveryMinimum: s.FreeDeliveryMinimum,
		DeliveryCharge:      s.DeliveryCharge,
	}
}

type UpdateShippingSettingsRequest struct {
	FreeDeliveryMinimum float64 `json:"free_delivery_minimum" validate:"gte=0"`
	DeliveryCharge      float64 `json:"delivery_charge" validate:"gte=0"`
}

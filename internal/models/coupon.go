package models

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID             int64        `json:"id"`
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  float64      `json:"discount_value"`
	MinOrderAmount float64      `json:"min_order_amount"`
	MaxUses        *int         `json:"max_uses,omitempty"`
	UsedCount      int          `json:"used_count"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty"`
	IsActive       bool         `json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
}

// AppliedCoupon is the session-scoped result of a successful validation.
// It is never re-validated against later cart changes within the session.
type AppliedCoupon struct {
	CouponID       int64   `json:"coupon_id"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
}

type ValidateCouponRequest struct {
	Code       string  `json:"code" validate:"required"`
	OrderTotal float64 `json:"order_total" validate:"gte=0"`
}

type ValidateCouponResponse struct {
	Valid         bool         `json:"valid"`
	CouponID      int64        `json:"coupon_id"`
	Discount      float64      `json:"discount"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
}

type CreateCouponRequest struct {
	Code           string       `json:"code" validate:"required"`
	DiscountType   DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue  float64      `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount float64      `json:"min_order_amount" validate:"gte=0"`
	MaxUses        *int         `json:"max_uses"`
	ExpiresAt      *time.Time   `json:"expires_at"`
}

type UpdateCouponRequest struct {
	Code           *string       `json:"code"`
	DiscountType   *DiscountType `json:"discount_type"`
	DiscountValue  *float64      `json:"discount_value"`
	MinOrderAmount *float64      `json:"min_order_amount"`
	MaxUses        *int          `json:"max_uses"`
	ExpiresAt      *time.Time    `json:"expires_at"`
	IsActive       *bool         `json:"is_active"`
}

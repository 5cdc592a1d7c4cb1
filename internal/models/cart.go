package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product+variant+quantity entry in a cart. Lines with the
// same (ProductID, Size, Color) are merged on add.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	ImageRef  string  `json:"image_ref,omitempty"`
}

// MergeKey identifies a line for merge purposes.
func (l CartLine) MergeKey() CartLineKey {
	return CartLineKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

type CartLineKey struct {
	ProductID int64
	Size      string
	Color     string
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Subtotal is Σ unitPrice*quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, line := range c.Lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	return subtotal
}

// CartSummary is the cart plus everything derived from it: the session's
// applied coupon and the recomputed pricing breakdown.
type CartSummary struct {
	Cart          *Cart             `json:"cart"`
	AppliedCoupon *AppliedCoupon    `json:"applied_coupon,omitempty"`
	Pricing       *PricingBreakdown `json:"pricing"`
}

type AddLineRequest struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Name      string  `json:"name"       validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"required,gte=0"`
	Quantity  int     `json:"quantity"   validate:"required,min=1"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	ImageRef  string  `json:"image_ref"`
}

type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

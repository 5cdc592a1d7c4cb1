package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "razorpay"
)

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

type Order struct {
	ID              int64         `json:"id"`
	CustomerID      *int64        `json:"customer_id,omitempty"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	Items           []OrderItem   `json:"items"`
	Total           float64       `json:"total"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	PaymentID       *string       `json:"payment_id,omitempty"`
	CouponID        *int64        `json:"coupon_id,omitempty"`
	Discount        float64       `json:"discount"`
	Status          OrderStatus   `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CheckoutRequest carries the full cart snapshot plus the contact and
// shipping fields of the form. All contact/shipping fields must be non-empty
// before any network call; format checks are left to downstream systems.
type CheckoutRequest struct {
	CartID    *uuid.UUID `json:"cart_id,omitempty"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name"  validate:"required"`
	Email     string     `json:"email"      validate:"required"`
	Phone     string     `json:"phone"      validate:"required"`
	Address   string     `json:"address"    validate:"required"`
	City      string     `json:"city"       validate:"required"`
	State     string     `json:"state"      validate:"required"`
	Zip       string     `json:"zip"        validate:"required"`
	Country   string     `json:"country"    validate:"required"`

	Items         []CartLine    `json:"items" validate:"required,min=1,dive"`
	Total         float64       `json:"total" validate:"required,gt=0"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=cod razorpay"`

	// Online payments only: the widget callback values, verified against the
	// gateway before the order is written.
	RazorpayOrderID   string `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"razorpay_signature,omitempty"`

	CouponID *int64  `json:"coupon_id,omitempty"`
	Discount float64 `json:"discount"`
}

// ShippingAddress concatenates the address fields into the single string the
// order record stores: "address, city, state zip, country".
func (r *CheckoutRequest) ShippingAddress() string {
	return r.Address + ", " + r.City + ", " + r.State + " " + r.Zip + ", " + r.Country
}

func (r *CheckoutRequest) CustomerName() string {
	return r.FirstName + " " + r.LastName
}

// OrderResult is the tagged outcome of order placement. AccountCreated marks
// the guest-checkout path where an account was created (or resolved) from the
// order's contact fields and a session token issued for auto-login.
type OrderResult struct {
	Order          *Order `json:"order"`
	AccountCreated bool   `json:"account_created,omitempty"`
	AccessToken    string `json:"access_token,omitempty"`
	User           *User  `json:"user,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

type PaginatedOrders struct {
	Orders   []Order `json:"orders"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

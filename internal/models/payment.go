package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutState tracks where a checkout attempt sits between the payment
// gateway round-trip and order placement. Failure from any state returns the
// client to form entry; only OrderConfirmed clears the cart.
type CheckoutState string

const (
	CheckoutStateFormEntry       CheckoutState = "form_entry"
	CheckoutStatePaymentPending  CheckoutState = "payment_pending"
	CheckoutStateOrderSubmitting CheckoutState = "order_submitting"
	CheckoutStateOrderConfirmed  CheckoutState = "order_confirmed"
)

// CheckoutSession is the server-held record of an online-payment attempt,
// created when the gateway order is opened. A dismissed payment widget never
// calls back, so the session simply expires.
type CheckoutSession struct {
	CartID         *uuid.UUID    `json:"cart_id,omitempty"`
	State          CheckoutState `json:"state"`
	GatewayOrderID string        `json:"gateway_order_id"`
	AmountPaise    int64         `json:"amount_paise"`
	CreatedAt      time.Time     `json:"created_at"`
}

type CreatePaymentOrderRequest struct {
	Amount float64    `json:"amount" validate:"required,gt=0"`
	CartID *uuid.UUID `json:"cart_id,omitempty"`
}

type CreatePaymentOrderResponse struct {
	KeyID    string `json:"key_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"order_id"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type VerifyPaymentResponse struct {
	Verified  bool   `json:"verified"`
	PaymentID string `json:"payment_id,omitempty"`
}

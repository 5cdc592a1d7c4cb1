package razorpay

import (
	"fmt"

	razorpaygo "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Gateway is the payment-side port of checkout. Orders are opened in paise
// and the widget callback is verified server-side before anything is written.
type Gateway interface {
	CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (string, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type razorpayClient struct {
	client    *razorpaygo.Client
	keyID     string
	keySecret string
}

func NewClient(keyID string, keySecret string) Gateway {
	return &razorpayClient{
		client:    razorpaygo.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// CreateOrder opens a gateway order and returns its id ("order_...").
func (r *razorpayClient) CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (string, error) {

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}

	return orderID, nil
}

// VerifyPaymentSignature checks the HMAC the widget hands back. The SDK
// signs "orderID|paymentID" with the key secret.
func (r *razorpayClient) VerifyPaymentSignature(orderID, paymentID, signature string) bool {

	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}

	return utils.VerifyPaymentSignature(params, signature, r.keySecret)
}

// KeyID is public; the storefront widget needs it to open the payment modal.
func (r *razorpayClient) KeyID() string {
	return r.keyID
}

package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/vurel/storefront/internal/api/middleware"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	repository "github.com/vurel/storefront/internal/repositories"
	"github.com/vurel/storefront/pkg/razorpay"
)

type PaymentService struct {
	gateway  razorpay.Gateway
	store    repository.CartStore
	currency string
}

func NewPaymentService(gateway razorpay.Gateway, store repository.CartStore, currency string) *PaymentService {
	return &PaymentService{gateway: gateway, store: store, currency: currency}
}

// CreateOrder opens a gateway order for the amount and records a checkout
// session keyed by the gateway order id. Amounts convert to paise; the
// gateway refuses anything under ₹1, so tiny totals are bumped to the floor.
func (s *PaymentService) CreateOrder(ctx context.Context, req *models.CreatePaymentOrderRequest) (*models.CreatePaymentOrderResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	amountPaise := int64(math.Round(req.Amount * 100))
	if amountPaise < 100 {
		amountPaise = 100
	}

	notes := map[string]interface{}{}
	if req.CartID != nil {
		notes["cart_id"] = req.CartID.String()
	}

	gatewayOrderID, err := s.gateway.CreateOrder(amountPaise, s.currency, "", notes)
	if err != nil {
		logger.Error("Gateway order creation failed", slog.Any("error", err))
		return nil, appErrors.ThirdPartyError("Failed to create payment order").WithError(err)
	}

	session := &models.CheckoutSession{
		CartID:         req.CartID,
		State:          models.CheckoutStatePaymentPending,
		GatewayOrderID: gatewayOrderID,
		AmountPaise:    amountPaise,
		CreatedAt:      time.Now(),
	}

	if err := s.store.SaveCheckoutSession(ctx, session); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save checkout session").WithError(err)
	}

	logger.Info("Payment order created",
		slog.String("gateway_order_id", gatewayOrderID),
		slog.Int64("amount_paise", amountPaise))

	return &models.CreatePaymentOrderResponse{
		KeyID:    s.gateway.KeyID(),
		Amount:   amountPaise,
		Currency: s.currency,
		OrderID:  gatewayOrderID,
	}, nil
}

// VerifyPayment checks the widget callback signature and moves the session
// forward. A bad signature is a hard failure, not a retry.
func (s *PaymentService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	if !s.gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		logger.Warn("Payment signature verification failed", slog.String("gateway_order_id", req.RazorpayOrderID))
		return nil, appErrors.PaymentError("Payment verification failed")
	}

	session, err := s.store.GetCheckoutSession(ctx, req.RazorpayOrderID)
	if err == nil {
		session.State = models.CheckoutStateOrderSubmitting

		if err := s.store.SaveCheckoutSession(ctx, session); err != nil {
			logger.Warn("Failed to advance checkout session", slog.Any("error", err))
		}
	}

	return &models.VerifyPaymentResponse{
		Verified:  true,
		PaymentID: req.RazorpayPaymentID,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vurel/storefront/internal/api/middleware"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/pricing"
	repository "github.com/vurel/storefront/internal/repositories"
	"github.com/vurel/storefront/pkg/razorpay"
	"github.com/vurel/storefront/pkg/sendgrid"
)

// OrderCreator is the write half of OrderStore; checkout only ever inserts.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// AccountProvisioner resolves or creates the account behind a guest checkout.
type AccountProvisioner interface {
	EnsureAccountForCheckout(ctx context.Context, req *models.CheckoutRequest) (*models.User, string, bool, error)
}

// CouponRedeemer counts a coupon use after the order lands.
type CouponRedeemer interface {
	Redeem(ctx context.Context, couponID int64) error
}

type CheckoutService struct {
	store    repository.CartStore
	orders   OrderCreator
	users    AccountProvisioner
	coupons  CouponRedeemer
	settings ShippingSettingsProvider
	gateway  razorpay.Gateway
	email    sendgrid.EmailService
}

func NewCheckoutService(
	store repository.CartStore,
	orders OrderCreator,
	users AccountProvisioner,
	coupons CouponRedeemer,
	settings ShippingSettingsProvider,
	gateway razorpay.Gateway,
	email sendgrid.EmailService,
) *CheckoutService {
	return &CheckoutService{
		store:    store,
		orders:   orders,
		users:    users,
		coupons:  coupons,
		settings: settings,
		gateway:  gateway,
		email:    email,
	}
}

// Submit places the order. COD goes straight to the database; online payment
// must present a gateway callback that verifies before anything is written.
// The cart is cleared only after the insert succeeds, so a failed submit
// leaves the shopper exactly where they were.
func (s *CheckoutService) Submit(ctx context.Context, claims *models.Claims, req *models.CheckoutRequest) (*models.OrderResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	if len(req.Items) == 0 {
		return nil, appErrors.BadRequestError("Cannot place an order with an empty cart")
	}

	settings, err := s.settings.GetShippingSettings(ctx)
	if err != nil {
		return nil, err
	}

	// The stored total is recomputed server-side from the submitted lines and
	// discount; the client's figure is display-only.
	breakdown := pricing.ComputeTotals(req.Items, req.Discount, settings.Policy(), pricing.DefaultTaxRate)

	order := &models.Order{
		CustomerName:    req.CustomerName(),
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		ShippingAddress: req.ShippingAddress(),
		Total:           breakdown.Total,
		PaymentMethod:   req.PaymentMethod,
		CouponID:        req.CouponID,
		Discount:        req.Discount,
		Status:          models.OrderStatusPending,
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
	}
	order.Items = items

	var session *models.CheckoutSession

	if req.PaymentMethod == models.PaymentMethodOnline {

		session, err = s.verifyOnlinePayment(ctx, req)
		if err != nil {
			return nil, err
		}

		order.PaymentID = &req.RazorpayPaymentID
		order.Status = models.OrderStatusConfirmed
	}

	result := &models.OrderResult{Order: order}

	if claims != nil {
		order.CustomerID = &claims.UserID
	} else {

		user, token, created, err := s.users.EnsureAccountForCheckout(ctx, req)
		if err != nil {
			return nil, err
		}

		order.CustomerID = &user.ID
		result.AccountCreated = created

		if created {
			result.AccessToken = token
			result.User = user
		}

	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// cart and applied coupon stay untouched so the shopper can retry
		return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
	}

	s.finalize(ctx, logger, req, order, session)

	logger.Info("Order placed",
		slog.Int64("order_id", order.ID),
		slog.String("payment_method", string(order.PaymentMethod)),
		slog.Float64("total", order.Total))

	return result, nil
}

// verifyOnlinePayment checks the widget callback against the gateway and
// advances the checkout session. Missing fields or a bad signature reject the
// submit before any order row exists.
func (s *CheckoutService) verifyOnlinePayment(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutSession, error) {

	logger := middleware.LoggerFromContext(ctx)

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return nil, appErrors.PaymentError("Missing payment confirmation details")
	}

	if !s.gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		logger.Warn("Rejected checkout with invalid payment signature",
			slog.String("gateway_order_id", req.RazorpayOrderID))
		return nil, appErrors.PaymentError("Payment verification failed")
	}

	session, err := s.store.GetCheckoutSession(ctx, req.RazorpayOrderID)
	if err != nil {
		// session may have expired between widget open and submit; the
		// signature already proves the payment, so continue without it
		logger.Warn("Checkout session not found during submit",
			slog.String("gateway_order_id", req.RazorpayOrderID))
		return nil, nil
	}

	session.State = models.CheckoutStateOrderSubmitting

	if err := s.store.SaveCheckoutSession(ctx, session); err != nil {
		logger.Warn("Failed to advance checkout session", slog.Any("error", err))
	}

	return session, nil
}

// finalize runs the after-commit steps: coupon redemption, cart cleanup,
// session closure and the confirmation email. None of them can fail the
// order; it already exists.
func (s *CheckoutService) finalize(ctx context.Context, logger *slog.Logger, req *models.CheckoutRequest, order *models.Order, session *models.CheckoutSession) {

	if order.CouponID != nil {
		if err := s.coupons.Redeem(ctx, *order.CouponID); err != nil {
			logger.Error("Failed to redeem coupon after order placement",
				slog.Int64("coupon_id", *order.CouponID), slog.Any("error", err))
		}
	}

	if req.CartID != nil {
		if err := s.store.ClearCart(ctx, *req.CartID); err != nil {
			logger.Error("Failed to clear cart after order placement",
				slog.String("cart_id", req.CartID.String()), slog.Any("error", err))
		}
	}

	if session != nil {
		session.State = models.CheckoutStateOrderConfirmed

		if err := s.store.DeleteCheckoutSession(ctx, session.GatewayOrderID); err != nil {
			logger.Warn("Failed to delete checkout session", slog.Any("error", err))
		}
	}

	if s.email != nil {
		go s.sendConfirmationEmail(order, logger)
	}
}

func (s *CheckoutService) sendConfirmationEmail(order *models.Order, logger *slog.Logger) {

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	content := fmt.Sprintf(
		"Hi %s,\n\nThanks for shopping with Vurel! Your order #%d has been received.\n\nOrder total: ₹%.2f\nDelivery to: %s\n\nWe will let you know as soon as it ships.",
		order.CustomerName, order.ID, order.Total, order.ShippingAddress)

	req := &models.EmailNotificationRequest{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Your Vurel order #%d is confirmed", order.ID),
		Content: content,
	}

	if err := s.email.Send(ctx, req); err != nil {
		logger.Error("Failed to send order confirmation email",
			slog.Int64("order_id", order.ID), slog.Any("error", err))
	}
}

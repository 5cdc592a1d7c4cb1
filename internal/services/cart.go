package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vurel/storefront/internal/api/middleware"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/pricing"
	repository "github.com/vurel/storefront/internal/repositories"
)

// CouponValidator is the slice of CouponService the cart needs.
type CouponValidator interface {
	Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, error)
}

// ShippingSettingsProvider is the slice of SettingsService the cart needs.
type ShippingSettingsProvider interface {
	GetShippingSettings(ctx context.Context) (*models.ShippingSettings, error)
}

type CartService struct {
	store    repository.CartStore
	coupons  CouponValidator
	settings ShippingSettingsProvider
}

func NewCartService(store repository.CartStore, coupons CouponValidator, settings ShippingSettingsProvider) *CartService {
	return &CartService{store: store, coupons: coupons, settings: settings}
}

func (s *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (*models.CartSummary, error) {
	return s.summarize(ctx, cartID)
}

// AddLine merges into an existing line when product, size and color all
// match; otherwise it appends a new line.
func (s *CartService) AddLine(ctx context.Context, cartID uuid.UUID, req *models.AddLineRequest) (*models.CartSummary, error) {

	cart, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	line := models.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		ImageRef:  req.ImageRef,
	}

	merged := false

	for i := range cart.Lines {
		if cart.Lines[i].MergeKey() == line.MergeKey() {
			cart.Lines[i].Quantity += line.Quantity
			merged = true

			break
		}
	}

	if !merged {
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return s.summarize(ctx, cartID)
}

// UpdateQuantity sets the quantity of the first line matching the product.
// Quantities below 1 are ignored without error; removal is its own call.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartSummary, error) {

	if req.Quantity < 1 {
		return s.summarize(ctx, cartID)
	}

	cart, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	for i := range cart.Lines {
		if cart.Lines[i].ProductID == req.ProductID {
			cart.Lines[i].Quantity = req.Quantity

			break
		}
	}

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return s.summarize(ctx, cartID)
}

// RemoveLine drops every line for the product, across all variants.
func (s *CartService) RemoveLine(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartSummary, error) {

	cart, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	kept := cart.Lines[:0]

	for _, line := range cart.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	cart.Lines = kept

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return s.summarize(ctx, cartID)
}

func (s *CartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {

	if err := s.store.ClearCart(ctx, cartID); err != nil {
		return appErrors.ThirdPartyError("Failed to clear cart").WithError(err)
	}

	return nil
}

// ApplyCoupon validates the code against the current subtotal and pins the
// resulting discount to the cart. The discount is not revisited when the cart
// changes afterwards; checkout carries it as-is.
func (s *CartService) ApplyCoupon(ctx context.Context, cartID uuid.UUID, req *models.ApplyCouponRequest) (*models.CartSummary, error) {

	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	result, err := s.coupons.Validate(ctx, &models.ValidateCouponRequest{
		Code:       req.Code,
		OrderTotal: cart.Subtotal(),
	})
	if err != nil {
		return nil, err
	}

	applied := &models.AppliedCoupon{
		CouponID:       result.CouponID,
		Code:           req.Code,
		DiscountAmount: result.Discount,
	}

	if err := s.store.SaveAppliedCoupon(ctx, cartID, applied); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save applied coupon").WithError(err)
	}

	logger.Info("Coupon applied to cart",
		slog.String("cart_id", cartID.String()),
		slog.Float64("discount", applied.DiscountAmount))

	return s.summarize(ctx, cartID)
}

func (s *CartService) RemoveCoupon(ctx context.Context, cartID uuid.UUID) (*models.CartSummary, error) {

	if err := s.store.RemoveAppliedCoupon(ctx, cartID); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to remove applied coupon").WithError(err)
	}

	return s.summarize(ctx, cartID)
}

// summarize recomputes the pricing breakdown for the cart's current state.
func (s *CartService) summarize(ctx context.Context, cartID uuid.UUID) (*models.CartSummary, error) {

	cart, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	applied, err := s.store.GetAppliedCoupon(ctx, cartID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load applied coupon").WithError(err)
	}

	settings, err := s.settings.GetShippingSettings(ctx)
	if err != nil {
		return nil, err
	}

	var discount float64
	if applied != nil {
		discount = applied.DiscountAmount
	}

	breakdown := pricing.ComputeTotals(cart.Lines, discount, settings.Policy(), pricing.DefaultTaxRate)

	return &models.CartSummary{
		Cart:          cart,
		AppliedCoupon: applied,
		Pricing:       &breakdown,
	}, nil
}

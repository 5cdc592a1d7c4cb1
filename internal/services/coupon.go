package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vurel/storefront/internal/api/middleware"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	repository "github.com/vurel/storefront/internal/repositories"
)

type CouponService struct {
	repo repository.CouponRepository
}

func NewCouponService(repo repository.CouponRepository) *CouponService {
	return &CouponService{repo: repo}
}

// Validate runs the rejection checks in a fixed order: unknown code, expiry,
// usage limit, minimum order amount. The first failing check decides the
// message the shopper sees.
func (s *CouponService) Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	coupon, err := s.repo.GetCouponByCode(ctx, req.Code)

	if err != nil {

		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.CouponRejectedError("Invalid coupon code")
		}

		return nil, appErrors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, appErrors.CouponRejectedError("Coupon has expired")
	}

	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, appErrors.CouponRejectedError("Coupon usage limit reached")
	}

	if req.OrderTotal < coupon.MinOrderAmount {
		return nil, appErrors.CouponRejectedError("Minimum order amount is ₹" + strconv.FormatFloat(coupon.MinOrderAmount, 'f', -1, 64))
	}

	discount := discountFor(coupon, req.OrderTotal)

	logger.Info("Coupon validated",
		slog.String("code", coupon.Code),
		slog.Float64("order_total", req.OrderTotal),
		slog.Float64("discount", discount))

	return &models.ValidateCouponResponse{
		Valid:         true,
		CouponID:      coupon.ID,
		Discount:      discount,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
	}, nil
}

// discountFor computes the rupee discount for a coupon against an order
// total. Percentage discounts are rounded to the paisa; fixed discounts never
// exceed the total.
func discountFor(coupon *models.Coupon, orderTotal float64) float64 {

	if coupon.DiscountType == models.DiscountTypePercentage {
		return math.Round(orderTotal*coupon.DiscountValue) / 100
	}

	return math.Min(coupon.DiscountValue, orderTotal)
}

// Redeem counts one use. Called after the order is placed, never before.
func (s *CouponService) Redeem(ctx context.Context, couponID int64) error {

	if err := s.repo.IncrementUsage(ctx, couponID); err != nil {
		return appErrors.DatabaseError("Failed to redeem coupon").WithError(err)
	}

	return nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {

	coupon := &models.Coupon{
		Code:           strings.ToUpper(req.Code),
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		ExpiresAt:      req.ExpiresAt,
		IsActive:       true,
	}

	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, appErrors.DatabaseError("Failed to create coupon").WithError(err)
	}

	return coupon, nil
}

func (s *CouponService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {

	coupons, err := s.repo.ListCoupons(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list coupons").WithError(err)
	}

	return coupons, nil
}

func (s *CouponService) UpdateCoupon(ctx context.Context, id int64, req *models.UpdateCouponRequest) (*models.Coupon, error) {

	coupon, err := s.repo.GetCouponByID(ctx, id)

	if err != nil {

		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Coupon not found")
		}

		return nil, appErrors.DatabaseError("Failed to load coupon").WithError(err)
	}

	if req.Code != nil {
		coupon.Code = strings.ToUpper(*req.Code)
	}

	if req.DiscountType != nil {
		coupon.DiscountType = *req.DiscountType
	}

	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}

	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = *req.MinOrderAmount
	}

	if req.MaxUses != nil {
		coupon.MaxUses = req.MaxUses
	}

	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}

	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateCoupon(ctx, coupon); err != nil {

		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Coupon not found")
		}

		return nil, appErrors.DatabaseError("Failed to update coupon").WithError(err)
	}

	return coupon, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {

	err := s.repo.DeleteCoupon(ctx, id)

	if err != nil {

		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError("Coupon not found")
		}

		return appErrors.DatabaseError("Failed to delete coupon").WithError(err)
	}

	return nil
}

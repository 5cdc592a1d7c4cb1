package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	repository "github.com/vurel/storefront/internal/repositories"
	service "github.com/vurel/storefront/internal/services"
)

func setupCouponServiceTest(t *testing.T) (*service.CouponService, *MockCouponRepository) {
	t.Helper()

	mockRepo := new(MockCouponRepository)

	return service.NewCouponService(mockRepo), mockRepo
}

func intPtr(v int) *int { return &v }

func TestCouponValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownCode", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		mockRepo.On("GetCouponByCode", ctx, "NOPE").Return(nil, repository.ErrNotFound).Once()

		// Act
		resp, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "NOPE", OrderTotal: 1000})

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid coupon code", appErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ExpiredBeatsUsageAndMinimum", func(t *testing.T) {
		// Arrange: a coupon failing every check must report expiry first
		couponService, mockRepo := setupCouponServiceTest(t)
		expired := time.Now().Add(-time.Hour)
		coupon := &models.Coupon{
			ID: 1, Code: "OLD", DiscountType: models.DiscountTypePercentage, DiscountValue: 10,
			MinOrderAmount: 5000, MaxUses: intPtr(1), UsedCount: 1, ExpiresAt: &expired, IsActive: true,
		}
		mockRepo.On("GetCouponByCode", ctx, "OLD").Return(coupon, nil).Once()

		// Act
		_, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "OLD", OrderTotal: 100})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Coupon has expired", appErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UsageLimitReached", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		coupon := &models.Coupon{
			ID: 2, Code: "BURNT", DiscountType: models.DiscountTypeFixed, DiscountValue: 50,
			MaxUses: intPtr(10), UsedCount: 10, IsActive: true,
		}
		mockRepo.On("GetCouponByCode", ctx, "BURNT").Return(coupon, nil).Once()

		// Act
		_, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "BURNT", OrderTotal: 1000})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Coupon usage limit reached", appErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("BelowMinimumOrderAmount", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		coupon := &models.Coupon{
			ID: 3, Code: "BIGSPEND", DiscountType: models.DiscountTypePercentage, DiscountValue: 15,
			MinOrderAmount: 500, IsActive: true,
		}
		mockRepo.On("GetCouponByCode", ctx, "BIGSPEND").Return(coupon, nil).Once()

		// Act
		_, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "BIGSPEND", OrderTotal: 499})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Minimum order amount is ₹500", appErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("PercentageDiscount", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		coupon := &models.Coupon{
			ID: 4, Code: "SAVE10", DiscountType: models.DiscountTypePercentage, DiscountValue: 10, IsActive: true,
		}
		mockRepo.On("GetCouponByCode", ctx, "SAVE10").Return(coupon, nil).Once()

		// Act
		resp, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "SAVE10", OrderTotal: 1000})

		// Assert
		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Equal(t, int64(4), resp.CouponID)
		assert.InDelta(t, 100, resp.Discount, 0.001)
		mockRepo.AssertExpectations(t)
	})

	t.Run("FixedDiscountCappedAtTotal", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		coupon := &models.Coupon{
			ID: 5, Code: "FLAT200", DiscountType: models.DiscountTypeFixed, DiscountValue: 200, IsActive: true,
		}
		mockRepo.On("GetCouponByCode", ctx, "FLAT200").Return(coupon, nil).Twice()

		// Act
		normal, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "FLAT200", OrderTotal: 1000})
		require.NoError(t, err)
		small, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "FLAT200", OrderTotal: 150})
		require.NoError(t, err)

		// Assert
		assert.InDelta(t, 200, normal.Discount, 0.001)
		assert.InDelta(t, 150, small.Discount, 0.001, "fixed discount must never exceed the order total")
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepositoryErrorIsNotARejection", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		mockRepo.On("GetCouponByCode", ctx, "SAVE10").Return(nil, errors.New("connection refused")).Once()

		// Act
		_, err := couponService.Validate(ctx, &models.ValidateCouponRequest{Code: "SAVE10", OrderTotal: 1000})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestCouponRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		couponService, mockRepo := setupCouponServiceTest(t)
		mockRepo.On("IncrementUsage", ctx, int64(4)).Return(nil).Once()

		err := couponService.Redeem(ctx, 4)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		couponService, mockRepo := setupCouponServiceTest(t)
		mockRepo.On("IncrementUsage", ctx, int64(4)).Return(errors.New("boom")).Once()

		err := couponService.Redeem(ctx, 4)

		require.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestCouponAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateUppercasesCode", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		mockRepo.On("CreateCoupon", ctx, mock.MatchedBy(func(c *models.Coupon) bool {
			return c.Code == "SAVE10" && c.IsActive
		})).Return(nil).Once()

		// Act
		coupon, err := couponService.CreateCoupon(ctx, &models.CreateCouponRequest{
			Code:          "save10",
			DiscountType:  models.DiscountTypePercentage,
			DiscountValue: 10,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", coupon.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UpdateAppliesPartialChanges", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		existing := &models.Coupon{
			ID: 4, Code: "SAVE10", DiscountType: models.DiscountTypePercentage,
			DiscountValue: 10, MinOrderAmount: 500, IsActive: true,
		}
		inactive := false
		newValue := 15.0

		mockRepo.On("GetCouponByID", ctx, int64(4)).Return(existing, nil).Once()
		mockRepo.On("UpdateCoupon", ctx, mock.MatchedBy(func(c *models.Coupon) bool {
			return c.DiscountValue == 15 && !c.IsActive && c.MinOrderAmount == 500
		})).Return(nil).Once()

		// Act
		coupon, err := couponService.UpdateCoupon(ctx, 4, &models.UpdateCouponRequest{
			DiscountValue: &newValue,
			IsActive:      &inactive,
		})

		// Assert
		require.NoError(t, err)
		assert.InDelta(t, 15, coupon.DiscountValue, 0.001)
		assert.False(t, coupon.IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DeleteMissingCouponIsNotFound", func(t *testing.T) {
		// Arrange
		couponService, mockRepo := setupCouponServiceTest(t)
		mockRepo.On("DeleteCoupon", ctx, int64(99)).Return(repository.ErrNotFound).Once()

		// Act
		err := couponService.DeleteCoupon(ctx, 99)

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

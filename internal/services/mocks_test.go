package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vurel/storefront/internal/models"
)

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, cartID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartStore) SaveCart(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *MockCartStore) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *MockCartStore) GetAppliedCoupon(ctx context.Context, cartID uuid.UUID) (*models.AppliedCoupon, error) {
	args := m.Called(ctx, cartID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AppliedCoupon), args.Error(1)
}

func (m *MockCartStore) SaveAppliedCoupon(ctx context.Context, cartID uuid.UUID, coupon *models.AppliedCoupon) error {
	return m.Called(ctx, cartID, coupon).Error(0)
}

func (m *MockCartStore) RemoveAppliedCoupon(ctx context.Context, cartID uuid.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *MockCartStore) GetCheckoutSession(ctx context.Context, gatewayOrderID string) (*models.CheckoutSession, error) {
	args := m.Called(ctx, gatewayOrderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutSession), args.Error(1)
}

func (m *MockCartStore) SaveCheckoutSession(ctx context.Context, session *models.CheckoutSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockCartStore) DeleteCheckoutSession(ctx context.Context, gatewayOrderID string) error {
	return m.Called(ctx, gatewayOrderID).Error(0)
}

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetCouponByID(ctx context.Context, id int64) (*models.Coupon, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) DeleteCoupon(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) ListOrdersByCustomer(ctx context.Context, customerID int64, page int, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, customerID, page, size)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderStore) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockCouponValidator struct {
	mock.Mock
}

func (m *MockCouponValidator) Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ValidateCouponResponse), args.Error(1)
}

type MockCouponRedeemer struct {
	mock.Mock
}

func (m *MockCouponRedeemer) Redeem(ctx context.Context, couponID int64) error {
	return m.Called(ctx, couponID).Error(0)
}

type MockShippingSettingsProvider struct {
	mock.Mock
}

func (m *MockShippingSettingsProvider) GetShippingSettings(ctx context.Context) (*models.ShippingSettings, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ShippingSettings), args.Error(1)
}

type MockAccountProvisioner struct {
	mock.Mock
}

func (m *MockAccountProvisioner) EnsureAccountForCheckout(ctx context.Context, req *models.CheckoutRequest) (*models.User, string, bool, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.String(1), args.Bool(2), args.Error(3)
	}

	return args.Get(0).(*models.User), args.String(1), args.Bool(2), args.Error(3)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (string, error) {
	args := m.Called(amountPaise, currency, receipt, notes)

	return args.String(0), args.Error(1)
}

func (m *MockGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

func (m *MockGateway) KeyID() string {
	return m.Called().String(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetShippingSettings(ctx context.Context) (*models.ShippingSettings, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ShippingSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveShippingSettings(ctx context.Context, settings *models.ShippingSettings) error {
	return m.Called(ctx, settings).Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	args := m.Called(ctx, productID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Review), args.Error(1)
}

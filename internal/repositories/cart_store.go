package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vurel/storefront/internal/models"
)

const (
	cartKeyPrefix     = "cart:"
	appliedKeyPrefix  = "cart_coupon:"
	checkoutKeyPrefix = "checkout_session:"

	cartTTL     = 30 * 24 * time.Hour
	checkoutTTL = 30 * time.Minute
)

// CartStore holds the client-keyed cart state: the line set, the applied
// coupon, and the in-flight checkout session for online payments. Carts are
// keyed by a client-generated uuid so guests keep their cart across visits.
type CartStore interface {
	GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error

	GetAppliedCoupon(ctx context.Context, cartID uuid.UUID) (*models.AppliedCoupon, error)
	SaveAppliedCoupon(ctx context.Context, cartID uuid.UUID, coupon *models.AppliedCoupon) error
	RemoveAppliedCoupon(ctx context.Context, cartID uuid.UUID) error

	GetCheckoutSession(ctx context.Context, gatewayOrderID string) (*models.CheckoutSession, error)
	SaveCheckoutSession(ctx context.Context, session *models.CheckoutSession) error
	DeleteCheckoutSession(ctx context.Context, gatewayOrderID string) error
}

type cartStore struct {
	client *redis.Client
}

func NewCartStore(client *redis.Client) CartStore {
	return &cartStore{client: client}
}

// GetCart returns an empty cart when none is stored; a missing key is not an
// error for the shopper.
func (s *cartStore) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {

	data, err := s.client.Get(ctx, cartKeyPrefix+cartID.String()).Bytes()

	if err != nil {

		if errors.Is(err, redis.Nil) {
			return &models.Cart{ID: cartID}, nil
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	cart := &models.Cart{}

	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return cart, nil
}

func (s *cartStore) SaveCart(ctx context.Context, cart *models.Cart) error {

	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+cart.ID.String(), string(data), cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// ClearCart drops the lines and the applied coupon together; a cleared cart
// must never keep a stale discount.
func (s *cartStore) ClearCart(ctx context.Context, cartID uuid.UUID) error {

	keys := []string{
		cartKeyPrefix + cartID.String(),
		appliedKeyPrefix + cartID.String(),
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (s *cartStore) GetAppliedCoupon(ctx context.Context, cartID uuid.UUID) (*models.AppliedCoupon, error) {

	data, err := s.client.Get(ctx, appliedKeyPrefix+cartID.String()).Bytes()

	if err != nil {

		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get applied coupon: %w", err)
	}

	coupon := &models.AppliedCoupon{}

	if err := json.Unmarshal(data, coupon); err != nil {
		return nil, fmt.Errorf("failed to unmarshal applied coupon: %w", err)
	}

	return coupon, nil
}

func (s *cartStore) SaveAppliedCoupon(ctx context.Context, cartID uuid.UUID, coupon *models.AppliedCoupon) error {

	data, err := json.Marshal(coupon)
	if err != nil {
		return fmt.Errorf("failed to marshal applied coupon: %w", err)
	}

	if err := s.client.Set(ctx, appliedKeyPrefix+cartID.String(), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save applied coupon: %w", err)
	}

	return nil
}

func (s *cartStore) RemoveAppliedCoupon(ctx context.Context, cartID uuid.UUID) error {

	if err := s.client.Del(ctx, appliedKeyPrefix+cartID.String()).Err(); err != nil {
		return fmt.Errorf("failed to remove applied coupon: %w", err)
	}

	return nil
}

func (s *cartStore) GetCheckoutSession(ctx context.Context, gatewayOrderID string) (*models.CheckoutSession, error) {

	data, err := s.client.Get(ctx, checkoutKeyPrefix+gatewayOrderID).Bytes()

	if err != nil {

		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	session := &models.CheckoutSession{}

	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	return session, nil
}

// Sessions expire on their own; a dismissed payment widget never calls back.
func (s *cartStore) SaveCheckoutSession(ctx context.Context, session *models.CheckoutSession) error {

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}

	if err := s.client.Set(ctx, checkoutKeyPrefix+session.GatewayOrderID, data, checkoutTTL).Err(); err != nil {
		return fmt.Errorf("failed to save checkout session: %w", err)
	}

	return nil
}

func (s *cartStore) DeleteCheckoutSession(ctx context.Context, gatewayOrderID string) error {

	if err := s.client.Del(ctx, checkoutKeyPrefix+gatewayOrderID).Err(); err != nil {
		return fmt.Errorf("failed to delete checkout session: %w", err)
	}

	return nil
}

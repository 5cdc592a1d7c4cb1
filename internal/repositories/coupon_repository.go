package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
)

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	GetCouponByID(ctx context.Context, id int64) (*models.Coupon, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	UpdateCoupon(ctx context.Context, coupon *models.Coupon) error
	DeleteCoupon(ctx context.Context, id int64) error
	IncrementUsage(ctx context.Context, id int64) error
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO coupons(code, discount_type, discount_value, min_order_amount, max_uses, used_count, expires_at, is_active, created_at)
		VALUES($1, $2, $3, $4, $5, 0, $6, $7, NOW())
		RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query,
		coupon.Code, coupon.DiscountType, coupon.DiscountValue, coupon.MinOrderAmount,
		coupon.MaxUses, coupon.ExpiresAt, coupon.IsActive).Scan(&coupon.ID, &coupon.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert coupon: %w", err)
	}

	return nil
}

// Codes are matched case-insensitively; they are stored uppercase.
func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	coupon := &models.Coupon{}

	query := `
		SELECT id, code, discount_type, discount_value, min_order_amount, max_uses, used_count, expires_at, is_active, created_at
		FROM coupons
		WHERE code = $1 AND is_active = TRUE`

	err := r.DB.QueryRowContext(dbCtx, query, strings.ToUpper(code)).Scan(
		&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue,
		&coupon.MinOrderAmount, &coupon.MaxUses, &coupon.UsedCount,
		&coupon.ExpiresAt, &coupon.IsActive, &coupon.CreatedAt)

	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}

func (r *couponRepository) GetCouponByID(ctx context.Context, id int64) (*models.Coupon, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	coupon := &models.Coupon{}

	query := `
		SELECT id, code, discount_type, discount_value, min_order_amount, max_uses, used_count, expires_at, is_active, created_at
		FROM coupons
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue,
		&coupon.MinOrderAmount, &coupon.MaxUses, &coupon.UsedCount,
		&coupon.ExpiresAt, &coupon.IsActive, &coupon.CreatedAt)

	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}

func (r *couponRepository) ListCoupons(ctx context.Context) ([]models.Coupon, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, code, discount_type, discount_value, min_order_amount, max_uses, used_count, expires_at, is_active, created_at
		FROM coupons
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)

	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	defer rows.Close()

	var coupons []models.Coupon

	for rows.Next() {

		var coupon models.Coupon

		err := rows.Scan(
			&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue,
			&coupon.MinOrderAmount, &coupon.MaxUses, &coupon.UsedCount,
			&coupon.ExpiresAt, &coupon.IsActive, &coupon.CreatedAt)

		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}

		coupons = append(coupons, coupon)

	}

	return coupons, rows.Err()
}

func (r *couponRepository) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE coupons
		SET code = $1, discount_type = $2, discount_value = $3, min_order_amount = $4, max_uses = $5, expires_at = $6, is_active = $7
		WHERE id = $8`

	result, err := r.DB.ExecContext(dbCtx, query,
		coupon.Code, coupon.DiscountType, coupon.DiscountValue, coupon.MinOrderAmount,
		coupon.MaxUses, coupon.ExpiresAt, coupon.IsActive, coupon.ID)

	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *couponRepository) DeleteCoupon(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM coupons WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// IncrementUsage records one redemption. Called only after order placement
// succeeds.
func (r *couponRepository) IncrementUsage(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `UPDATE coupons SET used_count = used_count + 1 WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	return nil
}

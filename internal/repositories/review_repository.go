package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (product_id, user_id, reviewer_name, rating, review_text, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query,
		review.ProductID, review.UserID, review.ReviewerName, review.Rating,
		review.ReviewText, review.IsVerified).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

func (r *reviewRepository) ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, user_id, reviewer_name, rating, review_text, is_verified, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)

	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	var reviews []models.Review

	for rows.Next() {

		var review models.Review

		err := rows.Scan(&review.ID, &review.ProductID, &review.UserID, &review.ReviewerName,
			&review.Rating, &review.ReviewText, &review.IsVerified, &review.CreatedAt)

		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)

	}

	return reviews, rows.Err()
}

package service

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	repository "github.com/vurel/storefront/internal/repositories"
)

type ReviewService struct {
	repo      repository.ReviewRepository
	sanitizer *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository) *ReviewService {
	// reviews are rendered as plain text, so strip all markup
	return &ReviewService{repo: repo, sanitizer: bluemonday.StrictPolicy()}
}

// CreateReview stores a sanitized review. Signed-in reviewers are marked
// verified and linked to their account.
func (s *ReviewService) CreateReview(ctx context.Context, claims *models.Claims, productID int64, req *models.CreateReviewRequest) (*models.Review, error) {

	review := &models.Review{
		ProductID:    productID,
		ReviewerName: strings.TrimSpace(s.sanitizer.Sanitize(req.ReviewerName)),
		Rating:       req.Rating,
		ReviewText:   strings.TrimSpace(s.sanitizer.Sanitize(req.ReviewText)),
	}

	if review.ReviewerName == "" {
		return nil, appErrors.BadRequestError("Reviewer name is required")
	}

	if claims != nil {
		review.UserID = &claims.UserID
		review.IsVerified = true
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, appErrors.DatabaseError("Failed to save review").WithError(err)
	}

	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID int64) ([]models.Review, error) {

	reviews, err := s.repo.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list reviews").WithError(err)
	}

	return reviews, nil
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/vurel/storefront/internal/api/middleware"
	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
	"github.com/vurel/storefront/internal/utils/response"
)

type ReviewService interface {
	CreateReview(ctx context.Context, claims *models.Claims, productID int64, req *models.CreateReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, productID int64) ([]models.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

func (h *ReviewHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		// signed-in reviewers get the verified badge; guests may still post
		claims, _ := middleware.ClaimsFromContext(r.Context())

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), claims, productID, &req)
		if err != nil {
			logger.Warn("Failed to create review",
				slog.Int64("productId", productID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Review created",
			slog.Int64("productId", productID),
			slog.Int("rating", review.Rating))
		response.Success(w, http.StatusCreated, review)
	}
}

func (h *ReviewHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		reviews, err := h.reviewService.ListReviews(r.Context(), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vurel/storefront/internal/api/handlers"
	"github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
)

func TestReviewHandler_Create(t *testing.T) {
	createReq := &models.CreateReviewRequest{
		ReviewerName: "Asha",
		Rating:       5,
		ReviewText:   "Great shirt!",
	}

	t.Run("Success - Guest Review", func(t *testing.T) {
		// Arrange
		mockService := new(MockReviewService)
		reviewHandler := handlers.NewReviewHandler(mockService)

		created := &models.Review{ID: 1, ProductID: 7, ReviewerName: "Asha", Rating: 5, ReviewText: "Great shirt!"}

		mockService.On("CreateReview", mock.Anything, (*models.Claims)(nil), int64(7), mock.MatchedBy(func(r *models.CreateReviewRequest) bool {
			return r.Rating == 5
		})).Return(created, nil).Once()

		req := newJSONRequest(t, http.MethodPost, "/api/products/7/reviews", createReq,
			map[string]string{"productId": "7"})
		w := httptest.NewRecorder()

		// Act
		reviewHandler.Create()(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)

		var got models.Review
		envelope := decodeAPIResponse(t, w, &got)
		assert.True(t, envelope.Success)
		assert.False(t, got.IsVerified)
		mockService.AssertExpectations(t)
	})

	t.Run("Success - Signed-In Review Carries Claims", func(t *testing.T) {
		// Arrange
		mockService := new(MockReviewService)
		reviewHandler := handlers.NewReviewHandler(mockService)
		claims := &models.Claims{UserID: 5}
		userID := int64(5)

		created := &models.Review{ID: 2, ProductID: 7, UserID: &userID, Rating: 5, IsVerified: true}

		mockService.On("CreateReview", mock.Anything, claims, int64(7), mock.Anything).Return(created, nil).Once()

		req := withClaims(newJSONRequest(t, http.MethodPost, "/api/products/7/reviews", createReq,
			map[string]string{"productId": "7"}), claims)
		w := httptest.NewRecorder()

		// Act
		reviewHandler.Create()(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)

		var got models.Review
		decodeAPIResponse(t, w, &got)
		assert.True(t, got.IsVerified)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Rating Out Of Range", func(t *testing.T) {
		// Arrange
		mockService := new(MockReviewService)
		reviewHandler := handlers.NewReviewHandler(mockService)

		req := newJSONRequest(t, http.MethodPost, "/api/products/7/reviews",
			map[string]any{"reviewer_name": "Asha", "rating": 6},
			map[string]string{"productId": "7"})
		w := httptest.NewRecorder()

		// Act
		reviewHandler.Create()(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)

		envelope := decodeAPIResponse(t, w, nil)
		assert.Equal(t, errors.ErrCodeValidation, envelope.Error.Code)
		mockService.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReviewHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := new(MockReviewService)
		reviewHandler := handlers.NewReviewHandler(mockService)

		mockService.On("ListReviews", mock.Anything, int64(7)).
			Return([]models.Review{{ID: 1, ProductID: 7, Rating: 5}}, nil).Once()

		req := newJSONRequest(t, http.MethodGet, "/api/products/7/reviews", nil,
			map[string]string{"productId": "7"})
		w := httptest.NewRecorder()

		// Act
		reviewHandler.List()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var got []models.Review
		decodeAPIResponse(t, w, &got)
		assert.Len(t, got, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Bad Product ID", func(t *testing.T) {
		// Arrange
		mockService := new(MockReviewService)
		reviewHandler := handlers.NewReviewHandler(mockService)

		req := newJSONRequest(t, http.MethodGet, "/api/products/x/reviews", nil,
			map[string]string{"productId": "x"})
		w := httptest.NewRecorder()

		// Act
		reviewHandler.List()(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListReviews", mock.Anything, mock.Anything)
	})
}

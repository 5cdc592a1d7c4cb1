package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vurel/storefront/internal/api/middleware"
	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
	"github.com/vurel/storefront/internal/utils/response"
)

type CartService interface {
	GetCart(ctx context.Context, cartID uuid.UUID) (*models.CartSummary, error)
	AddLine(ctx context.Context, cartID uuid.UUID, req *models.AddLineRequest) (*models.CartSummary, error)
	UpdateQuantity(ctx context.Context, cartID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartSummary, error)
	RemoveLine(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartSummary, error)
	ApplyCoupon(ctx context.Context, cartID uuid.UUID, req *models.ApplyCouponRequest) (*models.CartSummary, error)
	RemoveCoupon(ctx context.Context, cartID uuid.UUID) (*models.CartSummary, error)
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.ParseCartID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		summary, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load cart",
				slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

// Totals returns just the recomputed pricing breakdown, for the mini-cart and
// the checkout form preview.
func (h *CartHandler) Totals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.ParseCartID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		summary, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary.Pricing)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.ParseCartID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AddLineRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input", slog.String("cartId", cartID.String()))
			return
		}

		summary, err := h.cartService.AddLine(r.Context(), cartID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart",
			slog.String("cartId", cartID.String()),
			slog.Int64("productId", req.ProductID),
			slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.ParseCartID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		summary, err := h.cartService.UpdateQuantity(r.Context(), cartID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.ParseCartID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		summary, err := h.cartService.RemoveLine(r.Context(), cartID, productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := utils.ParseCartID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		summary, err := h.cartService.ApplyCoupon(r.Context(), cartID, &req)
		if err != nil {
			logger.Warn("Coupon rejected",
				slog.String("cartId", cartID.String()),
				slog.String("code", req.Code),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) RemoveCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID, err := utils.ParseCartID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		summary, err := h.cartService.RemoveCoupon(r.Context(), cartID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

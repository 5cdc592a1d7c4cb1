package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/vurel/storefront/internal/api/middleware"
	"github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
	"github.com/vurel/storefront/internal/utils/response"
)

type CheckoutService interface {
	Submit(ctx context.Context, claims *models.Claims, req *models.CheckoutRequest) (*models.OrderResult, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, claims *models.Claims, id int64) (*models.Order, error)
	ListMyOrders(ctx context.Context, claims *models.Claims, page int, size int) (*models.PaginatedOrders, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error)
}

type OrderHandler struct {
	checkoutService CheckoutService
	orderService    OrderService
	validator       *validator.Validate
}

func NewOrderHandler(checkoutService CheckoutService, orderService OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		validator:       validator.New(),
	}
}

// Checkout godoc
//	@Summary		Place an order
//	@Description	Places an order from the submitted cart snapshot. Works for guests (an account is created from the contact details) and signed-in shoppers. Online payments must carry a verified gateway callback.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CheckoutRequest	true	"Cart snapshot, contact and shipping details"
//	@Success		201		{object}	models.OrderResult		"Order placed"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error, empty cart or failed payment verification"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/orders [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		// optional auth: nil claims is a guest checkout
		claims, _ := middleware.ClaimsFromContext(r.Context())

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		result, err := h.checkoutService.Submit(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Checkout failed",
				slog.String("paymentMethod", string(req.PaymentMethod)),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, result)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Returns an order. Signed-in shoppers can only read their own orders; the anonymous confirmation view is allowed by order id.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		403	{object}	response.ErrorResponse	"Not the order's owner"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Router			/user/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, _ := middleware.ClaimsFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims, id)
		if err != nil {
			logger.Warn("Failed to get order", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//	@Summary		List the caller's orders
//	@Description	Paginated order history for the authenticated shopper, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int						false	"Page number (default 1)"
//	@Param			pageSize	query		int						false	"Items per page (default 10, max 50)"
//	@Success		200			{object}	models.PaginatedOrders	"Orders"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/user/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		orders, err := h.orderService.ListMyOrders(r.Context(), claims, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// UpdateStatus godoc
//	@Summary	Update order status (Admin)
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int								true	"Order ID"
//	@Param		status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success	200		{object}	models.Order
//	@Failure	404		{object}	response.ErrorResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update order status",
				slog.Int64("orderId", id),
				slog.String("newStatus", string(req.Status)),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated",
			slog.Int64("orderId", id),
			slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

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

type PaymentService interface {
	CreateOrder(ctx context.Context, req *models.CreatePaymentOrderRequest) (*models.CreatePaymentOrderResponse, error)
	VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, error)
}

type PaymentHandler struct {
	paymentService PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

// CreateOrder godoc
//	@Summary		Open a payment gateway order
//	@Description	Creates a Razorpay order for the given rupee amount and returns what the payment widget needs to open. Amounts are converted to paise.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.CreatePaymentOrderRequest	true	"Amount in rupees, optional cart reference"
//	@Success		201		{object}	models.CreatePaymentOrderResponse	"Gateway order opened"
//	@Failure		400		{object}	response.ErrorResponse				"Validation error"
//	@Failure		500		{object}	response.ErrorResponse				"Gateway unavailable"
//	@Router			/payment/create-order [post]
func (h *PaymentHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreatePaymentOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.paymentService.CreateOrder(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create gateway order",
				slog.Float64("amount", req.Amount), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Gateway order created",
			slog.String("gatewayOrderId", resp.OrderID),
			slog.Int64("amountPaise", resp.Amount))
		response.Success(w, http.StatusCreated, resp)
	}
}

// Verify godoc
//	@Summary		Verify a payment callback
//	@Description	Verifies the signature the payment widget returned. A failed verification means the payment must not be trusted.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			callback	body		models.VerifyPaymentRequest		true	"Widget callback values"
//	@Success		200			{object}	models.VerifyPaymentResponse	"Signature verified"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error or signature mismatch"
//	@Router			/payment/verify [post]
func (h *PaymentHandler) Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.VerifyPaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.paymentService.VerifyPayment(r.Context(), &req)
		if err != nil {
			logger.Warn("Payment verification failed",
				slog.String("gatewayOrderId", req.RazorpayOrderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment verified",
			slog.String("gatewayOrderId", req.RazorpayOrderID),
			slog.String("paymentId", resp.PaymentID))
		response.Success(w, http.StatusOK, resp)
	}
}

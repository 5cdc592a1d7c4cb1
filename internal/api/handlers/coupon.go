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

type CouponService interface {
	Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, error)
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	UpdateCoupon(ctx context.Context, id int64, req *models.UpdateCouponRequest) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id int64) error
}

type CouponHandler struct {
	couponService CouponService
	validator     *validator.Validate
}

func NewCouponHandler(couponService CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService, validator: validator.New()}
}

// Validate godoc
//	@Summary		Validate a coupon code
//	@Description	Checks a coupon code against the current order total and returns the discount it would grant. The coupon is not consumed.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.ValidateCouponRequest	true	"Code and order total"
//	@Success		200		{object}	models.ValidateCouponResponse	"Coupon is valid"
//	@Failure		400		{object}	response.ErrorResponse			"Unknown, expired, exhausted or below-minimum coupon"
//	@Router			/coupons/validate [post]
func (h *CouponHandler) Validate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ValidateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.couponService.Validate(r.Context(), &req)
		if err != nil {
			logger.Info("Coupon rejected", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Create godoc
//	@Summary		Create a coupon (Admin)
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.CreateCouponRequest	true	"Coupon definition"
//	@Success		201		{object}	models.Coupon
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Security		BearerAuth
//	@Router			/admin/coupons [post]
func (h *CouponHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		coupon, err := h.couponService.CreateCoupon(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create coupon", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon created", slog.Int64("couponId", coupon.ID), slog.String("code", coupon.Code))
		response.Success(w, http.StatusCreated, coupon)
	}
}

// List godoc
//	@Summary	List all coupons (Admin)
//	@Tags		Coupons
//	@Produce	json
//	@Success	200	{array}	models.Coupon
//	@Security	BearerAuth
//	@Router		/admin/coupons [get]
func (h *CouponHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		coupons, err := h.couponService.ListCoupons(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, coupons)
	}
}

// Update godoc
//	@Summary	Update a coupon (Admin)
//	@Tags		Coupons
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Coupon ID"
//	@Param		coupon	body		models.UpdateCouponRequest	true	"Fields to change"
//	@Success	200		{object}	models.Coupon
//	@Failure	404		{object}	response.ErrorResponse	"Coupon not found"
//	@Security	BearerAuth
//	@Router		/admin/coupons/{id} [put]
func (h *CouponHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		coupon, err := h.couponService.UpdateCoupon(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update coupon", slog.Int64("couponId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon updated", slog.Int64("couponId", id))
		response.Success(w, http.StatusOK, coupon)
	}
}

// Delete godoc
//	@Summary	Delete a coupon (Admin)
//	@Tags		Coupons
//	@Param		id	path	int	true	"Coupon ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Coupon not found"
//	@Security	BearerAuth
//	@Router		/admin/coupons/{id} [delete]
func (h *CouponHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.couponService.DeleteCoupon(r.Context(), id); err != nil {
			logger.Error("Failed to delete coupon", slog.Int64("couponId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Coupon deleted", slog.Int64("couponId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

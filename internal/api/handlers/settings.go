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

type SettingsService interface {
	GetShippingSettings(ctx context.Context) (*models.ShippingSettings, error)
	UpdateShippingSettings(ctx context.Context, req *models.UpdateShippingSettingsRequest) (*models.ShippingSettings, error)
}

type SettingsHandler struct {
	settingsService SettingsService
	validator       *validator.Validate
}

func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, validator: validator.New()}
}

func (h *SettingsHandler) GetShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		settings, err := h.settingsService.GetShippingSettings(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load shipping settings", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, settings)
	}
}

func (h *SettingsHandler) UpdateShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.UpdateShippingSettingsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		settings, err := h.settingsService.UpdateShippingSettings(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to update shipping settings", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Shipping settings updated",
			slog.Float64("freeDeliveryMinimum", settings.FreeDeliveryMinimum),
			slog.Float64("deliveryCharge", settings.DeliveryCharge))
		response.Success(w, http.StatusOK, settings)
	}
}

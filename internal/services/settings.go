package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vurel/storefront/internal/api/middleware"
	"github.com/vurel/storefront/internal/cache"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	repository "github.com/vurel/storefront/internal/repositories"
)

// Defaults used until an admin saves shipping settings.
const (
	DefaultFreeDeliveryMinimum = 800
	DefaultDeliveryCharge      = 85
)

var shippingSettingsCacheKey = cache.Key(cache.SettingsKeyPrefix, "shipping")

type SettingsService struct {
	repo  repository.SettingsRepository
	cache cache.Cache
}

func NewSettingsService(repo repository.SettingsRepository, cache cache.Cache) *SettingsService {
	return &SettingsService{repo: repo, cache: cache}
}

// GetShippingSettings reads cache first, then the database, then falls back
// to the built-in defaults when nothing has been configured yet.
func (s *SettingsService) GetShippingSettings(ctx context.Context) (*models.ShippingSettings, error) {

	logger := middleware.LoggerFromContext(ctx)

	cached := &models.ShippingSettings{}

	found, err := s.cache.Get(ctx, shippingSettingsCacheKey, cached)
	if err != nil {
		// cache trouble is not a reason to fail pricing
		logger.Warn("Shipping settings cache read failed", slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	settings, err := s.repo.GetShippingSettings(ctx)

	if err != nil {

		if errors.Is(err, repository.ErrNotFound) {
			settings = &models.ShippingSettings{
				FreeDeliveryMinimum: DefaultFreeDeliveryMinimum,
				DeliveryCharge:      DefaultDeliveryCharge,
			}
		} else {
			return nil, appErrors.DatabaseError("Failed to load shipping settings").WithError(err)
		}

	}

	if err := s.cache.Set(ctx, shippingSettingsCacheKey, settings, 0); err != nil {
		logger.Warn("Shipping settings cache write failed", slog.Any("error", err))
	}

	return settings, nil
}

func (s *SettingsService) UpdateShippingSettings(ctx context.Context, req *models.UpdateShippingSettingsRequest) (*models.ShippingSettings, error) {

	logger := middleware.LoggerFromContext(ctx)

	settings := &models.ShippingSettings{
		FreeDeliveryMinimum: req.FreeDeliveryMinimum,
		DeliveryCharge:      req.DeliveryCharge,
	}

	if err := s.repo.SaveShippingSettings(ctx, settings); err != nil {
		return nil, appErrors.DatabaseError("Failed to save shipping settings").WithError(err)
	}

	if err := s.cache.Set(ctx, shippingSettingsCacheKey, settings, 0); err != nil {
		logger.Warn("Shipping settings cache write failed", slog.Any("error", err))
	}

	logger.Info("Shipping settings updated",
		slog.Float64("free_delivery_minimum", settings.FreeDeliveryMinimum),
		slog.Float64("delivery_charge", settings.DeliveryCharge))

	return settings, nil
}

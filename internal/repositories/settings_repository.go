package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
)

const shippingSettingsKey = "shipping_settings"

// SettingsRepository persists site settings as JSON blobs keyed by name in
// the site_settings table.
type SettingsRepository interface {
	GetShippingSettings(ctx context.Context) (*models.ShippingSettings, error)
	SaveShippingSettings(ctx context.Context, settings *models.ShippingSettings) error
}

type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepo(db *sql.DB) SettingsRepository {
	return &settingsRepository{DB: db}
}

func (r *settingsRepository) GetShippingSettings(ctx context.Context) (*models.ShippingSettings, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var jsonData []byte

	query := `SELECT value FROM site_settings WHERE key = $1`

	err := r.DB.QueryRowContext(dbCtx, query, shippingSettingsKey).Scan(&jsonData)

	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get shipping settings: %w", err)
	}

	settings := &models.ShippingSettings{}

	if err := json.Unmarshal(jsonData, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping settings: %w", err)
	}

	return settings, nil
}

func (r *settingsRepository) SaveShippingSettings(ctx context.Context, settings *models.ShippingSettings) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	jsonData, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping settings: %w", err)
	}

	query := `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	_, err = r.DB.ExecContext(dbCtx, query, shippingSettingsKey, jsonData)

	if err != nil {
		return fmt.Errorf("failed to save shipping settings: %w", err)
	}

	return nil
}

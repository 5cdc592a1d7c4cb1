package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"
	"github.com/vurel/storefront/internal/config"
	"github.com/vurel/storefront/pkg/razorpay"
)

type Endpoints struct {
	DB          *sql.DB
	RedisClient *redis.Client
	Gateway     razorpay.Gateway
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "vurel-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				}),
			},
			health.Config{
				Name:      "razorpay",
				Timeout:   2 * time.Second,
				SkipOnErr: true,
				Check: func(_ context.Context) error {
					// the gateway SDK has no ping endpoint; report whether the
					// client was configured with credentials at all
					if endpoints.Gateway == nil || endpoints.Gateway.KeyID() == "" {
						return fmt.Errorf("razorpay client is not configured")
					}

					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

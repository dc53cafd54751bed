package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const (
	componentName    = "storefront-checkout"
	componentVersion = "1.0.0"
)

// Pinger is satisfied by the payment provider client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Endpoints struct {
	Stripe Pinger
}

// NewHealthHandler checks postgres (unless the in-memory driver is used),
// redis and the payment provider. Only the stores are critical; a provider
// outage reports the service as degraded.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {
	checks := make([]health.Config, 0, 3)

	if cfg.Database.Driver == config.DriverPostgres {
		checks = append(checks, health.Config{
			Name:    "database",
			Timeout: 3 * time.Second,
			Check:   postgres.New(postgres.Config{DSN: cfg.Database.GetDSN()}),
		})
	}

	checks = append(checks,
		health.Config{
			Name:    "redis",
			Timeout: 2 * time.Second,
			Check:   healthRedis.New(healthRedis.Config{DSN: cfg.RedisConnect.GetDSN()}),
		},
		health.Config{
			Name:      "stripe",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check:     stripeCheck(endpoints.Stripe),
		},
	)

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func stripeCheck(client Pinger) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("stripe client is not initialized")
		}

		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to stripe: %w", err)
		}

		return nil
	}
}

package repository

import (
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRateLimitRepoWithClock(client *redis.Client, cfg *config.Config, now func() time.Time) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: now}
}

package cache

import (
	"context"
	"time"
)

// Cache stores JSON encoded values. Implementations report a miss as
// (false, nil) so callers can tell it apart from a backend failure.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CouponKeyPrefix = "coupon"
)

// TTLUntil caps defaultTTL so an entry never outlives expiresAt. It returns
// zero when expiresAt has already passed.
func TTLUntil(expiresAt, now time.Time, defaultTTL time.Duration) time.Duration {
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	return min(remaining, defaultTTL)
}

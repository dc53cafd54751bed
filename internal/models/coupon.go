package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

// ActiveAt uses a strict comparison: a coupon expiring exactly at now is
// already expired.
func (c *Coupon) ActiveAt(now time.Time) bool {
	return c.ExpiresAt.After(now)
}

package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seed loads the configured catalog, coupons and users. Coupons expire
// ValidFor after now.
func (s *Store) Seed(seed config.Seed, now time.Time) error {
	for i, p := range seed.Products {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return fmt.Errorf("seed product %d: invalid id %q: %w", i, p.ID, err)
		}

		price, err := decimal.NewFromString(p.Price)
		if err != nil || !price.IsPositive() {
			return fmt.Errorf("seed product %s: price must be a positive amount, got %q", p.ID, p.Price)
		}

		if p.Stock < 0 {
			return fmt.Errorf("seed product %s: stock must not be negative", p.ID)
		}

		s.PutProduct(models.Product{
			ID:            id,
			Name:          p.Name,
			Price:         price.Round(2),
			StockQuantity: p.Stock,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	for _, c := range seed.Coupons {
		percent, err := decimal.NewFromString(c.DiscountPercent)
		if err != nil || percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("seed coupon %s: discount must be within [0, 100], got %q", c.Name, c.DiscountPercent)
		}

		s.PutCoupon(models.Coupon{
			ID:              uuid.New(),
			Name:            c.Name,
			DiscountPercent: percent,
			ExpiresAt:       now.Add(c.ValidFor),
		})
	}

	for i, u := range seed.Users {
		id, err := uuid.Parse(u.ID)
		if err != nil {
			return fmt.Errorf("seed user %d: invalid id %q: %w", i, u.ID, err)
		}

		role := models.Role(u.Role)
		if role == "" {
			role = models.RoleUser
		}

		s.PutUser(models.User{
			ID:        id,
			Name:      u.Name,
			Email:     strings.ToLower(strings.TrimSpace(u.Email)),
			Role:      role,
			CreatedAt: now,
		})
	}

	return nil
}

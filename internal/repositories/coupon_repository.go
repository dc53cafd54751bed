package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
)

type CouponRepository interface {
	// GetActiveCouponByName returns ErrNotFound both for unknown names and
	// for coupons whose expiry is at or before now.
	GetActiveCouponByName(ctx context.Context, name string, now time.Time) (*models.Coupon, error)
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepository(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

func (r *couponRepository) GetActiveCouponByName(ctx context.Context, name string, now time.Time) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, discount_percent, expires_at
		FROM coupons
		WHERE name = $1 AND expires_at > $2
	`

	coupon := &models.Coupon{}

	err := r.DB.QueryRowContext(dbCtx, query, name, now).Scan(
		&coupon.ID,
		&coupon.Name,
		&coupon.DiscountPercent,
		&coupon.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}

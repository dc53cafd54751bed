package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
)

type CouponService interface {
	ValidateCoupon(ctx context.Context, name string) (*models.Coupon, error)
	ApplyCoupon(ctx context.Context, userID uuid.UUID, name string) (*models.CartResponse, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
	cache      cache.Cache
	defaultTTL time.Duration
	writer     *cartWriter
	now        func() time.Time
}

// NewCouponService reads coupons through couponCache. now defaults to
// time.Now when nil.
func NewCouponService(
	couponRepo repository.CouponRepository,
	cartRepo repository.CartRepository,
	couponCache cache.Cache,
	cfg *config.Config,
	now func() time.Time,
) CouponService {
	if now == nil {
		now = time.Now
	}

	return &couponService{
		couponRepo: couponRepo,
		cache:      couponCache,
		defaultTTL: cfg.Cache.DefaultTTL,
		writer:     newCartWriter(cartRepo, cfg.Checkout.CartMaxRetries, now),
		now:        now,
	}
}

func (s *couponService) ValidateCoupon(ctx context.Context, name string) (*models.Coupon, error) {
	now := s.now()
	key := cache.Key(cache.CouponKeyPrefix, name)

	var cached models.Coupon

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Coupon cache read failed, falling back to database",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	if found && cached.ActiveAt(now) {
		return &cached, nil
	}

	coupon, err := s.couponRepo.GetActiveCouponByName(ctx, name, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.InvalidCouponError("Coupon is invalid or has expired").WithError(err)
		}

		return nil, storeError(err, "Failed to load coupon")
	}

	if ttl := cache.TTLUntil(coupon.ExpiresAt, now, s.defaultTTL); ttl > 0 {
		if err := s.cache.Set(ctx, key, coupon, ttl); err != nil {
			slog.Warn("Failed to cache coupon", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return coupon, nil
}

// ApplyCoupon stores the discounted total next to the undiscounted one.
func (s *couponService) ApplyCoupon(ctx context.Context, userID uuid.UUID, name string) (*models.CartResponse, error) {
	coupon, err := s.ValidateCoupon(ctx, name)
	if err != nil {
		return nil, err
	}

	cart, err := s.writer.mutate(ctx, userID, false, func(cart *models.Cart) error {
		cart.ApplyDiscount(coupon.DiscountPercent)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewCartResponse(cart), nil
}

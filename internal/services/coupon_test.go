package service_test

import (
	"errors"
	"testing"
	"time"

	cacheMocks "github.com/aaravmahajanofficial/storefront-checkout/internal/cache/mocks"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var couponNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type couponFixture struct {
	service    service.CouponService
	couponRepo *mocks.CouponRepository
	cartRepo   *mocks.CartRepository
	cache      *cacheMocks.Cache
}

func newCouponService(t *testing.T) couponFixture {
	t.Helper()

	f := couponFixture{
		couponRepo: mocks.NewCouponRepository(t),
		cartRepo:   mocks.NewCartRepository(t),
		cache:      cacheMocks.NewCache(t),
	}

	cfg := &config.Config{
		Cache:    config.CacheConfig{DefaultTTL: 15 * time.Minute},
		Checkout: config.Checkout{CartMaxRetries: 3},
	}

	f.service = service.NewCouponService(f.couponRepo, f.cartRepo, f.cache, cfg,
		func() time.Time { return couponNow })

	return f
}

func TestCouponService_ValidateCoupon(t *testing.T) {
	coupon := &models.Coupon{
		ID:              uuid.New(),
		Name:            "SPRING10",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       couponNow.Add(90 * time.Second),
	}

	t.Run("Cache hit skips the database", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		f.cache.On("Get", mock.Anything, "coupon:SPRING10", mock.AnythingOfType("*models.Coupon")).
			Run(func(args mock.Arguments) { *args.Get(2).(*models.Coupon) = *coupon }).
			Return(true, nil).Once()

		// Act
		got, err := f.service.ValidateCoupon(t.Context(), "SPRING10")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, coupon.ID, got.ID)
	})

	t.Run("Miss loads and caches until expiry", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		f.cache.On("Get", mock.Anything, "coupon:SPRING10", mock.Anything).Return(false, nil).Once()
		f.couponRepo.On("GetActiveCouponByName", mock.Anything, "SPRING10", couponNow).Return(coupon, nil).Once()
		f.cache.On("Set", mock.Anything, "coupon:SPRING10", coupon, 90*time.Second).Return(nil).Once()

		// Act
		got, err := f.service.ValidateCoupon(t.Context(), "SPRING10")

		// Assert
		require.NoError(t, err)
		assert.Same(t, coupon, got)
	})

	t.Run("Cache failures are not surfaced", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		f.cache.On("Get", mock.Anything, "coupon:SPRING10", mock.Anything).Return(false, errors.New("redis down")).Once()
		f.couponRepo.On("GetActiveCouponByName", mock.Anything, "SPRING10", couponNow).Return(coupon, nil).Once()
		f.cache.On("Set", mock.Anything, "coupon:SPRING10", coupon, mock.Anything).Return(errors.New("redis down")).Once()

		// Act
		got, err := f.service.ValidateCoupon(t.Context(), "SPRING10")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "SPRING10", got.Name)
	})

	t.Run("Expired cached entry is rechecked", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		expired := *coupon
		expired.ExpiresAt = couponNow

		f.cache.On("Get", mock.Anything, "coupon:SPRING10", mock.Anything).
			Run(func(args mock.Arguments) { *args.Get(2).(*models.Coupon) = expired }).
			Return(true, nil).Once()
		f.couponRepo.On("GetActiveCouponByName", mock.Anything, "SPRING10", couponNow).Return(nil, repository.ErrNotFound).Once()

		// Act
		_, err := f.service.ValidateCoupon(t.Context(), "SPRING10")

		// Assert
		requireAppError(t, err, appErrors.ErrCodeInvalidCoupon)
	})

	t.Run("Unknown or expired coupon", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		f.cache.On("Get", mock.Anything, "coupon:NOPE", mock.Anything).Return(false, nil).Once()
		f.couponRepo.On("GetActiveCouponByName", mock.Anything, "NOPE", couponNow).Return(nil, repository.ErrNotFound).Once()

		// Act
		got, err := f.service.ValidateCoupon(t.Context(), "NOPE")

		// Assert
		assert.Nil(t, got)
		appErr := requireAppError(t, err, appErrors.ErrCodeInvalidCoupon)
		assert.Equal(t, 400, appErr.StatusCode)
	})
}

func TestCouponService_ApplyCoupon(t *testing.T) {
	userID := uuid.New()
	coupon := &models.Coupon{Name: "SAVE15", DiscountPercent: decimal.NewFromInt(15), ExpiresAt: couponNow.Add(24 * time.Hour)}

	t.Run("Stores the discounted total", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		cart := cartWithItem(userID, "33.33", 1)

		f.cache.On("Get", mock.Anything, "coupon:SAVE15", mock.Anything).Return(false, nil).Once()
		f.couponRepo.On("GetActiveCouponByName", mock.Anything, "SAVE15", couponNow).Return(coupon, nil).Once()
		f.cache.On("Set", mock.Anything, "coupon:SAVE15", coupon, 15*time.Minute).Return(nil).Once()
		f.cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(cart, nil).Once()
		f.cartRepo.On("UpdateCart", mock.Anything, cart).Return(nil).Once()

		// Act
		resp, err := f.service.ApplyCoupon(t.Context(), userID, "SAVE15")

		// Assert
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("33.33").Equal(resp.Cart.TotalCartPrice))
		require.True(t, resp.Cart.TotalPriceAfterDiscount.Valid)
		assert.True(t, decimal.RequireFromString("28.33").Equal(resp.Cart.TotalPriceAfterDiscount.Decimal))
		assert.Equal(t, couponNow, resp.Cart.UpdatedAt)
	})

	t.Run("No cart", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		f.cache.On("Get", mock.Anything, "coupon:SAVE15", mock.Anything).
			Run(func(args mock.Arguments) { *args.Get(2).(*models.Coupon) = *coupon }).
			Return(true, nil).Once()
		f.cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()

		// Act
		_, err := f.service.ApplyCoupon(t.Context(), userID, "SAVE15")

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Invalid coupon leaves the cart alone", func(t *testing.T) {
		// Arrange
		f := newCouponService(t)
		f.cache.On("Get", mock.Anything, "coupon:OLD", mock.Anything).Return(false, nil).Once()
		f.couponRepo.On("GetActiveCouponByName", mock.Anything, "OLD", couponNow).Return(nil, repository.ErrNotFound).Once()

		// Act
		_, err := f.service.ApplyCoupon(t.Context(), userID, "OLD")

		// Assert
		requireAppError(t, err, appErrors.ErrCodeInvalidCoupon)
		f.cartRepo.AssertNotCalled(t, "GetCartByUserID", mock.Anything, mock.Anything)
	})
}

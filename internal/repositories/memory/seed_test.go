package memory_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Seed(t *testing.T) {
	productID, userID := uuid.New(), uuid.New()

	t.Run("Loads products, coupons and users", func(t *testing.T) {
		// Arrange
		s := memory.NewStore()
		seed := config.Seed{
			Products: []config.SeedProduct{{ID: productID.String(), Name: "Mug", Price: "9.50", Stock: 4}},
			Coupons:  []config.SeedCoupon{{Name: "WELCOME10", DiscountPercent: "10", ValidFor: 24 * time.Hour}},
			Users:    []config.SeedUser{{ID: userID.String(), Name: "Ana", Email: " Ana@Example.com "}},
		}

		// Act
		err := s.Seed(seed, now)

		// Assert
		require.NoError(t, err)

		product, err := s.GetProductByID(t.Context(), productID)
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("9.50")))
		assert.Equal(t, 4, product.StockQuantity)

		coupon, err := s.GetActiveCouponByName(t.Context(), "WELCOME10", now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(24*time.Hour), coupon.ExpiresAt)

		user, err := s.GetUserByEmail(t.Context(), "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	tests := []struct {
		name string
		seed config.Seed
	}{
		{"Product id is not a UUID", config.Seed{Products: []config.SeedProduct{{ID: "lamp", Price: "1"}}}},
		{"Product price is not positive", config.Seed{Products: []config.SeedProduct{{ID: productID.String(), Price: "0"}}}},
		{"Coupon discount above 100", config.Seed{Coupons: []config.SeedCoupon{{Name: "ALL", DiscountPercent: "150"}}}},
		{"User id is not a UUID", config.Seed{Users: []config.SeedUser{{ID: "ana"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := memory.NewStore().Seed(tt.seed, now)

			assert.Error(t, err)
		})
	}
}

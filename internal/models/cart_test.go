package models_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumOfItems(cart *models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

func TestCart_AddProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("Same product and color increments with the captured price", func(t *testing.T) {
		// Arrange
		cart := models.NewCart(uuid.New(), time.Now())

		// Act
		cart.AddProduct(productID, "red", decimal.RequireFromString("10.00"))
		cart.AddProduct(productID, "red", decimal.RequireFromString("99.00"))

		// Assert
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.True(t, decimal.RequireFromString("10.00").Equal(cart.Items[0].UnitPrice))
		assert.True(t, decimal.RequireFromString("20.00").Equal(cart.TotalCartPrice))
		assert.Equal(t, 1, cart.ItemCount())
	})

	t.Run("Different color is a new line", func(t *testing.T) {
		// Arrange
		cart := models.NewCart(uuid.New(), time.Now())

		// Act
		cart.AddProduct(productID, "red", decimal.NewFromInt(10))
		cart.AddProduct(productID, "blue", decimal.NewFromInt(10))

		// Assert
		require.Len(t, cart.Items, 2)
		assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
		assert.True(t, decimal.NewFromInt(20).Equal(cart.TotalCartPrice))
	})
}

func TestCart_PricingInvariant(t *testing.T) {
	// Arrange
	cart := models.NewCart(uuid.New(), time.Now())
	first, second, third := uuid.New(), uuid.New(), uuid.New()

	// Act and Assert after every mutation
	cart.AddProduct(first, "", decimal.RequireFromString("10.50"))
	assert.True(t, sumOfItems(cart).Equal(cart.TotalCartPrice))

	cart.AddProduct(second, "", decimal.RequireFromString("3.25"))
	assert.True(t, sumOfItems(cart).Equal(cart.TotalCartPrice))

	cart.AddProduct(third, "xl", decimal.RequireFromString("0.99"))
	assert.True(t, sumOfItems(cart).Equal(cart.TotalCartPrice))

	require.True(t, cart.SetQuantity(cart.Items[1].ID, 4))
	assert.True(t, sumOfItems(cart).Equal(cart.TotalCartPrice))

	cart.RemoveItem(cart.Items[0].ID)
	assert.True(t, sumOfItems(cart).Equal(cart.TotalCartPrice))
	assert.True(t, decimal.RequireFromString("13.99").Equal(cart.TotalCartPrice))
}

func TestCart_DiscountInvalidation(t *testing.T) {
	mutations := map[string]func(c *models.Cart){
		"add":    func(c *models.Cart) { c.AddProduct(uuid.New(), "", decimal.NewFromInt(1)) },
		"remove": func(c *models.Cart) { c.RemoveItem(c.Items[0].ID) },
		"update": func(c *models.Cart) { c.SetQuantity(c.Items[0].ID, 3) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			// Arrange
			cart := models.NewCart(uuid.New(), time.Now())
			cart.AddProduct(uuid.New(), "", decimal.NewFromInt(100))
			cart.ApplyDiscount(decimal.NewFromInt(10))
			require.True(t, cart.TotalPriceAfterDiscount.Valid)

			// Act
			mutate(cart)

			// Assert
			assert.False(t, cart.TotalPriceAfterDiscount.Valid)
			assert.True(t, cart.EffectivePrice().Equal(cart.TotalCartPrice))
		})
	}
}

func TestCart_ApplyDiscount(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		percent string
		want    string
	}{
		{"Ten percent", "100.00", "10", "90.00"},
		{"Rounds to cents", "33.33", "15", "28.33"},
		{"Zero percent", "12.34", "0", "12.34"},
		{"Full discount", "50.00", "100", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cart := models.NewCart(uuid.New(), time.Now())
			cart.AddProduct(uuid.New(), "", decimal.RequireFromString(tt.total))

			// Act
			discounted := cart.ApplyDiscount(decimal.RequireFromString(tt.percent))

			// Assert
			assert.True(t, decimal.RequireFromString(tt.want).Equal(discounted), "got %s", discounted)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(cart.TotalCartPrice), "total must not change")
			assert.True(t, discounted.Equal(cart.EffectivePrice()))
		})
	}
}

func TestCart_SetQuantity_UnknownItem(t *testing.T) {
	cart := models.NewCart(uuid.New(), time.Now())
	cart.AddProduct(uuid.New(), "", decimal.NewFromInt(5))

	assert.False(t, cart.SetQuantity(uuid.New(), 2))
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCoupon_ActiveAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&models.Coupon{ExpiresAt: now.Add(time.Second)}).ActiveAt(now))
	assert.False(t, (&models.Coupon{ExpiresAt: now}).ActiveAt(now), "expiry equal to now is expired")
	assert.False(t, (&models.Coupon{ExpiresAt: now.Add(-time.Second)}).ActiveAt(now))
}

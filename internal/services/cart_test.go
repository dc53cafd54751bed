package service_test

import (
	"errors"
	"testing"
	"time"

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

func newCartService(t *testing.T) (service.CartService, *mocks.CartRepository, *mocks.ProductRepository) {
	t.Helper()

	cartRepo := mocks.NewCartRepository(t)
	productRepo := mocks.NewProductRepository(t)

	return service.NewCartService(cartRepo, productRepo, config.Checkout{CartMaxRetries: 3}), cartRepo, productRepo
}

func cartWithItem(userID uuid.UUID, price string, quantity int) *models.Cart {
	cart := models.NewCart(userID, time.Now().Add(-time.Hour))
	cart.Version = 4
	cart.AddProduct(uuid.New(), "", decimal.RequireFromString(price))
	cart.Items[0].Quantity = quantity
	cart.Recalculate()

	return cart
}

func TestCartService_AddItem(t *testing.T) {
	userID := uuid.New()
	product := &models.Product{ID: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("12.50"), StockQuantity: 3}

	t.Run("Creates the first cart", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, productRepo := newCartService(t)
		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()
		cartRepo.On("CreateCart", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		resp, err := cartService.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID, Color: "<b>red</b>"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, resp.NumOfCartItems)
		assert.Equal(t, userID, resp.Cart.UserID)
		assert.Equal(t, "red", resp.Cart.Items[0].Color)
		assert.True(t, product.Price.Equal(resp.Cart.TotalCartPrice))
	})

	t.Run("Increments an existing line", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, productRepo := newCartService(t)
		existing := models.NewCart(userID, time.Now())
		existing.AddProduct(product.ID, "", decimal.RequireFromString("10.00"))

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(existing, nil).Once()
		cartRepo.On("UpdateCart", mock.Anything, existing).Return(nil).Once()

		// Act
		resp, err := cartService.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Cart.Items[0].Quantity)
		assert.True(t, decimal.RequireFromString("20.00").Equal(resp.Cart.TotalCartPrice), "captured price is kept")
	})

	t.Run("Retries after a version conflict", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, productRepo := newCartService(t)
		stale := models.NewCart(userID, time.Now())
		fresh := models.NewCart(userID, time.Now())

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(stale, nil).Once()
		cartRepo.On("UpdateCart", mock.Anything, stale).Return(repository.ErrVersionConflict).Once()
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(fresh, nil).Once()
		cartRepo.On("UpdateCart", mock.Anything, fresh).Return(nil).Once()

		// Act
		resp, err := cartService.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		require.NoError(t, err)
		assert.Same(t, fresh, resp.Cart)
	})

	t.Run("Concurrent first cart is retried as an update", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, productRepo := newCartService(t)
		winner := models.NewCart(userID, time.Now())

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()
		cartRepo.On("CreateCart", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(winner, nil).Once()
		cartRepo.On("UpdateCart", mock.Anything, winner).Return(nil).Once()

		// Act
		resp, err := cartService.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, winner.ID, resp.Cart.ID)
	})

	t.Run("Retries exhausted", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, productRepo := newCartService(t)

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(models.NewCart(userID, time.Now()), nil).Times(3)
		cartRepo.On("UpdateCart", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict).Times(3)

		// Act
		resp, err := cartService.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		assert.Nil(t, resp)
		requireAppError(t, err, appErrors.ErrCodeConflict)
	})

	t.Run("Unknown product", func(t *testing.T) {
		// Arrange
		cartService, _, productRepo := newCartService(t)
		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(nil, repository.ErrNotFound).Once()

		// Act
		_, err := cartService.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		appErr := requireAppError(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, product.ID.String(), appErr.Detail)
	})

	t.Run("Product lookup fails", func(t *testing.T) {
		// Arrange
		cartService, _, productRepo := newCartService(t)
		dbErr := errors.New("connection reset")
		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(nil, dbErr).Once()

		// Act
		_, err := cartService.AddItem(t.Context(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCartService_GetCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, _ := newCartService(t)
		cart := cartWithItem(userID, "5.00", 2)
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(cart, nil).Once()

		// Act
		resp, err := cartService.GetCart(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, resp.NumOfCartItems)
	})

	t.Run("Not found", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, _ := newCartService(t)
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()

		// Act
		_, err := cartService.GetCart(t.Context(), userID)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	userID := uuid.New()

	t.Run("Removes and recalculates", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, _ := newCartService(t)
		cart := cartWithItem(userID, "5.00", 2)
		cart.ApplyDiscount(decimal.NewFromInt(10))
		itemID := cart.Items[0].ID

		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(cart, nil).Once()
		cartRepo.On("UpdateCart", mock.Anything, cart).Return(nil).Once()

		// Act
		resp, err := cartService.RemoveItem(t.Context(), userID, itemID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 0, resp.NumOfCartItems)
		assert.True(t, resp.Cart.TotalCartPrice.IsZero())
		assert.False(t, resp.Cart.TotalPriceAfterDiscount.Valid)
	})

	t.Run("Cart deleted concurrently", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, _ := newCartService(t)
		cart := cartWithItem(userID, "5.00", 1)

		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(cart, nil).Once()
		cartRepo.On("UpdateCart", mock.Anything, cart).Return(repository.ErrNotFound).Once()

		// Act
		_, err := cartService.RemoveItem(t.Context(), userID, cart.Items[0].ID)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("No cart", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, _ := newCartService(t)
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound).Once()

		// Act
		_, err := cartService.RemoveItem(t.Context(), userID, uuid.New())

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	userID := uuid.New()

	t.Run("Overwrites the quantity", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, _ := newCartService(t)
		cart := cartWithItem(userID, "2.50", 1)

		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(cart, nil).Once()
		cartRepo.On("UpdateCart", mock.Anything, cart).Return(nil).Once()

		// Act
		resp, err := cartService.UpdateItemQuantity(t.Context(), userID, cart.Items[0].ID, 4)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Cart.Items[0].Quantity)
		assert.True(t, decimal.RequireFromString("10.00").Equal(resp.Cart.TotalCartPrice))
	})

	t.Run("Unknown item", func(t *testing.T) {
		// Arrange
		cartService, cartRepo, _ := newCartService(t)
		cart := cartWithItem(userID, "2.50", 1)
		cartRepo.On("GetCartByUserID", mock.Anything, userID).Return(cart, nil).Once()

		// Act
		_, err := cartService.UpdateItemQuantity(t.Context(), userID, uuid.New(), 2)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
		cartRepo.AssertNotCalled(t, "UpdateCart", mock.Anything, mock.Anything)
	})

	t.Run("Quantity below one", func(t *testing.T) {
		// Arrange
		cartService, _, _ := newCartService(t)

		// Act
		_, err := cartService.UpdateItemQuantity(t.Context(), userID, uuid.New(), 0)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeValidation)
	})
}

func TestCartService_ClearCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		cartService, cartRepo, _ := newCartService(t)
		cartRepo.On("DeleteCartByUserID", mock.Anything, userID).Return(nil).Once()

		require.NoError(t, cartService.ClearCart(t.Context(), userID))
	})

	t.Run("Database error", func(t *testing.T) {
		cartService, cartRepo, _ := newCartService(t)
		cartRepo.On("DeleteCartByUserID", mock.Anything, userID).Return(errors.New("boom")).Once()

		requireAppError(t, cartService.ClearCart(t.Context(), userID), appErrors.ErrCodeDatabaseError)
	})
}

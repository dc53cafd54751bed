package repository_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cartRowColumns = []string{
	"id", "user_id", "items", "total_cart_price", "total_price_after_discount", "version", "created_at", "updated_at",
}

func sampleCart(t *testing.T) *models.Cart {
	t.Helper()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cart := models.NewCart(uuid.New(), now)
	cart.AddProduct(uuid.New(), "red", decimal.RequireFromString("10.50"))

	return cart
}

func TestCartRepository_CreateCart(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`INSERT INTO carts (id, user_id, items, total_cart_price, total_price_after_discount, version, created_at, updated_at)`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		cart := sampleCart(t)
		itemsJSON, err := json.Marshal(cart.Items)
		require.NoError(t, err)

		mock.ExpectExec(expectedSQL).
			WithArgs(cart.ID, cart.UserID, itemsJSON, cart.TotalCartPrice, cart.TotalPriceAfterDiscount, cart.CreatedAt, cart.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err = repo.CreateCart(t.Context(), cart)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, cart.Version)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - User already has a cart", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		cart := sampleCart(t)

		mock.ExpectExec(expectedSQL).WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateCart(t.Context(), cart)

		// Assert
		require.ErrorIs(t, err, repository.ErrDuplicate)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_GetCartByUserID(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`FROM carts WHERE user_id = $1`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		cart := sampleCart(t)
		itemsJSON, err := json.Marshal(cart.Items)
		require.NoError(t, err)

		mock.ExpectQuery(expectedSQL).
			WithArgs(cart.UserID).
			WillReturnRows(sqlmock.NewRows(cartRowColumns).
				AddRow(cart.ID.String(), cart.UserID.String(), itemsJSON, "10.50", "9.45", 3, cart.CreatedAt, cart.UpdatedAt))

		// Act
		got, err := repo.GetCartByUserID(t.Context(), cart.UserID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, cart.ID, got.ID)
		assert.Equal(t, 3, got.Version)
		require.Len(t, got.Items, 1)
		assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.50")))
		assert.True(t, got.TotalCartPrice.Equal(decimal.RequireFromString("10.50")))
		require.True(t, got.TotalPriceAfterDiscount.Valid)
		assert.True(t, got.TotalPriceAfterDiscount.Decimal.Equal(decimal.RequireFromString("9.45")))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No discount", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		cart := sampleCart(t)

		mock.ExpectQuery(expectedSQL).
			WillReturnRows(sqlmock.NewRows(cartRowColumns).
				AddRow(cart.ID.String(), cart.UserID.String(), []byte(`[]`), "0", nil, 1, cart.CreatedAt, cart.UpdatedAt))

		// Act
		got, err := repo.GetCartByUserID(t.Context(), cart.UserID)

		// Assert
		require.NoError(t, err)
		assert.False(t, got.TotalPriceAfterDiscount.Valid)
		assert.Empty(t, got.Items)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		userID := uuid.New()

		mock.ExpectQuery(expectedSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows(cartRowColumns))

		// Act
		got, err := repo.GetCartByUserID(t.Context(), userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		dbErr := errors.New("connection reset")

		mock.ExpectQuery(expectedSQL).WillReturnError(dbErr)

		// Act
		got, err := repo.GetCartByUserID(t.Context(), uuid.New())

		// Assert
		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestCartRepository_UpdateCart(t *testing.T) {
	updateSQL := regexp.QuoteMeta(`UPDATE carts`)
	existsSQL := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM carts WHERE id = $1)`)

	t.Run("Success - Version is bumped", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		cart := sampleCart(t)
		cart.Version = 4
		itemsJSON, err := json.Marshal(cart.Items)
		require.NoError(t, err)

		mock.ExpectExec(updateSQL).
			WithArgs(itemsJSON, cart.TotalCartPrice, cart.TotalPriceAfterDiscount, cart.UpdatedAt, cart.ID, 4).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err = repo.UpdateCart(t.Context(), cart)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, cart.Version)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Stale version", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		cart := sampleCart(t)
		cart.Version = 2

		mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsSQL).WithArgs(cart.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		// Act
		err := repo.UpdateCart(t.Context(), cart)

		// Assert
		require.ErrorIs(t, err, repository.ErrVersionConflict)
		assert.Equal(t, 2, cart.Version)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart removed", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		cart := sampleCart(t)

		mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsSQL).WithArgs(cart.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		// Act
		err := repo.UpdateCart(t.Context(), cart)

		// Assert
		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_DeleteCartByUserID(t *testing.T) {
	t.Run("Missing cart is not an error", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCartRepository(db)
		userID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.DeleteCartByUserID(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

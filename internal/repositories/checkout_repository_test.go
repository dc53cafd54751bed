package repository_test

import (
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

var (
	eventSQL   = regexp.QuoteMeta(`INSERT INTO processed_webhook_events`)
	reserveSQL = regexp.QuoteMeta(`UPDATE products AS p`)
	orderSQL   = regexp.QuoteMeta(`INSERT INTO orders`)
	cartSQL    = regexp.QuoteMeta(`DELETE FROM carts WHERE id = $1 AND version = $2`)
)

func sampleCommit(t *testing.T, eventID string) (*models.CheckoutCommit, uuid.UUID, uuid.UUID) {
	t.Helper()

	now := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	productA, productB := uuid.New(), uuid.New()

	order := &models.Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		CartID: uuid.New(),
		Items: []models.OrderItem{
			{ProductID: productA, Color: "red", UnitPrice: decimal.NewFromInt(5), Quantity: 2},
			{ProductID: productB, UnitPrice: decimal.NewFromInt(7), Quantity: 1},
			{ProductID: productA, Color: "blue", UnitPrice: decimal.NewFromInt(5), Quantity: 1},
		},
		ShippingAddress: &models.ShippingAddress{Details: "1 Main St"},
		TaxPrice:        decimal.Zero,
		ShippingPrice:   decimal.Zero,
		TotalOrderPrice: decimal.NewFromInt(22),
		PaymentMethod:   models.PaymentMethodCash,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	commit := &models.CheckoutCommit{
		Order:        order,
		Reservations: order.Reservations(),
		CartID:       order.CartID,
		CartVersion:  3,
		EventID:      eventID,
		EventType:    models.EventChargeSucceeded,
	}

	return commit, productA, productB
}

func TestCheckoutRepository_CommitCheckout(t *testing.T) {
	t.Run("Success - Cash order", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCheckoutRepository(db)
		commit, productA, productB := sampleCommit(t, "")

		mock.ExpectBegin()
		mock.ExpectQuery(reserveSQL).
			WithArgs(pq.Array([]string{productA.String(), productB.String()}), pq.Array([]int64{3, 1})).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productA.String()).AddRow(productB.String()))
		mock.ExpectExec(orderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(cartSQL).WithArgs(commit.CartID, 3).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repo.CommitCheckout(t.Context(), commit)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Provider event is recorded first", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCheckoutRepository(db)
		commit, productA, productB := sampleCommit(t, "evt_123")

		mock.ExpectBegin()
		mock.ExpectExec(eventSQL).
			WithArgs("evt_123", models.EventChargeSucceeded, commit.Order.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(reserveSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productA.String()).AddRow(productB.String()))
		mock.ExpectExec(orderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(cartSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repo.CommitCheckout(t.Context(), commit)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Event already processed", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCheckoutRepository(db)
		commit, _, _ := sampleCommit(t, "evt_123")

		mock.ExpectBegin()
		mock.ExpectExec(eventSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Act
		err := repo.CommitCheckout(t.Context(), commit)

		// Assert
		require.ErrorIs(t, err, repository.ErrEventProcessed)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Insufficient stock rolls back", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCheckoutRepository(db)
		commit, productA, productB := sampleCommit(t, "")

		mock.ExpectBegin()
		mock.ExpectQuery(reserveSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productA.String()))
		mock.ExpectRollback()

		// Act
		err := repo.CommitCheckout(t.Context(), commit)

		// Assert
		require.ErrorIs(t, err, repository.ErrInsufficientStock)

		var stockErr *repository.StockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, productB, stockErr.ProductID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart already ordered", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCheckoutRepository(db)
		commit, productA, productB := sampleCommit(t, "")

		mock.ExpectBegin()
		mock.ExpectQuery(reserveSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productA.String()).AddRow(productB.String()))
		mock.ExpectExec(orderSQL).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		// Act
		err := repo.CommitCheckout(t.Context(), commit)

		// Assert
		require.ErrorIs(t, err, repository.ErrDuplicate)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart changed during checkout", func(t *testing.T) {
		// Arrange
		db, mock := newSQLMock(t)
		repo := repository.NewCheckoutRepository(db)
		commit, productA, productB := sampleCommit(t, "")

		mock.ExpectBegin()
		mock.ExpectQuery(reserveSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productA.String()).AddRow(productB.String()))
		mock.ExpectExec(orderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(cartSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Act
		err := repo.CommitCheckout(t.Context(), commit)

		// Assert
		require.ErrorIs(t, err, repository.ErrCartChanged)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CheckoutRepository interface {
	// CommitCheckout records the triggering provider event, reserves stock,
	// inserts the order and deletes the cart in one transaction. Any failure
	// leaves every table untouched.
	//
	// Errors: ErrEventProcessed, *StockError, ErrDuplicate (the cart already
	// produced an order), ErrCartChanged.
	CommitCheckout(ctx context.Context, commit *models.CheckoutCommit) error
}

type checkoutRepository struct {
	DB *sql.DB
}

func NewCheckoutRepository(db *sql.DB) CheckoutRepository {
	return &checkoutRepository{DB: db}
}

func (r *checkoutRepository) CommitCheckout(ctx context.Context, commit *models.CheckoutCommit) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	if commit.EventID != "" {
		if err := recordEvent(dbCtx, tx, commit.EventID, commit.EventType, commit.Order.CreatedAt); err != nil {
			return err
		}
	}

	if err := reserveStock(dbCtx, tx, commit.Reservations); err != nil {
		return err
	}

	if err := insertOrder(dbCtx, tx, commit.Order); err != nil {
		return err
	}

	result, err := tx.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1 AND version = $2`, commit.CartID, commit.CartVersion)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrCartChanged
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkout: %w", err)
	}

	return nil
}

// recordEvent claims the provider event id for this transaction.
func recordEvent(ctx context.Context, tx *sql.Tx, eventID, eventType string, at time.Time) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO processed_webhook_events (event_id, event_type, processed_at) VALUES ($1, $2, $3)
		ON CONFLICT (event_id) DO NOTHING`,
		eventID, eventType, at)
	if err != nil {
		return fmt.Errorf("failed to record provider event: %w", err)
	}

	insertedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get inserted rows: %w", err)
	}

	if insertedRows == 0 {
		return ErrEventProcessed
	}

	return nil
}

// reserveStock decrements every product in a single statement. A product
// missing from RETURNING either does not exist or has too little stock.
func reserveStock(ctx context.Context, tx *sql.Tx, reservations []models.StockReservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids, quantities := reservationArrays(reservations)

	query := `
		UPDATE products AS p
		SET stock_quantity = p.stock_quantity - d.qty,
			units_sold = p.units_sold + d.qty,
			updated_at = NOW()
		FROM unnest($1::uuid[], $2::int[]) AS d(id, qty)
		WHERE p.id = d.id AND p.stock_quantity >= d.qty
		RETURNING p.id
	`

	rows, err := tx.QueryContext(ctx, query, pq.Array(ids), pq.Array(quantities))
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}
	defer rows.Close()

	reserved := make(map[uuid.UUID]struct{}, len(reservations))

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan reserved product: %w", err)
		}

		reserved[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate reserved products: %w", err)
	}

	for _, res := range reservations {
		if _, ok := reserved[res.ProductID]; !ok {
			return &StockError{ProductID: res.ProductID}
		}
	}

	return nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	var addressJSON []byte

	if order.ShippingAddress != nil {
		addressJSON, err = json.Marshal(order.ShippingAddress)
		if err != nil {
			return fmt.Errorf("failed to marshal shipping address: %w", err)
		}
	}

	query := `
		INSERT INTO orders (id, user_id, cart_id, items, shipping_address, tax_price, shipping_price, total_order_price,
			payment_method, payment_intent_id, is_paid, paid_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
	`

	paymentIntentID := sql.NullString{String: order.PaymentIntentID, Valid: order.PaymentIntentID != ""}

	var paidAt sql.NullTime
	if order.PaidAt != nil {
		paidAt = sql.NullTime{Time: *order.PaidAt, Valid: true}
	}

	_, err = tx.ExecContext(ctx, query,
		order.ID, order.UserID, order.CartID, itemsJSON, addressJSON,
		order.TaxPrice, order.ShippingPrice, order.TotalOrderPrice,
		order.PaymentMethod, paymentIntentID, order.IsPaid, paidAt, order.Status, order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

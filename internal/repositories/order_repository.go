package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	// UpdateOrderStatus moves the order from order.Status to next only if
	// the stored status is still order.Status. Moving to cancelled puts the
	// reserved stock back in the same transaction.
	UpdateOrderStatus(ctx context.Context, order *models.Order, next models.OrderStatus, at time.Time) error
	// MarkOrderPaid reports false when the order was already paid.
	MarkOrderPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	// HasPaidOrder reports whether the user has a paid order, optionally one
	// that contains productID.
	HasPaidOrder(ctx context.Context, userID uuid.UUID, productID *uuid.UUID) (bool, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, cart_id, items, shipping_address, tax_price, shipping_price, total_order_price,
		payment_method, payment_intent_id, is_paid, paid_at, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var (
		itemsJSON       []byte
		addressJSON     []byte
		paymentIntentID sql.NullString
		paidAt          sql.NullTime
	)

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.CartID,
		&itemsJSON,
		&addressJSON,
		&order.TaxPrice,
		&order.ShippingPrice,
		&order.TotalOrderPrice,
		&order.PaymentMethod,
		&paymentIntentID,
		&order.IsPaid,
		&paidAt,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
		}
	}

	order.PaymentIntentID = paymentIntentID.String

	if paidAt.Valid {
		order.PaidAt = &paidAt.Time
	}

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error) {
	return r.listOrders(ctx,
		`SELECT COUNT(*) FROM orders`,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		nil, page, size)
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	return r.listOrders(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		[]any{userID}, page, size)
}

func (r *orderRepository) listOrders(ctx context.Context, countQuery, query string, filter []any, page, size int) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, countQuery, filter...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size
	args := append(append([]any{}, filter...), size, offset)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order, next models.OrderStatus, at time.Time) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	result, err := tx.ExecContext(dbCtx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		next, at, order.ID, order.Status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		var exists bool

		if err := tx.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, order.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order existence: %w", err)
		}

		if !exists {
			return ErrNotFound
		}

		return ErrVersionConflict
	}

	if next == models.OrderStatusCancelled {
		if err := restock(dbCtx, tx, order.Reservations()); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order status: %w", err)
	}

	order.Status = next
	order.UpdatedAt = at

	return nil
}

// restock returns reserved units to the catalog. Products deleted since the
// order was placed are skipped.
func restock(ctx context.Context, tx *sql.Tx, reservations []models.StockReservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids, quantities := reservationArrays(reservations)

	query := `
		UPDATE products AS p
		SET stock_quantity = p.stock_quantity + d.qty,
			units_sold = GREATEST(p.units_sold - d.qty, 0),
			updated_at = NOW()
		FROM unnest($1::uuid[], $2::int[]) AS d(id, qty)
		WHERE p.id = d.id
	`

	if _, err := tx.ExecContext(ctx, query, pq.Array(ids), pq.Array(quantities)); err != nil {
		return fmt.Errorf("failed to restock products: %w", err)
	}

	return nil
}

func reservationArrays(reservations []models.StockReservation) ([]string, []int64) {
	ids := make([]string, 0, len(reservations))
	quantities := make([]int64, 0, len(reservations))

	for _, res := range reservations {
		ids = append(ids, res.ProductID.String())
		quantities = append(quantities, int64(res.Quantity))
	}

	return ids, quantities
}

func (r *orderRepository) MarkOrderPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE orders SET is_paid = TRUE, paid_at = $1, updated_at = $1 WHERE id = $2 AND is_paid = FALSE`,
		paidAt, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows > 0 {
		return true, nil
	}

	var exists bool

	if err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}

	if !exists {
		return false, ErrNotFound
	}

	return false, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *orderRepository) HasPaidOrder(ctx context.Context, userID uuid.UUID, productID *uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		hasPaid bool
		err     error
	)

	if productID == nil {
		err = r.DB.QueryRowContext(dbCtx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE user_id = $1 AND is_paid = TRUE)`,
			userID).Scan(&hasPaid)
	} else {
		// jsonb containment matches any line of the snapshot with this product
		filter := fmt.Sprintf(`[{"product_id":%q}]`, productID.String())

		err = r.DB.QueryRowContext(dbCtx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE user_id = $1 AND is_paid = TRUE AND items @> $2::jsonb)`,
			userID, filter).Scan(&hasPaid)
	}

	if err != nil {
		return false, fmt.Errorf("failed to check paid orders: %w", err)
	}

	return hasPaid, nil
}

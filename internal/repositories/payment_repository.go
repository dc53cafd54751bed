package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error)
	// UpdatePaymentStatus keeps the stored order id when orderID is nil.
	UpdatePaymentStatus(ctx context.Context, intentID string, status models.PaymentStatus, orderID *uuid.UUID) error
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	// MarkEventProcessed is a no-op for an event id already recorded.
	MarkEventProcessed(ctx context.Context, eventID, eventType string, at time.Time) error
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, payment_intent_id, user_id, cart_id, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	_, err := r.DB.ExecContext(dbCtx, query, payment.ID, payment.PaymentIntentID, payment.UserID,
		payment.CartID, payment.Amount, payment.Currency, payment.Status, payment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, payment_intent_id, user_id, cart_id, order_id, amount, currency, status, created_at, updated_at
		FROM payments
		WHERE payment_intent_id = $1
	`

	payment := &models.Payment{}

	var orderID uuid.NullUUID

	err := r.DB.QueryRowContext(dbCtx, query, intentID).Scan(
		&payment.ID,
		&payment.PaymentIntentID,
		&payment.UserID,
		&payment.CartID,
		&orderID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if orderID.Valid {
		payment.OrderID = &orderID.UUID
	}

	return payment, nil
}

func (r *paymentRepository) UpdatePaymentStatus(ctx context.Context, intentID string, status models.PaymentStatus, orderID *uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var nullOrderID uuid.NullUUID
	if orderID != nil {
		nullOrderID = uuid.NullUUID{UUID: *orderID, Valid: true}
	}

	query := `
		UPDATE payments
		SET status = $1, order_id = COALESCE($2, order_id), updated_at = NOW()
		WHERE payment_intent_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, nullOrderID, intentID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *paymentRepository) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var processed bool

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT EXISTS(SELECT 1 FROM processed_webhook_events WHERE event_id = $1)`, eventID).Scan(&processed)
	if err != nil {
		return false, fmt.Errorf("failed to check provider event: %w", err)
	}

	return processed, nil
}

func (r *paymentRepository) MarkEventProcessed(ctx context.Context, eventID, eventType string, at time.Time) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx,
		`INSERT INTO processed_webhook_events (event_id, event_type, processed_at) VALUES ($1, $2, $3)
		ON CONFLICT (event_id) DO NOTHING`,
		eventID, eventType, at)
	if err != nil {
		return fmt.Errorf("failed to record provider event: %w", err)
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// UpdateCart writes the cart only if its stored version still equals
	// cart.Version, then bumps cart.Version.
	UpdateCart(ctx context.Context, cart *models.Cart) error
	DeleteCartByUserID(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

const cartColumns = `id, user_id, items, total_cart_price, total_price_after_discount, version, created_at, updated_at`

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, items, total_cart_price, total_price_after_discount, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, $6, $7)
	`

	_, err = r.DB.ExecContext(dbCtx, query, cart.ID, cart.UserID, itemsJSON,
		cart.TotalCartPrice, cart.TotalPriceAfterDiscount, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to create cart: %w", err)
	}

	cart.Version = 1

	return nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE user_id = $1`

	return r.getCart(ctx, query, userID)
}

func (r *cartRepository) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE id = $1`

	return r.getCart(ctx, query, id)
}

func (r *cartRepository) getCart(ctx context.Context, query string, arg uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, arg).Scan(
		&cart.ID,
		&cart.UserID,
		&itemsJSON,
		&cart.TotalCartPrice,
		&cart.TotalPriceAfterDiscount,
		&cart.Version,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	return cart, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET items = $1, total_cart_price = $2, total_price_after_discount = $3, version = version + 1, updated_at = $4
		WHERE id = $5 AND version = $6
	`

	result, err := r.DB.ExecContext(dbCtx, query, itemsJSON, cart.TotalCartPrice,
		cart.TotalPriceAfterDiscount, cart.UpdatedAt, cart.ID, cart.Version)
	if err != nil {
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		var exists bool

		err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM carts WHERE id = $1)`, cart.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check cart existence: %w", err)
		}

		if !exists {
			return ErrNotFound
		}

		return ErrVersionConflict
	}

	cart.Version++

	return nil
}

func (r *cartRepository) DeleteCartByUserID(ctx context.Context, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}

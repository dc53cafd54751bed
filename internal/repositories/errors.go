package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("record already exists")
	ErrVersionConflict   = errors.New("record was modified concurrently")
	ErrCartChanged       = errors.New("cart changed or was removed during checkout")
	ErrEventProcessed    = errors.New("provider event already processed")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockError names the product whose stock could not cover a reservation,
// either because the stock ran out or the product no longer exists.
type StockError struct {
	ProductID uuid.UUID
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

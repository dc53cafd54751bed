package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
)

// cartWriter runs read-modify-write cycles against a user's cart, re-reading
// and re-applying the change whenever a concurrent writer won the race.
type cartWriter struct {
	repo       repository.CartRepository
	maxRetries int
	now        func() time.Time
}

func newCartWriter(repo repository.CartRepository, maxRetries int, now func() time.Time) *cartWriter {
	if maxRetries < 1 {
		maxRetries = 1
	}

	if now == nil {
		now = time.Now
	}

	return &cartWriter{repo: repo, maxRetries: maxRetries, now: now}
}

// mutate applies change to the stored cart of userID. With create set, a
// missing cart is created holding the change instead of failing NotFound.
func (w *cartWriter) mutate(ctx context.Context, userID uuid.UUID, create bool, change func(*models.Cart) error) (*models.Cart, error) {
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		cart, err := w.repo.GetCartByUserID(ctx, userID)

		switch {
		case err == nil:
			if err := change(cart); err != nil {
				return nil, err
			}

			cart.UpdatedAt = w.now()
			err = w.repo.UpdateCart(ctx, cart)

		case errors.Is(err, repository.ErrNotFound) && create:
			cart = models.NewCart(userID, w.now())
			if err := change(cart); err != nil {
				return nil, err
			}

			err = w.repo.CreateCart(ctx, cart)

		case errors.Is(err, repository.ErrNotFound):
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)

		default:
			return nil, storeError(err, "Failed to load cart")
		}

		switch {
		case err == nil:
			return cart, nil
		case errors.Is(err, repository.ErrVersionConflict), errors.Is(err, repository.ErrDuplicate):
			slog.Debug("Cart write lost a race, retrying",
				slog.String("userId", userID.String()),
				slog.Int("attempt", attempt))
		case errors.Is(err, repository.ErrNotFound):
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		default:
			return nil, storeError(err, "Failed to update cart")
		}
	}

	slog.Warn("Cart write retries exhausted",
		slog.String("userId", userID.String()),
		slog.Int("attempts", w.maxRetries))

	return nil, appErrors.ConflictError("Cart was modified concurrently, please retry")
}

package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name       string
		err        *appErrors.AppError
		wantCode   string
		wantStatus int
	}{
		{"Validation", appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{"NotFound", appErrors.NotFoundError("missing"), appErrors.ErrCodeNotFound, http.StatusNotFound},
		{"Forbidden", appErrors.ForbiddenError("no"), appErrors.ErrCodeForbidden, http.StatusForbidden},
		{"Conflict", appErrors.ConflictError("race"), appErrors.ErrCodeConflict, http.StatusConflict},
		{"InvalidCoupon", appErrors.InvalidCouponError("expired"), appErrors.ErrCodeInvalidCoupon, http.StatusBadRequest},
		{"SignatureInvalid", appErrors.SignatureInvalidError("forged"), appErrors.ErrCodeSignatureInvalid, http.StatusBadRequest},
		{"ServiceUnavailable", appErrors.ServiceUnavailableError("slow"), appErrors.ErrCodeServiceUnavailable, http.StatusServiceUnavailable},
		{"ProductNotFound", appErrors.ProductNotFoundError(productID), appErrors.ErrCodeNotFound, http.StatusNotFound},
		{"InsufficientStock", appErrors.InsufficientStockError(productID), appErrors.ErrCodeInsufficientStock, http.StatusConflict},
		{"InvalidTransition", appErrors.InvalidTransitionError("delivered", "pending"), appErrors.ErrCodeInvalidTransition, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
		})
	}
}

func TestProductNotFoundError_NamesProduct(t *testing.T) {
	productID := uuid.New()

	err := appErrors.ProductNotFoundError(productID)

	assert.Contains(t, err.Error(), productID.String())
	assert.Equal(t, productID.String(), err.Detail)
}

func TestIsAppError(t *testing.T) {
	t.Run("Wrapped AppError is found", func(t *testing.T) {
		cause := errors.New("connection reset")
		wrapped := fmt.Errorf("service: %w", appErrors.DatabaseError("Failed to load cart").WithError(cause))

		appErr, ok := appErrors.IsAppError(wrapped)

		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, wrapped, cause)
	})

	t.Run("Plain error is not an AppError", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(errors.New("plain"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
	})
}

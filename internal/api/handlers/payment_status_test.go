package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHasPaid(t *testing.T) {
	t.Run("Success - Any Paid Order", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewPaymentStatusHandler(orderService)

		orderService.On("PaymentStatusByEmail", mock.Anything, "ada@example.com", (*uuid.UUID)(nil)).
			Return(&models.PaymentStatusResponse{Email: "ada@example.com", HasPaid: true}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment-status?email=ada@example.com", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		h.HasPaid().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.PaymentStatusResponse
		decodeData(t, rr, &got)
		assert.True(t, got.HasPaid)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewPaymentStatusHandler(orderService)

		orderService.On("PaymentStatusByEmail", mock.Anything, "nobody@example.com", (*uuid.UUID)(nil)).
			Return(nil, appErrors.NotFoundError("No user found with this email")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment-status?email=nobody@example.com", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		h.HasPaid().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHasPaidForProduct(t *testing.T) {
	t.Run("Success - Product Filter", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewPaymentStatusHandler(orderService)
		productID := uuid.New()

		orderService.On("PaymentStatusByEmail", mock.Anything, "ada@example.com", &productID).
			Return(&models.PaymentStatusResponse{Email: "ada@example.com", ProductID: &productID}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet,
			"/api/v1/payment-status/products/"+productID.String()+"?email=ada@example.com",
			nil, map[string]string{"productId": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		h.HasPaidForProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Invalid Product ID", func(t *testing.T) {
		// Arrange
		h := handlers.NewPaymentStatusHandler(mocks.NewOrderService(t))
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment-status/products/xyz?email=a@b.c",
			nil, map[string]string{"productId": "xyz"})
		rr := httptest.NewRecorder()

		// Act
		h.HasPaidForProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

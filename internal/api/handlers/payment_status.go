package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/google/uuid"
)

type PaymentStatusHandler struct {
	orderService service.OrderService
}

func NewPaymentStatusHandler(orderService service.OrderService) *PaymentStatusHandler {
	return &PaymentStatusHandler{orderService: orderService}
}

// HasPaid godoc
//	@Summary		Check whether a customer has a paid order
//	@Tags			Payment status
//	@Produce		json
//	@Param			email	query		string							true	"Customer email"
//	@Success		200		{object}	models.PaymentStatusResponse	"Payment status"
//	@Failure		400		{object}	response.ErrorResponse			"Missing email"
//	@Failure		404		{object}	response.ErrorResponse			"No user with this email"
//	@Failure		429		{object}	response.ErrorResponse			"Too many requests"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Router			/payment-status [get]
func (h *PaymentStatusHandler) HasPaid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.lookup(w, r, nil)
	}
}

// HasPaidForProduct godoc
//	@Summary		Check whether a customer has paid for a product
//	@Tags			Payment status
//	@Produce		json
//	@Param			productId	path		string							true	"Product ID (UUID)"	Format(uuid)
//	@Param			email		query		string							true	"Customer email"
//	@Success		200			{object}	models.PaymentStatusResponse	"Payment status"
//	@Failure		400			{object}	response.ErrorResponse			"Missing email or invalid product ID"
//	@Failure		404			{object}	response.ErrorResponse			"No user with this email"
//	@Failure		429			{object}	response.ErrorResponse			"Too many requests"
//	@Failure		500			{object}	response.ErrorResponse			"Internal server error"
//	@Router			/payment-status/products/{productId} [get]
func (h *PaymentStatusHandler) HasPaidForProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)

			return
		}

		h.lookup(w, r, &productID)
	}
}

func (h *PaymentStatusHandler) lookup(w http.ResponseWriter, r *http.Request, productID *uuid.UUID) {
	logger := middleware.LoggerFromContext(r.Context())

	status, err := h.orderService.PaymentStatusByEmail(r.Context(), r.URL.Query().Get("email"), productID)
	if err != nil {
		logger.Warn("Payment status lookup failed", slog.String("error", err.Error()))
		response.Error(w, err)

		return
	}

	response.Success(w, http.StatusOK, status)
}

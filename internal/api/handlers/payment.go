package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

// maxWebhookBytes matches the payload cap Stripe documents for events.
const maxWebhookBytes = 65536

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentIntent godoc
//	@Summary		Start a card payment for a cart
//	@Description	Creates a Stripe PaymentIntent for the cart's checkout total. The order is created when Stripe confirms the charge.
//	@Tags			Payments
//	@Produce		json
//	@Param			cartId	path		string							true	"Cart ID (UUID)"	Format(uuid)
//	@Success		201		{object}	models.PaymentIntentResponse	"Intent with client secret"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid cart ID or empty cart"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Cart belongs to another user"
//	@Failure		404		{object}	response.ErrorResponse			"Cart not found"
//	@Failure		500		{object}	response.ErrorResponse			"Payment provider or internal error"
//	@Security		BearerAuth
//	@Router			/payments/intents/{cartId} [post]
func (h *PaymentHandler) CreatePaymentIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "create payment intent")
		if !ok {
			return
		}

		cartID, err := utils.ParseID(r, "cartId")
		if err != nil {
			response.Error(w, err)

			return
		}

		intent, err := h.paymentService.CreatePaymentIntent(r.Context(), claims.UserID, cartID)
		if err != nil {
			logger.Error("Failed to create payment intent",
				slog.String("cartId", cartID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payment intent created",
			slog.String("cartId", cartID.String()),
			slog.String("paymentIntentId", intent.Payment.PaymentIntentID))
		response.Success(w, http.StatusCreated, intent)
	}
}

// HandleStripeWebhook godoc
//	@Summary		Receive Stripe events
//	@Description	Verifies the Stripe-Signature header and reconciles the event exactly once. A non 2xx answer makes Stripe redeliver.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string					true	"Stripe webhook signature"
//	@Success		200					{object}	models.WebhookResult	"Event acknowledged"
//	@Failure		400					{object}	response.ErrorResponse	"Unreadable body or invalid signature"
//	@Failure		500					{object}	response.ErrorResponse	"Processing failed, Stripe retries"
//	@Failure		503					{object}	response.ErrorResponse	"Temporarily unable to process, Stripe retries"
//	@Router			/payments/webhook [post]
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
		if err != nil {
			logger.Warn("Failed to read webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body").WithError(err))

			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Webhook without signature header")
			response.Error(w, errors.SignatureInvalidError("Missing Stripe-Signature header"))

			return
		}

		result, err := h.paymentService.ProcessWebhook(r.Context(), payload, signature)
		if err != nil {
			logger.Error("Failed to process webhook", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

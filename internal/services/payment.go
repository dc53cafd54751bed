package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	stripeClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, userID, cartID uuid.UUID) (*models.PaymentIntentResponse, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (*models.WebhookResult, error)
}

type paymentService struct {
	cartRepo    repository.CartRepository
	paymentRepo repository.PaymentRepository
	client      stripeClient.Client
	checkout    CheckoutService
	pricing     PricingPolicy
	currency    string
	recorder    metrics.Recorder
	now         func() time.Time
}

func NewPaymentService(
	repos *repository.Repositories,
	client stripeClient.Client,
	checkout CheckoutService,
	pricing PricingPolicy,
	currency string,
	recorder metrics.Recorder,
) PaymentService {
	return &paymentService{
		cartRepo:    repos.Cart,
		paymentRepo: repos.Payment,
		client:      client,
		checkout:    checkout,
		pricing:     pricing,
		currency:    currency,
		recorder:    recorder,
		now:         time.Now,
	}
}

// CreatePaymentIntent charges the cart's checkout total. The intent carries
// the cart and user ids so the confirming charge can be traced back.
func (s *paymentService) CreatePaymentIntent(ctx context.Context, userID, cartID uuid.UUID) (*models.PaymentIntentResponse, error) {
	cart, err := s.cartRepo.GetCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		}

		return nil, storeError(err, "Failed to load cart")
	}

	if cart.UserID != userID {
		return nil, appErrors.ForbiddenError("Cart does not belong to this user")
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.ValidationError("Cannot pay for an empty cart")
	}

	_, _, total := orderTotals(s.pricing, cart.EffectivePrice())

	cents := total.Shift(2).Round(0).IntPart()
	if cents <= 0 {
		return nil, appErrors.ValidationError("Cart total must be greater than zero")
	}

	intent, err := s.client.CreatePaymentIntent(ctx, cents, s.currency, map[string]string{
		models.MetadataCartID: cart.ID.String(),
		models.MetadataUserID: userID.String(),
	})
	if err != nil {
		if utils.IsTimeout(err) {
			return nil, appErrors.ServiceUnavailableError("Payment provider timed out").WithError(err)
		}

		return nil, appErrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	now := s.now().UTC()
	payment := &models.Payment{
		ID:              uuid.New(),
		PaymentIntentID: intent.ID,
		UserID:          userID,
		CartID:          cart.ID,
		Amount:          total,
		Currency:        s.currency,
		Status:          models.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, storeError(err, "Failed to record payment")
	}

	return &models.PaymentIntentResponse{Payment: payment, ClientSecret: intent.ClientSecret}, nil
}

// chargeRef identifies the checkout a charge pays for.
type chargeRef struct {
	cartID   uuid.UUID
	userID   uuid.UUID
	intentID string
}

// ProcessWebhook reconciles a provider event with orders exactly once. It
// returns an error only when the provider should redeliver the event.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*models.WebhookResult, error) {
	event, err := s.client.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return nil, appErrors.SignatureInvalidError("Webhook signature verification failed").WithError(err)
	}

	eventType := string(event.Type)
	logger := slog.With(slog.String("eventId", event.ID), slog.String("eventType", eventType))
	received := &models.WebhookResult{Received: true}

	processed, err := s.paymentRepo.IsEventProcessed(ctx, event.ID)
	if err != nil {
		return nil, s.webhookFault(eventType, storeError(err, "Failed to check webhook event"))
	}

	if processed {
		logger.Info("Duplicate webhook delivery acknowledged")
		s.recorder.WebhookEvent(eventType, metrics.OutcomeDuplicate)

		return received, nil
	}

	if eventType != models.EventChargeSucceeded {
		return s.acknowledge(ctx, &event, metrics.OutcomeIgnored, received)
	}

	var charge stripe.Charge
	if event.Data == nil || json.Unmarshal(event.Data.Raw, &charge) != nil {
		logger.Warn("Malformed charge payload acknowledged")

		return s.acknowledge(ctx, &event, metrics.OutcomeIgnored, received)
	}

	ref, ok, err := s.resolveCharge(ctx, &charge)
	if err != nil {
		return nil, s.webhookFault(eventType, err)
	}

	if !ok {
		logger.Warn("Charge does not reference a known cart", slog.String("chargeId", charge.ID))

		return s.acknowledge(ctx, &event, metrics.OutcomeIgnored, received)
	}

	logger = logger.With(slog.String("cartId", ref.cartID.String()))

	if _, err := s.cartRepo.GetCartByID(ctx, ref.cartID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.cartGone(ctx, logger, &event, received)
		}

		return nil, s.webhookFault(eventType, storeError(err, "Failed to load cart"))
	}

	order, err := s.checkout.CreateCardOrder(ctx, &models.CardCheckout{
		EventID:         event.ID,
		EventType:       eventType,
		CartID:          ref.cartID,
		UserID:          ref.userID,
		Amount:          decimal.New(charge.Amount, -2),
		PaidAt:          time.Unix(event.Created, 0).UTC(),
		PaymentIntentID: ref.intentID,
	})

	switch {
	case err == nil:
		s.markPayment(ctx, logger, ref.intentID, models.PaymentStatusPaid, &order.ID)
		s.recorder.WebhookEvent(eventType, metrics.OutcomeCreated)
		logger.Info("Card order created", slog.String("orderId", order.ID.String()))

		return &models.WebhookResult{Received: true, OrderID: &order.ID}, nil

	case errors.Is(err, repository.ErrEventProcessed):
		logger.Info("Event committed by a concurrent delivery")
		s.recorder.WebhookEvent(eventType, metrics.OutcomeDuplicate)

		return received, nil

	case errors.Is(err, ErrCartGone):
		return s.cartGone(ctx, logger, &event, received)

	case isBusinessRejection(err):
		logger.Warn("Checkout rejected the charge, refunding", slog.String("error", err.Error()))

		if _, refundErr := s.client.RefundCharge(ctx, charge.ID); refundErr != nil {
			return nil, s.webhookFault(eventType,
				appErrors.ThirdPartyError("Failed to refund rejected charge").WithError(refundErr))
		}

		s.markPayment(ctx, logger, ref.intentID, models.PaymentStatusRefunded, nil)

		return s.acknowledge(ctx, &event, metrics.OutcomeRefunded, received)

	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode < 500 {
			err = appErrors.ServiceUnavailableError("Checkout could not complete, retry later").WithError(err)
		}

		return nil, s.webhookFault(eventType, err)
	}
}

// cartGone settles a charge whose cart disappeared before the order was
// committed. A concurrent delivery of the same event may have converted it,
// so the ledger is read again before the event is recorded. The charge is
// never refunded here.
func (s *paymentService) cartGone(ctx context.Context, logger *slog.Logger, event *stripeClient.Event, received *models.WebhookResult) (*models.WebhookResult, error) {
	eventType := string(event.Type)

	processed, err := s.paymentRepo.IsEventProcessed(ctx, event.ID)
	if err != nil {
		return nil, s.webhookFault(eventType, storeError(err, "Failed to check webhook event"))
	}

	if processed {
		logger.Info("Event committed by a concurrent delivery")
		s.recorder.WebhookEvent(eventType, metrics.OutcomeDuplicate)

		return received, nil
	}

	logger.Info("Cart already converted or removed, skipping order creation")

	return s.acknowledge(ctx, event, metrics.OutcomeIgnored, received)
}

// resolveCharge reads the checkout reference from the charge metadata and
// falls back to the payment recorded for its intent.
func (s *paymentService) resolveCharge(ctx context.Context, charge *stripe.Charge) (chargeRef, bool, error) {
	ref := chargeRef{}
	if charge.PaymentIntent != nil {
		ref.intentID = charge.PaymentIntent.ID
	}

	cartID, cartErr := uuid.Parse(charge.Metadata[models.MetadataCartID])
	userID, userErr := uuid.Parse(charge.Metadata[models.MetadataUserID])

	if cartErr == nil && userErr == nil {
		ref.cartID, ref.userID = cartID, userID

		return ref, true, nil
	}

	if ref.intentID == "" {
		return ref, false, nil
	}

	payment, err := s.paymentRepo.GetPaymentByIntentID(ctx, ref.intentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ref, false, nil
		}

		return ref, false, storeError(err, "Failed to load payment")
	}

	ref.cartID, ref.userID = payment.CartID, payment.UserID

	return ref, true, nil
}

func (s *paymentService) acknowledge(ctx context.Context, event *stripeClient.Event, outcome string, result *models.WebhookResult) (*models.WebhookResult, error) {
	if err := s.paymentRepo.MarkEventProcessed(ctx, event.ID, string(event.Type), s.now().UTC()); err != nil {
		return nil, s.webhookFault(string(event.Type), storeError(err, "Failed to record webhook event"))
	}

	s.recorder.WebhookEvent(string(event.Type), outcome)

	return result, nil
}

// markPayment is best effort: the order state is already settled.
func (s *paymentService) markPayment(ctx context.Context, logger *slog.Logger, intentID string, status models.PaymentStatus, orderID *uuid.UUID) {
	if intentID == "" {
		return
	}

	err := s.paymentRepo.UpdatePaymentStatus(ctx, intentID, status, orderID)

	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		logger.Debug("No payment recorded for intent", slog.String("intentId", intentID))
	default:
		logger.Warn("Failed to update payment status",
			slog.String("intentId", intentID),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
	}
}

func (s *paymentService) webhookFault(eventType string, err error) error {
	s.recorder.WebhookEvent(eventType, metrics.OutcomeFailed)

	return err
}

// isBusinessRejection reports checkout failures that a redelivery of the same
// event cannot fix. A missing cart is not one of them, see cartGone.
func isBusinessRejection(err error) bool {
	return hasCode(err,
		appErrors.ErrCodeNotFound,
		appErrors.ErrCodeForbidden,
		appErrors.ErrCodeValidation,
		appErrors.ErrCodeInsufficientStock,
		appErrors.ErrCodeDuplicateEntry,
	)
}

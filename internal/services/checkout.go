package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/events"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName = "github.com/aaravmahajanofficial/storefront-checkout/internal/services"

	// productLookupLimit bounds the concurrent catalog reads of one checkout.
	productLookupLimit = 8

	// SideEffectTimeout bounds the event publish and confirmation email that
	// follow a committed order, so a slow provider cannot hold up the caller.
	SideEffectTimeout = 3 * time.Second
)

type CheckoutService interface {
	CreateCashOrder(ctx context.Context, userID, cartID uuid.UUID, req *models.CreateCashOrderRequest) (*models.Order, error)
	// CreateCardOrder turns the cart of a confirmed charge into a paid order.
	// The provider event is recorded in the same transaction, so a replay
	// fails with an error wrapping repository.ErrEventProcessed.
	CreateCardOrder(ctx context.Context, req *models.CardCheckout) (*models.Order, error)
}

type checkoutService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	checkoutRepo repository.CheckoutRepository
	pricing      PricingPolicy
	notifier     NotificationService
	publisher    events.Publisher
	recorder     metrics.Recorder
	tracer       trace.Tracer
	now          func() time.Time
}

func NewCheckoutService(
	repos *repository.Repositories,
	pricing PricingPolicy,
	notifier NotificationService,
	publisher events.Publisher,
	recorder metrics.Recorder,
) CheckoutService {
	return &checkoutService{
		cartRepo:     repos.Cart,
		productRepo:  repos.Product,
		checkoutRepo: repos.Checkout,
		pricing:      pricing,
		notifier:     notifier,
		publisher:    publisher,
		recorder:     recorder,
		tracer:       otel.Tracer(tracerName),
		now:          time.Now,
	}
}

// checkoutPlan is the order a cart would become, computed without writes.
type checkoutPlan struct {
	cart  *models.Cart
	order *models.Order
}

func (s *checkoutService) CreateCashOrder(ctx context.Context, userID, cartID uuid.UUID, req *models.CreateCashOrderRequest) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.CreateCashOrder",
		trace.WithAttributes(attribute.String("cart.id", cartID.String())))
	defer span.End()

	order, err := s.checkout(ctx, userID, cartID, func(order *models.Order) *models.CheckoutCommit {
		address := sanitizeAddress(req.ShippingAddress)

		order.PaymentMethod = models.PaymentMethodCash
		order.ShippingAddress = &address

		return &models.CheckoutCommit{}
	})

	return s.finish(ctx, span, models.PaymentMethodCash, order, err)
}

func (s *checkoutService) CreateCardOrder(ctx context.Context, req *models.CardCheckout) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.CreateCardOrder",
		trace.WithAttributes(
			attribute.String("cart.id", req.CartID.String()),
			attribute.String("payment.intent_id", req.PaymentIntentID),
		))
	defer span.End()

	order, err := s.checkout(ctx, req.UserID, req.CartID, func(order *models.Order) *models.CheckoutCommit {
		paidAt := req.PaidAt

		order.PaymentMethod = models.PaymentMethodCard
		order.PaymentIntentID = req.PaymentIntentID
		order.TotalOrderPrice = req.Amount
		order.IsPaid = true
		order.PaidAt = &paidAt

		return &models.CheckoutCommit{EventID: req.EventID, EventType: req.EventType}
	})

	return s.finish(ctx, span, models.PaymentMethodCard, order, err)
}

// checkout plans the order, lets complete fill in the payment specific
// fields and commits the result.
func (s *checkoutService) checkout(
	ctx context.Context,
	userID, cartID uuid.UUID,
	complete func(order *models.Order) *models.CheckoutCommit,
) (*models.Order, error) {
	plan, err := s.plan(ctx, userID, cartID)
	if err != nil {
		return nil, err
	}

	commit := complete(plan.order)
	commit.Order = plan.order
	commit.Reservations = plan.order.Reservations()
	commit.CartID = plan.cart.ID
	commit.CartVersion = plan.cart.Version

	if err := s.checkoutRepo.CommitCheckout(ctx, commit); err != nil {
		return nil, s.commitError(err)
	}

	return plan.order, nil
}

func (s *checkoutService) plan(ctx context.Context, userID, cartID uuid.UUID) (*checkoutPlan, error) {
	cart, err := s.cartRepo.GetCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(fmt.Errorf("%w: %w", ErrCartGone, err))
		}

		return nil, storeError(err, "Failed to load cart")
	}

	if cart.UserID != userID {
		return nil, appErrors.ForbiddenError("Cart does not belong to this user")
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.ValidationError("Cannot create an order from an empty cart")
	}

	if err := s.resolveProducts(ctx, cart.Items); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	subtotal := cart.EffectivePrice()
	tax, shipping, total := orderTotals(s.pricing, subtotal)

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          cart.UserID,
		CartID:          cart.ID,
		Items:           models.SnapshotItems(cart.Items),
		TaxPrice:        tax,
		ShippingPrice:   shipping,
		TotalOrderPrice: total,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return &checkoutPlan{cart: cart, order: order}, nil
}

// resolveProducts fails with NotFound naming the first product the catalog
// no longer has.
func (s *checkoutService) resolveProducts(ctx context.Context, items []models.CartItem) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(productLookupLimit)

	seen := make(map[uuid.UUID]struct{}, len(items))

	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}

		seen[item.ProductID] = struct{}{}
		productID := item.ProductID

		g.Go(func() error {
			if _, err := s.productRepo.GetProductByID(gctx, productID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return appErrors.ProductNotFoundError(productID).WithError(err)
				}

				return storeError(err, "Failed to load product")
			}

			return nil
		})
	}

	return g.Wait()
}

func (s *checkoutService) commitError(err error) error {
	var stockErr *repository.StockError

	switch {
	case errors.As(err, &stockErr):
		s.recorder.StockConflict()

		return appErrors.InsufficientStockError(stockErr.ProductID).WithError(err)
	case errors.Is(err, repository.ErrEventProcessed):
		return appErrors.ConflictError("Payment event already processed").WithError(err)
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.DuplicateEntryError("An order already exists for this cart").WithError(err)
	case errors.Is(err, repository.ErrCartChanged):
		return appErrors.ConflictError("Cart changed during checkout, please retry").WithError(err)
	default:
		return storeError(err, "Failed to create order")
	}
}

// finish records the outcome and runs the best effort side effects of a
// committed order.
func (s *checkoutService) finish(ctx context.Context, span trace.Span, method models.PaymentMethod, order *models.Order, err error) (*models.Order, error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.recorder.CheckoutOrder(string(method), checkoutOutcome(err))

		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", order.ID.String()))
	s.recorder.CheckoutOrder(string(method), metrics.OutcomeCreated)

	logger := slog.With(slog.String("orderId", order.ID.String()), slog.String("paymentMethod", string(method)))
	logger.Info("Order created", slog.String("total", order.TotalOrderPrice.StringFixed(2)))

	sideCtx, cancel := context.WithTimeout(ctx, SideEffectTimeout)
	defer cancel()

	if err := s.publisher.PublishOrderEvent(sideCtx, models.NewOrderEvent(models.OrderEventCreated, order, s.now().UTC())); err != nil {
		logger.Warn("Failed to publish order event", slog.String("error", err.Error()))
	}

	if err := s.notifier.SendOrderConfirmation(sideCtx, order); err != nil {
		logger.Warn("Failed to send order confirmation", slog.String("error", err.Error()))
	}

	return order, nil
}

func checkoutOutcome(err error) string {
	if utils.IsTimeout(err) || hasCode(err, appErrors.ErrCodeDatabaseError, appErrors.ErrCodeServiceUnavailable) {
		return metrics.OutcomeFailed
	}

	return metrics.OutcomeRejected
}

func sanitizeAddress(address models.ShippingAddress) models.ShippingAddress {
	return models.ShippingAddress{
		Details:    utils.SanitizeString(address.Details),
		Phone:      utils.SanitizeString(address.Phone),
		City:       utils.SanitizeString(address.City),
		PostalCode: utils.SanitizeString(address.PostalCode),
	}
}

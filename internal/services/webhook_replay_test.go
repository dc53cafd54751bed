package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/events"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/repositories/memory"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	stripeMocks "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// interleavingCarts runs between once, right after the first cart lookup
// returns from the store.
type interleavingCarts struct {
	repository.CartRepository

	fired   atomic.Bool
	between func()
}

func (c *interleavingCarts) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	cart, err := c.CartRepository.GetCartByID(ctx, id)

	if c.between != nil && c.fired.CompareAndSwap(false, true) {
		c.between()
	}

	return cart, err
}

type webhookStore struct {
	repos     *repository.Repositories
	carts     *interleavingCarts
	client    *stripeMocks.Client
	payments  service.PaymentService
	productID uuid.UUID
}

// newWebhookStore prepares a cart holding one unit of a product with three in
// stock, a pending payment for it and a provider that signs every delivery
// as the same charge.succeeded event.
func newWebhookStore(t *testing.T) webhookStore {
	t.Helper()

	store := memory.NewStore()
	productID := uuid.New()
	store.PutProduct(models.Product{ID: productID, Name: "Desk lamp", Price: decimal.NewFromInt(30), StockQuantity: 3})

	repos := store.Repositories()
	carts := &interleavingCarts{CartRepository: repos.Cart}
	repos.Cart = carts

	cart := models.NewCart(uuid.New(), time.Now())
	cart.AddProduct(productID, "", decimal.NewFromInt(30))
	require.NoError(t, repos.Cart.CreateCart(t.Context(), cart))
	require.NoError(t, repos.Payment.CreatePayment(t.Context(), &models.Payment{
		ID:              uuid.New(),
		PaymentIntentID: "pi_1",
		UserID:          cart.UserID,
		CartID:          cart.ID,
		Amount:          decimal.RequireFromString("104.00"),
		Currency:        "usd",
		Status:          models.PaymentStatusPending,
		CreatedAt:       time.Now(),
	}))

	client := stripeMocks.NewClient(t)
	client.On("VerifyWebhookSignature", []byte(testPayload), testSignature).
		Return(chargeEvent(t, cartMetadata(cart.ID, cart.UserID)), nil)

	checkout := service.NewCheckoutService(repos, service.FlatRatePolicy{}, nopNotifier{}, events.NopPublisher{}, metrics.NopRecorder{})
	payments := service.NewPaymentService(repos, client, checkout, service.FlatRatePolicy{}, "usd", metrics.NopRecorder{})

	return webhookStore{repos: repos, carts: carts, client: client, payments: payments, productID: productID}
}

func (w webhookStore) deliver(ctx context.Context) (*models.WebhookResult, error) {
	return w.payments.ProcessWebhook(ctx, []byte(testPayload), testSignature)
}

// assertSingleOrder checks that exactly one paid order exists, stock moved
// once and the charge was kept.
func (w webhookStore) assertSingleOrder(t *testing.T) {
	t.Helper()

	orders, total, err := w.repos.Order.ListOrders(t.Context(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.True(t, orders[0].IsPaid)
	assert.Equal(t, "pi_1", orders[0].PaymentIntentID)

	product, err := w.repos.Product.GetProductByID(t.Context(), w.productID)
	require.NoError(t, err)
	assert.Equal(t, 2, product.StockQuantity)
	assert.Equal(t, 1, product.UnitsSold)

	payment, err := w.repos.Payment.GetPaymentByIntentID(t.Context(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	require.NotNil(t, payment.OrderID)
	assert.Equal(t, orders[0].ID, *payment.OrderID)

	w.client.AssertNotCalled(t, "RefundCharge", mock.Anything, mock.Anything)
}

func TestPaymentService_ProcessWebhook_SameEventTwice(t *testing.T) {
	t.Run("Redelivery after the first completes", func(t *testing.T) {
		// Arrange
		w := newWebhookStore(t)

		// Act
		first, firstErr := w.deliver(t.Context())
		second, secondErr := w.deliver(t.Context())

		// Assert
		require.NoError(t, firstErr)
		require.NotNil(t, first.OrderID)
		require.NoError(t, secondErr)
		assert.True(t, second.Received)
		assert.Nil(t, second.OrderID)
		w.assertSingleOrder(t)
	})

	t.Run("Redelivery racing the first past the cart lookup", func(t *testing.T) {
		// Arrange
		w := newWebhookStore(t)

		var (
			inner    *models.WebhookResult
			innerErr error
		)

		w.carts.between = func() {
			inner, innerErr = w.deliver(context.Background())
		}

		// Act
		outer, outerErr := w.deliver(t.Context())

		// Assert
		require.NoError(t, innerErr)
		require.NotNil(t, inner.OrderID)
		require.NoError(t, outerErr)
		assert.True(t, outer.Received)
		assert.Nil(t, outer.OrderID)
		w.assertSingleOrder(t)
	})
}

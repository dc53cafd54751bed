package stripe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

var ErrWebhookSecretMissing = errors.New("webhook secret not configured")

// defines the methods that any of payment client must implement.
type Client interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error)
	RefundCharge(ctx context.Context, chargeID string) (*stripe.Refund, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	Ping(ctx context.Context) error
}

// stripeClient is the implementation of the Client interface. Outbound
// calls share one circuit breaker so a Stripe outage fails fast.
type stripeClient struct {
	api           *client.API
	webhookSecret string
	breaker       *gobreaker.CircuitBreaker[any]
}

func NewStripeClient(apiKey, webhookSecret string) Client {
	return newStripeClient(client.New(apiKey, nil), webhookSecret)
}

// NewStripeClientWithBackend routes every API call through backend.
func NewStripeClientWithBackend(apiKey, webhookSecret string, backend stripe.Backend) Client {
	backends := &stripe.Backends{API: backend, Connect: backend, Uploads: backend}

	return newStripeClient(client.New(apiKey, backends), webhookSecret)
}

func newStripeClient(api *client.API, webhookSecret string) *stripeClient {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "stripe",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: isSuccessful,
	})

	return &stripeClient{api: api, webhookSecret: webhookSecret, breaker: breaker}
}

// Declined cards and bad requests are answers, not outages.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode > 0 && stripeErr.HTTPStatusCode < 500
	}

	return false
}

// PaymentIntent == "planned payment" or order waiting for payment.
func (s *stripeClient) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	result, err := s.breaker.Execute(func() (any, error) {
		return s.api.PaymentIntents.New(params)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return result.(*stripe.PaymentIntent), nil
}

// RefundCharge returns the full charged amount.
func (s *stripeClient) RefundCharge(ctx context.Context, chargeID string) (*stripe.Refund, error) {
	params := &stripe.RefundParams{
		Charge: stripe.String(chargeID),
	}
	params.Context = ctx

	result, err := s.breaker.Execute(func() (any, error) {
		return s.api.Refunds.New(params)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to refund charge: %w", err)
	}

	return result.(*stripe.Refund), nil
}

// VerifyWebhookSignature implements Client.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, ErrWebhookSecretMissing
	}

	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// Ping reads the account balance, the cheapest authenticated call.
func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	_, err := s.breaker.Execute(func() (any, error) {
		return s.api.Balance.Get(params)
	})
	if err != nil {
		return fmt.Errorf("stripe is unreachable: %w", err)
	}

	return nil
}

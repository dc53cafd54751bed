package stripe_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	paystripe "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

const testSecret = "whsec_test_secret"

func newTestClient(t *testing.T, handler http.HandlerFunc) paystripe.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	return paystripe.NewStripeClientWithBackend("sk_test_123", testSecret, backend)
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := paystripe.NewStripeClient("sk_test_123", testSecret)
	payload := []byte(`{"id":"evt_1","object":"event","type":"charge.succeeded","api_version":"2020-08-27","data":{"object":{"id":"ch_1","object":"charge"}}}`)

	t.Run("Valid signature", func(t *testing.T) {
		// Arrange
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: testSecret})

		// Act
		event, err := client.VerifyWebhookSignature(signed.Payload, signed.Header)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, stripe.EventType("charge.succeeded"), event.Type)
	})

	t.Run("Forged signature", func(t *testing.T) {
		// Arrange
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: "whsec_other"})

		// Act
		_, err := client.VerifyWebhookSignature(signed.Payload, signed.Header)

		// Assert
		require.Error(t, err)
	})

	t.Run("Missing secret", func(t *testing.T) {
		// Arrange
		unconfigured := paystripe.NewStripeClient("sk_test_123", "")

		// Act
		_, err := unconfigured.VerifyWebhookSignature(payload, "t=1,v1=abc")

		// Assert
		require.ErrorIs(t, err, paystripe.ErrWebhookSecretMissing)
	})
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("Success carries metadata", func(t *testing.T) {
		// Arrange
		var form string

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payment_intents", r.URL.Path)

			body, _ := io.ReadAll(r.Body)
			form = string(body)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "pi_123", "object": "payment_intent", "amount": 2500, "currency": "usd", "client_secret": "pi_123_secret",
			})
		})

		// Act
		intent, err := client.CreatePaymentIntent(t.Context(), 2500, "usd", map[string]string{"cartId": "c-1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, "pi_123_secret", intent.ClientSecret)
		assert.Contains(t, form, "amount=2500")
		assert.Contains(t, form, "metadata[cartId]=c-1")
	})

	t.Run("Card error is returned", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
		})

		// Act
		intent, err := client.CreatePaymentIntent(t.Context(), 2500, "usd", nil)

		// Assert
		require.Error(t, err)
		assert.Nil(t, intent)
	})
}

func TestRefundCharge(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_1","object":"refund","status":"succeeded"}`))
	})

	// Act
	refund, err := client.RefundCharge(t.Context(), "ch_1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "re_1", refund.ID)
}

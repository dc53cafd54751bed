package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	apiKey    = "SG.test-api-key"
	fromEmail = "orders@example.com"
	fromName  = "Storefront"
)

type mailPayload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// newServer records the decoded payload of the last request and answers with status.
func newServer(t *testing.T, status int, captured *mailPayload) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, captured))

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestEmailService_Send(t *testing.T) {
	t.Run("Success with html and copies", func(t *testing.T) {
		// Arrange
		var payload mailPayload
		server := newServer(t, http.StatusAccepted, &payload)
		service := sendgrid.NewEmailService(apiKey, server.URL, fromEmail, fromName)

		req := &models.EmailNotificationRequest{
			To:          "shopper@example.com",
			CC:          []string{"cc@example.com"},
			BCC:         []string{"audit@example.com"},
			Subject:     "Order confirmed",
			Content:     "Thanks for your order",
			HTMLContent: "<p>Thanks for your order</p>",
		}

		// Act
		err := service.Send(t.Context(), req)

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Personalizations, 1)

		p := payload.Personalizations[0]
		assert.Equal(t, "shopper@example.com", p.To[0]["email"])
		assert.Equal(t, "cc@example.com", p.Cc[0]["email"])
		assert.Equal(t, "audit@example.com", p.Bcc[0]["email"])
		assert.Equal(t, "Order confirmed", p.Subject)
		assert.Equal(t, fromEmail, payload.From["email"])
		assert.Equal(t, fromName, payload.From["name"])
		require.Len(t, payload.Content, 2)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
		assert.Equal(t, "text/html", payload.Content[1].Type)
	})

	t.Run("Plain text only", func(t *testing.T) {
		// Arrange
		var payload mailPayload
		server := newServer(t, http.StatusAccepted, &payload)
		service := sendgrid.NewEmailService(apiKey, server.URL, fromEmail, fromName)

		// Act
		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "a@example.com", Subject: "s", Content: "c"})

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Content, 1)
		assert.Equal(t, "c", payload.Content[0].Value)
	})

	t.Run("Provider rejects the message", func(t *testing.T) {
		// Arrange
		var payload mailPayload
		server := newServer(t, http.StatusBadRequest, &payload)
		service := sendgrid.NewEmailService(apiKey, server.URL, fromEmail, fromName)

		// Act
		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "bad@example.com", Subject: "s", Content: "c"})

		// Assert
		require.ErrorContains(t, err, "status code: 400")
	})

	t.Run("Network error", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		service := sendgrid.NewEmailService(apiKey, server.URL, fromEmail, fromName)

		// Act
		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "a@example.com", Subject: "s", Content: "c"})

		// Assert
		require.ErrorContains(t, err, "failed to send email")
	})

	t.Run("Not configured", func(t *testing.T) {
		// Arrange
		service := sendgrid.NewEmailService("", "", fromEmail, fromName)

		// Act
		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "a@example.com", Subject: "s", Content: "c"})

		// Assert
		require.ErrorIs(t, err, sendgrid.ErrNotConfigured)
	})
}

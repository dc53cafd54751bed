package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

const (
	EventChargeSucceeded = "charge.succeeded"

	MetadataCartID = "cartId"
	MetadataUserID = "userId"
)

// Payment links a provider payment intent to the cart it was created for.
type Payment struct {
	ID              uuid.UUID       `json:"id"`
	PaymentIntentID string          `json:"payment_intent_id"`
	UserID          uuid.UUID       `json:"user_id"`
	CartID          uuid.UUID       `json:"cart_id"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          PaymentStatus   `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type PaymentIntentResponse struct {
	Payment      *Payment `json:"payment"`
	ClientSecret string   `json:"client_secret"`
}

type WebhookResult struct {
	Received bool       `json:"received"`
	OrderID  *uuid.UUID `json:"order_id,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
	OrderEventPaid          OrderEventType = "order.paid"
	OrderEventDeleted       OrderEventType = "order.deleted"
)

type OrderEvent struct {
	Type          OrderEventType  `json:"type"`
	OrderID       uuid.UUID       `json:"order_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Status        OrderStatus     `json:"status,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	Total         decimal.Decimal `json:"total"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func NewOrderEvent(eventType OrderEventType, order *Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Total:         order.TotalOrderPrice,
		OccurredAt:    at,
	}
}

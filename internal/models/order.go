package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

func (s OrderStatus) IsTerminal() bool {
	next, ok := orderTransitions[s]

	return ok && len(next) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type ShippingAddress struct {
	Details    string `json:"details" validate:"required,max=512"`
	Phone      string `json:"phone" validate:"omitempty,max=32"`
	City       string `json:"city" validate:"omitempty,max=128"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=16"`
}

// OrderItem is a value copy of a cart line taken at checkout.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Color     string          `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"`
	CartID          uuid.UUID        `json:"cart_id"`
	Items           []OrderItem      `json:"items"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	TaxPrice        decimal.Decimal  `json:"tax_price"`
	ShippingPrice   decimal.Decimal  `json:"shipping_price"`
	TotalOrderPrice decimal.Decimal  `json:"total_order_price"`
	PaymentMethod   PaymentMethod    `json:"payment_method"`
	PaymentIntentID string           `json:"payment_intent_id,omitempty"`
	IsPaid          bool             `json:"is_paid"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	Status          OrderStatus      `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func SnapshotItems(items []CartItem) []OrderItem {
	snapshot := make([]OrderItem, 0, len(items))

	for _, item := range items {
		snapshot = append(snapshot, OrderItem{
			ProductID: item.ProductID,
			Color:     item.Color,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return snapshot
}

// Reservations sums the ordered quantity per product, so two colors of the
// same product reserve stock once.
func (o *Order) Reservations() []StockReservation {
	index := make(map[uuid.UUID]int, len(o.Items))
	reservations := make([]StockReservation, 0, len(o.Items))

	for _, item := range o.Items {
		if i, ok := index[item.ProductID]; ok {
			reservations[i].Quantity += item.Quantity

			continue
		}

		index[item.ProductID] = len(reservations)
		reservations = append(reservations, StockReservation{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return reservations
}

// CheckoutCommit is everything a checkout writes in one atomic unit.
type CheckoutCommit struct {
	Order        *Order
	Reservations []StockReservation
	CartID       uuid.UUID
	CartVersion  int
	// EventID and EventType are set when a provider event triggered the
	// checkout.
	EventID   string
	EventType string
}

type CreateCashOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address" validate:"required"`
}

// CardCheckout carries what a confirmed charge tells us about the order to create.
type CardCheckout struct {
	EventID         string
	EventType       string
	CartID          uuid.UUID
	UserID          uuid.UUID
	Amount          decimal.Decimal
	PaidAt          time.Time
	PaymentIntentID string
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type PaymentStatusResponse struct {
	Email     string     `json:"email"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	HasPaid   bool       `json:"has_paid"`
}

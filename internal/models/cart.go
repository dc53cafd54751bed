package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a line of a cart. UnitPrice is captured when the product is
// first added and is never refreshed from the catalog afterwards.
type CartItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Color     string          `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type Cart struct {
	ID                      uuid.UUID           `json:"id"`
	UserID                  uuid.UUID           `json:"user_id"`
	Items                   []CartItem          `json:"items"`
	TotalCartPrice          decimal.Decimal     `json:"total_cart_price"`
	TotalPriceAfterDiscount decimal.NullDecimal `json:"total_price_after_discount"`
	Version                 int                 `json:"-"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

func NewCart(userID uuid.UUID, now time.Time) *Cart {
	return &Cart{
		ID:             uuid.New(),
		UserID:         userID,
		Items:          []CartItem{},
		TotalCartPrice: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AddProduct increments the line matching productID and color, or appends a
// new line at quantity 1 priced at unitPrice.
func (c *Cart) AddProduct(productID uuid.UUID, color string, unitPrice decimal.Decimal) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Color == color {
			c.Items[i].Quantity++
			c.Recalculate()

			return
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Color:     color,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
	c.Recalculate()
}

// RemoveItem drops the line with the given id. Unknown ids leave the items
// untouched but the totals are still recalculated.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	items := c.Items[:0]

	for _, item := range c.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}

	c.Items = items
	c.Recalculate()
}

// SetQuantity reports false when the cart has no line with itemID.
func (c *Cart) SetQuantity(itemID uuid.UUID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.Recalculate()

			return true
		}
	}

	return false
}

// Recalculate sets TotalCartPrice to the sum of quantity times captured unit
// price and drops any discounted total, which no longer matches the items.
func (c *Cart) Recalculate() {
	total := decimal.Zero

	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	c.TotalCartPrice = total
	c.TotalPriceAfterDiscount = decimal.NullDecimal{}
}

// ApplyDiscount stores the total reduced by percent, rounded to cents.
// TotalCartPrice is left as is.
func (c *Cart) ApplyDiscount(percent decimal.Decimal) decimal.Decimal {
	discount := c.TotalCartPrice.Mul(percent).Div(decimal.NewFromInt(100))
	discounted := c.TotalCartPrice.Sub(discount).Round(2)

	c.TotalPriceAfterDiscount = decimal.NewNullDecimal(discounted)

	return discounted
}

// EffectivePrice is the discounted total when one is in effect.
func (c *Cart) EffectivePrice() decimal.Decimal {
	if c.TotalPriceAfterDiscount.Valid {
		return c.TotalPriceAfterDiscount.Decimal
	}

	return c.TotalCartPrice
}

func (c *Cart) ItemCount() int {
	return len(c.Items)
}

type CartResponse struct {
	NumOfCartItems int   `json:"num_of_cart_items"`
	Cart           *Cart `json:"cart"`
}

func NewCartResponse(cart *Cart) *CartResponse {
	return &CartResponse{NumOfCartItems: cart.ItemCount(), Cart: cart}
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Color     string    `json:"color" validate:"omitempty,max=64"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type ApplyCouponRequest struct {
	CouponName string `json:"coupon_name" validate:"required,max=128"`
}

package service

import (
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PricingPolicy computes the charges checkout adds on top of the cart price.
type PricingPolicy interface {
	Tax(subtotal decimal.Decimal) decimal.Decimal
	Shipping(subtotal decimal.Decimal) decimal.Decimal
}

// FlatRatePolicy charges a percentage tax and a fixed shipping fee.
type FlatRatePolicy struct {
	TaxRatePercent decimal.Decimal
	ShippingPrice  decimal.Decimal
}

func NewFlatRatePolicy(cfg config.Checkout) FlatRatePolicy {
	return FlatRatePolicy{
		TaxRatePercent: decimal.NewFromFloat(cfg.TaxRatePercent),
		ShippingPrice:  decimal.NewFromFloat(cfg.ShippingPrice).Round(2),
	}
}

func (p FlatRatePolicy) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRatePercent).Div(hundred).Round(2)
}

func (p FlatRatePolicy) Shipping(decimal.Decimal) decimal.Decimal {
	return p.ShippingPrice
}

// orderTotals prices subtotal under policy.
func orderTotals(policy PricingPolicy, subtotal decimal.Decimal) (tax, shipping, total decimal.Decimal) {
	tax = policy.Tax(subtotal)
	shipping = policy.Shipping(subtotal)

	return tax, shipping, subtotal.Add(tax).Add(shipping)
}

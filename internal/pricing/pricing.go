// Package pricing derives cart totals from cart contents and an optional coupon.
package pricing

import (
	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/shopspring/decimal"
)

// FlatShipping is charged unless the applied coupon waives shipping.
var FlatShipping = decimal.NewFromInt(15)

var hundred = decimal.NewFromInt(100)

// Totals are exact; round only when formatting for display.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type Calculator struct {
	Shipping decimal.Decimal
}

var Default = Calculator{Shipping: FlatShipping}

func New(shipping decimal.Decimal) Calculator {
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}
	return Calculator{Shipping: shipping}
}

// ComputeTotals uses the default flat shipping charge.
func ComputeTotals(cart []domain.CartItem, coupon *domain.Coupon) Totals {
	return Default.Compute(cart, coupon)
}

// Compute is deterministic for a given (cart, coupon). The discount is not
// capped to the subtotal and the total is not clamped at zero.
func (c Calculator) Compute(cart []domain.CartItem, coupon *domain.Coupon) Totals {
	subtotal := Subtotal(cart)

	discount := decimal.Zero
	shipping := c.Shipping
	if coupon != nil {
		switch coupon.Kind {
		case domain.CouponPercentage:
			discount = subtotal.Mul(coupon.Discount).Div(hundred)
		default:
			discount = coupon.Discount
		}
		if coupon.FreeShipping {
			shipping = decimal.Zero
		}
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
	}
}

func Subtotal(cart []domain.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range cart {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ItemCount sums quantities across the cart.
func ItemCount(cart []domain.CartItem) int {
	n := 0
	for _, item := range cart {
		n += item.Quantity
	}
	return n
}

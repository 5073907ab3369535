package pricing

import (
	"testing"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(id int64, price string, qty int) domain.CartItem {
	return domain.CartItem{
		Product:  domain.Product{ID: id, Name: "p", Price: decimal.RequireFromString(price)},
		Quantity: qty,
	}
}

var (
	welcome10 = &domain.Coupon{Code: "WELCOME10", Discount: decimal.NewFromInt(10), Kind: domain.CouponPercentage}
	freeship  = &domain.Coupon{Code: "FREESHIP", Discount: decimal.NewFromInt(15), Kind: domain.CouponFixed, FreeShipping: true}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_NoCoupon(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(1, "10", 2), item(2, "5.5", 1)}, nil)

	assert.True(t, got.Subtotal.Equal(dec("25.5")), "subtotal %s", got.Subtotal)
	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.Shipping.Equal(dec("15")))
	assert.True(t, got.Total.Equal(dec("40.5")), "total %s", got.Total)
}

func TestComputeTotals_PercentageCoupon(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(1, "100", 1)}, welcome10)

	assert.True(t, got.Discount.Equal(dec("10")), "discount %s", got.Discount)
	assert.True(t, got.Shipping.Equal(dec("15")))
	assert.True(t, got.Total.Equal(dec("105")), "total %s", got.Total)
}

func TestComputeTotals_FreeShippingCoupon(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(1, "25", 2)}, freeship)

	assert.True(t, got.Subtotal.Equal(dec("50")))
	assert.True(t, got.Discount.Equal(dec("15")))
	assert.True(t, got.Shipping.IsZero())
	assert.True(t, got.Total.Equal(dec("35")), "total %s", got.Total)
}

func TestComputeTotals_FixedDiscountIsNotCapped(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(1, "5", 1)}, freeship)

	assert.True(t, got.Discount.Equal(dec("15")))
	assert.True(t, got.Total.Equal(dec("-10")), "total %s", got.Total)
}

func TestComputeTotals_EmptyCartStillShips(t *testing.T) {
	got := ComputeTotals(nil, nil)
	assert.True(t, got.Total.Equal(FlatShipping))
}

func TestComputeTotals_Deterministic(t *testing.T) {
	cart := []domain.CartItem{item(1, "99.99", 3), item(2, "149.99", 1)}
	first := ComputeTotals(cart, welcome10)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.View(), ComputeTotals(cart, welcome10).View())
	}
}

func TestComputeTotals_NoRoundingBeforeDisplay(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(1, "0.333", 3)}, welcome10)

	assert.True(t, got.Subtotal.Equal(dec("0.999")))
	assert.True(t, got.Discount.Equal(dec("0.0999")))
	assert.Equal(t, "0.10", got.View().Discount)
}

func TestCalculator_CustomShipping(t *testing.T) {
	c := New(decimal.NewFromInt(7))
	got := c.Compute([]domain.CartItem{item(1, "10", 1)}, nil)
	assert.True(t, got.Total.Equal(dec("17")))

	assert.True(t, New(decimal.NewFromInt(-1)).Shipping.IsZero())
}

func TestItemCount(t *testing.T) {
	assert.Equal(t, 5, ItemCount([]domain.CartItem{item(1, "1", 2), item(2, "1", 3)}))
	assert.Equal(t, 0, ItemCount(nil))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$105.00", Money(dec("105")))
	assert.Equal(t, "-$10.50", Money(dec("-10.5")))
	assert.Equal(t, "$0.10", Money(dec("0.0999")))
}

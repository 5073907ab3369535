// Package coupon holds the fixed set of redeemable coupon codes.
package coupon

import (
	"errors"
	"sort"
	"strings"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/shopspring/decimal"
)

var ErrInvalidCoupon = errors.New("invalid coupon")

const (
	CodeWelcome10 = "WELCOME10"
	CodeFreeShip  = "FREESHIP"
)

// Registry maps upper-cased codes to coupons.
type Registry map[string]domain.Coupon

var Default = Registry{
	CodeWelcome10: {Code: CodeWelcome10, Discount: decimal.NewFromInt(10), Kind: domain.CouponPercentage},
	CodeFreeShip:  {Code: CodeFreeShip, Discount: decimal.NewFromInt(15), Kind: domain.CouponFixed, FreeShipping: true},
}

// Normalize trims and upper-cases a user-entered code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r Registry) Lookup(code string) (domain.Coupon, error) {
	c, ok := r[Normalize(code)]
	if !ok {
		return domain.Coupon{}, ErrInvalidCoupon
	}
	return c, nil
}

// All returns the registry entries ordered by code.
func (r Registry) All() []domain.Coupon {
	out := make([]domain.Coupon, 0, len(r))
	for _, c := range r {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

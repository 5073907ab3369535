package domain

import "github.com/shopspring/decimal"

type CouponKind string

const (
	CouponPercentage CouponKind = "percentage"
	CouponFixed      CouponKind = "fixed"
)

type Coupon struct {
	Code         string          `json:"code"`
	Discount     decimal.Decimal `json:"discount"`
	Kind         CouponKind      `json:"type"`
	FreeShipping bool            `json:"freeShipping"`
}

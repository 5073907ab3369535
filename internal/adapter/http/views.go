package http

import (
	"time"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/pricing"
	"github.com/aq2208/gstore-api/internal/receipt"
	"github.com/aq2208/gstore-api/internal/store"
)

type lineView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type couponView struct {
	Code         string `json:"code"`
	Type         string `json:"type"`
	Discount     string `json:"discount"`
	FreeShipping bool   `json:"freeShipping"`
}

type cartView struct {
	Items     []lineView   `json:"items"`
	ItemCount int          `json:"itemCount"`
	Coupon    *couponView  `json:"coupon"`
	Totals    pricing.View `json:"totals"`
}

type receiptView struct {
	OrderNumber       string                `json:"orderNumber"`
	Date              time.Time             `json:"date"`
	Items             []lineView            `json:"items"`
	ItemCount         int                   `json:"itemCount"`
	Coupon            *couponView           `json:"coupon,omitempty"`
	Totals            pricing.View          `json:"totals"`
	CustomerInfo      domain.Customer       `json:"customerInfo"`
	PaymentMethod     receipt.PaymentMethod `json:"paymentMethod"`
	Status            domain.OrderStatus    `json:"status"`
	EstimatedDelivery string                `json:"estimatedDelivery"`
}

func linesOf(items []domain.CartItem) []lineView {
	out := make([]lineView, 0, len(items))
	for _, it := range items {
		out = append(out, lineView{
			ID:        it.ID,
			Name:      it.Name,
			Image:     it.Image,
			Price:     pricing.Amount(it.Price),
			Quantity:  it.Quantity,
			LineTotal: pricing.Amount(it.LineTotal()),
		})
	}
	return out
}

func couponOf(c *domain.Coupon) *couponView {
	if c == nil {
		return nil
	}
	return &couponView{
		Code:         c.Code,
		Type:         string(c.Kind),
		Discount:     pricing.Amount(c.Discount),
		FreeShipping: c.FreeShipping,
	}
}

func newCartView(st store.State, calc pricing.Calculator) cartView {
	return cartView{
		Items:     linesOf(st.Cart),
		ItemCount: pricing.ItemCount(st.Cart),
		Coupon:    couponOf(st.AppliedCoupon),
		Totals:    calc.Compute(st.Cart, st.AppliedCoupon).View(),
	}
}

func newReceiptView(r *receipt.Receipt) receiptView {
	return receiptView{
		OrderNumber:       r.OrderNumber,
		Date:              r.PlacedAt,
		Items:             linesOf(r.Items),
		ItemCount:         r.ItemCount(),
		Coupon:            couponOf(r.Coupon),
		Totals:            r.Totals.View(),
		CustomerInfo:      r.Customer,
		PaymentMethod:     r.PaymentMethod,
		Status:            r.Status,
		EstimatedDelivery: r.EstimatedDelivery.Format(time.DateOnly),
	}
}

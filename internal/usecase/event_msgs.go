package usecase

import (
	"time"

	"github.com/aq2208/gstore-api/internal/pricing"
	"github.com/aq2208/gstore-api/internal/receipt"
)

// Published after every completed checkout.
type ReceiptIssuedMsg struct {
	OrderNumber string        `json:"orderNumber"`
	IssuedAt    time.Time     `json:"issuedAt"`
	Email       string        `json:"email"`
	Status      string        `json:"status"`
	Coupon      string        `json:"coupon,omitempty"`
	Lines       []ReceiptLine `json:"lines"`
	Subtotal    string        `json:"subtotal"`
	Discount    string        `json:"discount"`
	Shipping    string        `json:"shipping"`
	Total       string        `json:"total"`
}

type ReceiptLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

func NewReceiptIssuedMsg(r *receipt.Receipt) ReceiptIssuedMsg {
	v := r.Totals.View()
	msg := ReceiptIssuedMsg{
		OrderNumber: r.OrderNumber,
		IssuedAt:    r.PlacedAt,
		Email:       r.Customer.Email,
		Status:      string(r.Status),
		Subtotal:    v.Subtotal,
		Discount:    v.Discount,
		Shipping:    v.Shipping,
		Total:       v.Total,
	}
	if r.Coupon != nil {
		msg.Coupon = r.Coupon.Code
	}
	for _, it := range r.Items {
		msg.Lines = append(msg.Lines, ReceiptLine{
			ProductID: it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     pricing.Amount(it.Price),
		})
	}
	return msg
}

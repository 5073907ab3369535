package receipt

import (
	"fmt"
	"strings"

	"github.com/aq2208/gstore-api/internal/pricing"
)

const width = 44

// Format renders a printable plain-text receipt.
func Format(r *Receipt) string {
	var lines []string
	rule := func(ch string) { lines = append(lines, strings.Repeat(ch, width)) }

	rule("═")
	lines = append(lines, "                TECHSTORE RECEIPT")
	rule("═")
	lines = append(lines, fmt.Sprintf("Order:     %s", r.OrderNumber))
	lines = append(lines, fmt.Sprintf("Date:      %s", r.PlacedAt.Format("2006-01-02 15:04")))
	lines = append(lines, fmt.Sprintf("Status:    %s", r.Status))
	lines = append(lines, fmt.Sprintf("Delivery:  %s", r.EstimatedDelivery.Format("Monday, 2006-01-02")))
	rule("─")
	lines = append(lines, fmt.Sprintf("%s <%s>", r.Customer.Name, r.Customer.Email))
	lines = append(lines, fmt.Sprintf("%s, %s %s", r.Customer.Address, r.Customer.City, r.Customer.ZipCode))
	rule("─")

	for _, item := range r.Items {
		lines = append(lines, fmt.Sprintf("%d x %s @ %s = %s",
			item.Quantity, item.Name, pricing.Money(item.Price), pricing.Money(item.LineTotal())))
	}

	rule("─")
	lines = append(lines, fmt.Sprintf("Subtotal (%d items):  %s", r.ItemCount(), pricing.Money(r.Totals.Subtotal)))
	if r.Totals.Discount.IsPositive() {
		code := ""
		if r.Coupon != nil {
			code = " " + r.Coupon.Code
		}
		lines = append(lines, fmt.Sprintf("Discount%s:  -%s", code, pricing.Money(r.Totals.Discount)))
	}
	if r.Totals.Shipping.IsZero() {
		lines = append(lines, "Shipping:  Free")
	} else {
		lines = append(lines, fmt.Sprintf("Shipping:  %s", pricing.Money(r.Totals.Shipping)))
	}
	rule("─")
	lines = append(lines, fmt.Sprintf("TOTAL:     %s", pricing.Money(r.Totals.Total)))
	lines = append(lines, fmt.Sprintf("Payment:   %s %s", r.PaymentMethod.Type, r.PaymentMethod.Masked))
	rule("═")
	lines = append(lines, "       Thank you for your purchase!")
	rule("═")

	return strings.Join(lines, "\n")
}

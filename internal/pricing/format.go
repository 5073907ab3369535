package pricing

import "github.com/shopspring/decimal"

// Money renders d with two decimals and a dollar sign; negative values keep
// the sign in front ("-$5.00").
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Amount is the two-decimal string used in API payloads.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// View is Totals rounded for presentation.
type View struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

func (t Totals) View() View {
	return View{
		Subtotal: Amount(t.Subtotal),
		Discount: Amount(t.Discount),
		Shipping: Amount(t.Shipping),
		Total:    Amount(t.Total),
	}
}

package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

// OrderStatuses is the display set a receipt picks from.
var OrderStatuses = []OrderStatus{StatusProcessing, StatusShipped, StatusDelivered}

var ErrInvalidPrice = errors.New("invalid price")

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

func (p Product) Validate() error {
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price x quantity, unrounded.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Customer is the contact block captured by the checkout form.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// User is the simulated session identity kept under the "user" storage key.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

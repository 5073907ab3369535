// Package receipt turns a frozen checkout snapshot into a purchase receipt.
package receipt

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/pricing"
)

var ErrNoSnapshot = errors.New("no purchase snapshot")

const (
	OrderPrefix       = "TS"
	PaymentCreditCard = "Credit card"
)

// Snapshot is the cart and coupon captured at checkout submission.
type Snapshot struct {
	Items  []domain.CartItem
	Coupon *domain.Coupon
}

// SnapshotOf copies items and coupon so later cart mutations cannot reach it.
func SnapshotOf(items []domain.CartItem, c *domain.Coupon) *Snapshot {
	s := &Snapshot{Items: append([]domain.CartItem(nil), items...)}
	if c != nil {
		cc := *c
		s.Coupon = &cc
	}
	return s
}

type PaymentMethod struct {
	Type   string `json:"type"`
	Masked string `json:"last4"`
}

type Receipt struct {
	OrderNumber       string             `json:"orderNumber"`
	PlacedAt          time.Time          `json:"date"`
	Items             []domain.CartItem  `json:"items"`
	Coupon            *domain.Coupon     `json:"coupon,omitempty"`
	Totals            pricing.Totals     `json:"totals"`
	Customer          domain.Customer    `json:"customerInfo"`
	PaymentMethod     PaymentMethod      `json:"paymentMethod"`
	Status            domain.OrderStatus `json:"status"`
	EstimatedDelivery time.Time          `json:"estimatedDelivery"`
}

// ItemCount is the number of units purchased.
func (r *Receipt) ItemCount() int {
	return pricing.ItemCount(r.Items)
}

type Generator struct {
	mu      sync.Mutex
	Now     func() time.Time
	Rand    *rand.Rand
	Pricing pricing.Calculator
}

// NewGenerator uses the wall clock and a randomly seeded source.
func NewGenerator(calc pricing.Calculator) *Generator {
	return &Generator{
		Now:     time.Now,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Pricing: calc,
	}
}

// Generate builds a receipt from snap. Order numbers, delivery estimates and
// statuses are display artifacts: uniqueness is best-effort only.
func (g *Generator) Generate(snap *Snapshot, customer domain.Customer) (*Receipt, error) {
	if snap == nil || len(snap.Items) == 0 {
		return nil, ErrNoSnapshot
	}
	frozen := SnapshotOf(snap.Items, snap.Coupon)

	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.Now()

	return &Receipt{
		OrderNumber:       g.orderNumber(now),
		PlacedAt:          now,
		Items:             frozen.Items,
		Coupon:            frozen.Coupon,
		Totals:            g.Pricing.Compute(frozen.Items, frozen.Coupon),
		Customer:          withFallbacks(customer),
		PaymentMethod:     PaymentMethod{Type: PaymentCreditCard, Masked: "**** **** **** " + g.digits4()},
		Status:            domain.OrderStatuses[g.Rand.IntN(len(domain.OrderStatuses))],
		EstimatedDelivery: now.AddDate(0, 0, 3+g.Rand.IntN(3)),
	}, nil
}

// orderNumber is TS-YYMMDD-NNNN.
func (g *Generator) orderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", OrderPrefix, now.Format("060102"), g.digits4())
}

func (g *Generator) digits4() string {
	return fmt.Sprintf("%04d", g.Rand.IntN(10000))
}

func withFallbacks(c domain.Customer) domain.Customer {
	fill := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return domain.Customer{
		Name:    fill(c.Name, "Customer"),
		Email:   fill(c.Email, "customer@example.com"),
		Address: fill(c.Address, "Delivery address"),
		City:    fill(c.City, "City"),
		ZipCode: fill(c.ZipCode, "Zip code"),
	}
}

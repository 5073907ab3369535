package receipt

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aq2208/gstore-api/internal/coupon"
	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/pricing"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 7, 14, 30, 0, 0, time.UTC)

func newTestGenerator(seed uint64) *Generator {
	return &Generator{
		Now:     func() time.Time { return fixedNow },
		Rand:    rand.New(rand.NewPCG(seed, seed+1)),
		Pricing: pricing.Default,
	}
}

func items() []domain.CartItem {
	return []domain.CartItem{
		{Product: domain.Product{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("60")}, Quantity: 1},
		{Product: domain.Product{ID: 2, Name: "Mouse", Price: decimal.RequireFromString("20")}, Quantity: 2},
	}
}

func TestGenerate_NoSnapshot(t *testing.T) {
	g := newTestGenerator(1)

	_, err := g.Generate(nil, domain.Customer{})
	assert.ErrorIs(t, err, ErrNoSnapshot)

	_, err = g.Generate(&Snapshot{}, domain.Customer{})
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestGenerate_OrderNumberFormat(t *testing.T) {
	g := newTestGenerator(2)
	re := regexp.MustCompile(`^TS-260307-\d{4}$`)
	for i := 0; i < 50; i++ {
		r, err := g.Generate(SnapshotOf(items(), nil), domain.Customer{})
		require.NoError(t, err)
		assert.Regexp(t, re, r.OrderNumber)
	}
}

func TestGenerate_DeliveryWindowAndStatus(t *testing.T) {
	g := newTestGenerator(3)
	statuses := map[domain.OrderStatus]bool{}
	for i := 0; i < 200; i++ {
		r, err := g.Generate(SnapshotOf(items(), nil), domain.Customer{})
		require.NoError(t, err)

		days := int(r.EstimatedDelivery.Sub(fixedNow).Hours() / 24)
		assert.GreaterOrEqual(t, days, 3)
		assert.LessOrEqual(t, days, 5)
		statuses[r.Status] = true
	}
	assert.Len(t, statuses, 3)
}

func TestGenerate_TotalsMatchPricing(t *testing.T) {
	c, err := coupon.Default.Lookup("WELCOME10")
	require.NoError(t, err)

	r, err := newTestGenerator(4).Generate(SnapshotOf(items(), &c), domain.Customer{})
	require.NoError(t, err)

	want := pricing.ComputeTotals(items(), &c)
	if diff := cmp.Diff(want.View(), r.Totals.View()); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "105.00", r.Totals.View().Total)
	assert.Equal(t, 3, r.ItemCount())
}

func TestGenerate_IndependentOfSourceCart(t *testing.T) {
	cart := items()
	c, _ := coupon.Default.Lookup("FREESHIP")
	snap := SnapshotOf(cart, &c)

	cart[0].Quantity = 99
	c.Code = "CHANGED"

	r, err := newTestGenerator(5).Generate(snap, domain.Customer{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Items[0].Quantity)
	assert.Equal(t, "FREESHIP", r.Coupon.Code)

	snap.Items[1].Quantity = 50
	assert.Equal(t, 2, r.Items[1].Quantity)
}

func TestGenerate_CustomerFallbacks(t *testing.T) {
	r, err := newTestGenerator(6).Generate(SnapshotOf(items(), nil), domain.Customer{Name: "Ana", Email: " "})
	require.NoError(t, err)

	assert.Equal(t, "Ana", r.Customer.Name)
	assert.Equal(t, "customer@example.com", r.Customer.Email)
	assert.Equal(t, "City", r.Customer.City)
}

func TestGenerate_PaymentMask(t *testing.T) {
	r, err := newTestGenerator(7).Generate(SnapshotOf(items(), nil), domain.Customer{})
	require.NoError(t, err)
	assert.Equal(t, PaymentCreditCard, r.PaymentMethod.Type)
	assert.Regexp(t, `^\*{4} \*{4} \*{4} \d{4}$`, r.PaymentMethod.Masked)
}

func TestGenerate_SameSeedSameReceipt(t *testing.T) {
	a, _ := newTestGenerator(8).Generate(SnapshotOf(items(), nil), domain.Customer{})
	b, _ := newTestGenerator(8).Generate(SnapshotOf(items(), nil), domain.Customer{})
	assert.Equal(t, a.OrderNumber, b.OrderNumber)
	assert.Equal(t, a.Status, b.Status)
}

func TestFormat(t *testing.T) {
	c, _ := coupon.Default.Lookup("FREESHIP")
	r, err := newTestGenerator(9).Generate(SnapshotOf(items(), &c), domain.Customer{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	out := Format(r)
	for _, want := range []string{
		r.OrderNumber,
		"1 x Laptop @ $60.00 = $60.00",
		"2 x Mouse @ $20.00 = $40.00",
		"Subtotal (3 items):  $100.00",
		"Discount FREESHIP:  -$15.00",
		"Shipping:  Free",
		"TOTAL:     $85.00",
		"Ana <ana@example.com>",
	} {
		assert.True(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/receipt"
	"github.com/aq2208/gstore-api/internal/store"
)

var (
	ErrDuplicate       = errors.New("duplicate idempotency key")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCustomer = errors.New("invalid customer details")
)

const idemScope = "checkout"

type CheckoutInput struct {
	Customer       domain.Customer
	IdempotencyKey string
}

type CheckoutOutput struct {
	Receipt  *receipt.Receipt
	Replayed bool
}

// CheckoutObserver receives "completed", "replayed" or "failed" per call.
type CheckoutObserver func(result string)

type Checkout struct {
	store   CartStore
	gen     *receipt.Generator
	handoff *Handoff
	idem    IdempotencyStore
	pub     ReceiptPublisher
	delay   time.Duration
	observe CheckoutObserver
	log     *slog.Logger
}

type CheckoutOption func(*Checkout)

func WithPaymentDelay(d time.Duration) CheckoutOption        { return func(c *Checkout) { c.delay = d } }
func WithIdempotency(s IdempotencyStore) CheckoutOption      { return func(c *Checkout) { c.idem = s } }
func WithPublisher(p ReceiptPublisher) CheckoutOption        { return func(c *Checkout) { c.pub = p } }
func WithCheckoutObserver(o CheckoutObserver) CheckoutOption { return func(c *Checkout) { c.observe = o } }
func WithCheckoutLogger(l *slog.Logger) CheckoutOption       { return func(c *Checkout) { c.log = l } }

func NewCheckout(st CartStore, gen *receipt.Generator, handoff *Handoff, opts ...CheckoutOption) *Checkout {
	c := &Checkout{store: st, gen: gen, handoff: handoff}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.New("checkout")
	}
	return c
}

// Execute completes a purchase: it freezes the cart and coupon, waits out the
// simulated payment, clears cart and coupon, and issues the receipt.
func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (out CheckoutOutput, err error) {
	defer func() {
		if uc.observe == nil {
			return
		}
		switch {
		case err != nil:
			uc.observe("failed")
		case out.Replayed:
			uc.observe("replayed")
		default:
			uc.observe("completed")
		}
	}()

	if err := ValidateCustomer(in.Customer); err != nil {
		return CheckoutOutput{}, err
	}

	locked := false
	if in.IdempotencyKey != "" && uc.idem != nil {
		// Fast path: a finished checkout for this key
		if orderNumber, ok, _ := uc.idem.Recall(ctx, idemScope, in.IdempotencyKey); ok {
			if r := uc.handoff.Lookup(orderNumber); r != nil {
				return CheckoutOutput{Receipt: r, Replayed: true}, nil
			}
			return CheckoutOutput{}, ErrDuplicate
		}
	}

	st := uc.store.State()
	if len(st.Cart) == 0 {
		return CheckoutOutput{}, ErrEmptyCart
	}

	if in.IdempotencyKey != "" && uc.idem != nil {
		ok, err := uc.idem.TryLock(ctx, idemScope, in.IdempotencyKey)
		if err != nil {
			return CheckoutOutput{}, fmt.Errorf("idempotency lock: %w", err)
		}
		if !ok {
			return CheckoutOutput{}, ErrDuplicate
		}
		locked = true
	}
	release := func() {
		if locked {
			_ = uc.idem.Release(context.WithoutCancel(ctx), idemScope, in.IdempotencyKey)
		}
	}

	snap := receipt.SnapshotOf(st.Cart, st.AppliedCoupon)

	if err := uc.simulatePayment(ctx); err != nil {
		release()
		return CheckoutOutput{}, err
	}

	settle := store.SettleOrder{Items: snap.Items}
	if snap.Coupon != nil {
		settle.Coupon = snap.Coupon.Code
	}
	if _, err := uc.store.Dispatch(ctx, settle); err != nil {
		release()
		return CheckoutOutput{}, fmt.Errorf("settle cart: %w", err)
	}

	rec, err := uc.gen.Generate(snap, in.Customer)
	if err != nil {
		release()
		return CheckoutOutput{}, err
	}
	uc.handoff.Put(rec)

	if uc.pub != nil {
		if err := uc.pub.PublishReceipt(ctx, NewReceiptIssuedMsg(rec)); err != nil {
			uc.log.Warn("publish receipt", "order", rec.OrderNumber, "err", err)
		}
	}
	if locked {
		_ = uc.idem.Remember(ctx, idemScope, in.IdempotencyKey, rec.OrderNumber)
	}

	uc.log.Info("checkout completed", "order", rec.OrderNumber, "items", rec.ItemCount(), "total", rec.Totals.View().Total)
	return CheckoutOutput{Receipt: rec}, nil
}

// simulatePayment is cosmetic: a fixed pause before the receipt.
func (uc *Checkout) simulatePayment(ctx context.Context) error {
	if uc.delay <= 0 {
		return nil
	}
	t := time.NewTimer(uc.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ValidateCustomer requires every contact field and a parseable email.
func ValidateCustomer(c domain.Customer) error {
	fields := []struct{ name, value string }{
		{"name", c.Name},
		{"email", c.Email},
		{"address", c.Address},
		{"city", c.City},
		{"zipCode", c.ZipCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidCustomer, f.name)
		}
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrInvalidCustomer)
	}
	return nil
}

package store

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/aq2208/gstore-api/internal/entity"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidCart     = errors.New("invalid cart contents")
	ErrUnknownAction   = errors.New("unknown action")
)

// QuantityPolicy decides what UPDATE_QUANTITY and SET_CART do with
// quantities below 1.
type QuantityPolicy int

const (
	// QuantityReject refuses the action and leaves state untouched.
	QuantityReject QuantityPolicy = iota
	// QuantityVerbatim stores whatever the caller sent.
	QuantityVerbatim
)

func ParseQuantityPolicy(s string) (QuantityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return QuantityReject, nil
	case "verbatim":
		return QuantityVerbatim, nil
	}
	return QuantityReject, fmt.Errorf("unknown quantity policy %q", s)
}

func (p QuantityPolicy) String() string {
	if p == QuantityVerbatim {
		return "verbatim"
	}
	return "reject"
}

type CouponLookup interface {
	Lookup(code string) (domain.Coupon, error)
}

// Reducer is the only legal mutation path for State. Reduce never modifies
// its input; on error the returned state is the input unchanged.
type Reducer struct {
	Coupons  CouponLookup
	Quantity QuantityPolicy
}

func NewReducer(coupons CouponLookup, policy QuantityPolicy) Reducer {
	return Reducer{Coupons: coupons, Quantity: policy}
}

func (r Reducer) Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SetProducts:
		s.Products = append([]domain.Product(nil), a.Products...)
		return s, nil

	case AddToCart:
		if err := a.Product.Validate(); err != nil {
			return s, fmt.Errorf("add product %d: %w", a.Product.ID, err)
		}
		cart := append([]domain.CartItem(nil), s.Cart...)
		if i := indexOf(cart, a.Product.ID); i >= 0 {
			cart[i].Quantity++
		} else {
			cart = append(cart, domain.CartItem{Product: a.Product, Quantity: 1})
		}
		s.Cart = cart
		return s, nil

	case RemoveFromCart:
		i := indexOf(s.Cart, a.ID)
		if i < 0 {
			return s, nil
		}
		cart := make([]domain.CartItem, 0, len(s.Cart)-1)
		cart = append(cart, s.Cart[:i]...)
		s.Cart = append(cart, s.Cart[i+1:]...)
		return s, nil

	case UpdateQuantity:
		if a.Quantity < 1 && r.Quantity == QuantityReject {
			return s, fmt.Errorf("update item %d to %d: %w", a.ID, a.Quantity, ErrInvalidQuantity)
		}
		i := indexOf(s.Cart, a.ID)
		if i < 0 {
			return s, nil
		}
		cart := append([]domain.CartItem(nil), s.Cart...)
		cart[i].Quantity = a.Quantity
		s.Cart = cart
		return s, nil

	case ClearCart:
		s.Cart = []domain.CartItem{}
		return s, nil

	case ApplyCoupon:
		if r.Coupons == nil {
			return s, fmt.Errorf("apply coupon %q: no registry configured", a.Code)
		}
		c, err := r.Coupons.Lookup(a.Code)
		if err != nil {
			return s, fmt.Errorf("apply coupon %q: %w", a.Code, err)
		}
		s.AppliedCoupon = &c
		return s, nil

	case RemoveCoupon:
		s.AppliedCoupon = nil
		return s, nil

	case SetCart:
		if err := r.validateCart(a.Items); err != nil {
			return s, err
		}
		s.Cart = append([]domain.CartItem{}, a.Items...)
		return s, nil

	case SettleOrder:
		bought := make(map[int64]int, len(a.Items))
		for _, item := range a.Items {
			bought[item.ID] += item.Quantity
		}
		cart := make([]domain.CartItem, 0, len(s.Cart))
		for _, item := range s.Cart {
			item.Quantity -= bought[item.ID]
			if item.Quantity > 0 {
				cart = append(cart, item)
			}
		}
		s.Cart = cart
		if s.AppliedCoupon != nil && s.AppliedCoupon.Code == a.Coupon {
			s.AppliedCoupon = nil
		}
		return s, nil
	}

	return s, fmt.Errorf("%w: %T", ErrUnknownAction, a)
}

func (r Reducer) validateCart(items []domain.CartItem) error {
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %d", ErrInvalidCart, item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: negative price for product %d", ErrInvalidCart, item.ID)
		}
		if item.Quantity < 1 && r.Quantity == QuantityReject {
			return fmt.Errorf("%w: quantity %d for product %d", ErrInvalidCart, item.Quantity, item.ID)
		}
	}
	return nil
}

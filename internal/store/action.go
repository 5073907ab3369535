package store

import domain "github.com/aq2208/gstore-api/internal/entity"

type ActionKind string

const (
	KindSetProducts    ActionKind = "SET_PRODUCTS"
	KindAddToCart      ActionKind = "ADD_TO_CART"
	KindRemoveFromCart ActionKind = "REMOVE_FROM_CART"
	KindUpdateQuantity ActionKind = "UPDATE_QUANTITY"
	KindClearCart      ActionKind = "CLEAR_CART"
	KindApplyCoupon    ActionKind = "APPLY_COUPON"
	KindRemoveCoupon   ActionKind = "REMOVE_COUPON"
	KindSetCart        ActionKind = "SET_CART"
	KindSettleOrder    ActionKind = "SETTLE_ORDER"
)

// Action is the closed set of commands the reducer accepts.
type Action interface {
	Kind() ActionKind
	touchesCart() bool
}

type SetProducts struct{ Products []domain.Product }

type AddToCart struct{ Product domain.Product }

type RemoveFromCart struct{ ID int64 }

type UpdateQuantity struct {
	ID       int64
	Quantity int
}

type ClearCart struct{}

// ApplyCoupon carries the code as entered; the reducer resolves it.
type ApplyCoupon struct{ Code string }

type RemoveCoupon struct{}

type SetCart struct{ Items []domain.CartItem }

// SettleOrder takes a paid order out of the cart. Each purchased line is
// reduced by the quantity bought and the coupon is dropped only if it is
// still the one the order used.
type SettleOrder struct {
	Items  []domain.CartItem
	Coupon string
}

func (SetProducts) Kind() ActionKind    { return KindSetProducts }
func (AddToCart) Kind() ActionKind      { return KindAddToCart }
func (RemoveFromCart) Kind() ActionKind { return KindRemoveFromCart }
func (UpdateQuantity) Kind() ActionKind { return KindUpdateQuantity }
func (ClearCart) Kind() ActionKind      { return KindClearCart }
func (ApplyCoupon) Kind() ActionKind    { return KindApplyCoupon }
func (RemoveCoupon) Kind() ActionKind   { return KindRemoveCoupon }
func (SetCart) Kind() ActionKind        { return KindSetCart }
func (SettleOrder) Kind() ActionKind    { return KindSettleOrder }

func (SetProducts) touchesCart() bool    { return false }
func (AddToCart) touchesCart() bool      { return true }
func (RemoveFromCart) touchesCart() bool { return true }
func (UpdateQuantity) touchesCart() bool { return true }
func (ClearCart) touchesCart() bool      { return true }
func (ApplyCoupon) touchesCart() bool    { return false }
func (RemoveCoupon) touchesCart() bool   { return false }
func (SetCart) touchesCart() bool        { return true }
func (SettleOrder) touchesCart() bool    { return true }

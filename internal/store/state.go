package store

import domain "github.com/aq2208/gstore-api/internal/entity"

type State struct {
	Products      []domain.Product
	Cart          []domain.CartItem
	AppliedCoupon *domain.Coupon
}

// Clone deep-copies the slices and the coupon so callers cannot reach the
// store's backing arrays.
func (s State) Clone() State {
	out := State{
		Products: append([]domain.Product(nil), s.Products...),
		Cart:     append([]domain.CartItem(nil), s.Cart...),
	}
	if s.AppliedCoupon != nil {
		c := *s.AppliedCoupon
		out.AppliedCoupon = &c
	}
	return out
}

func (s State) Item(id int64) (domain.CartItem, bool) {
	if i := indexOf(s.Cart, id); i >= 0 {
		return s.Cart[i], true
	}
	return domain.CartItem{}, false
}

func indexOf(cart []domain.CartItem, id int64) int {
	for i, item := range cart {
		if item.ID == id {
			return i
		}
	}
	return -1
}

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/shopspring/decimal"
)

var ErrMalformedCart = errors.New("malformed persisted cart")

// persistedItem is the stored JSON shape of one cart line. Required fields
// are pointers so a missing key is distinguishable from a zero value.
type persistedItem struct {
	ID          *int64          `json:"id"`
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category,omitempty"`
	Quantity    *int            `json:"quantity"`
}

// EncodeCart renders items as a JSON array with numeric prices.
func EncodeCart(items []domain.CartItem) ([]byte, error) {
	out := make([]persistedItem, 0, len(items))
	for _, it := range items {
		id, qty := it.ID, it.Quantity
		out = append(out, persistedItem{
			ID:          &id,
			Name:        it.Name,
			Price:       json.RawMessage(it.Price.String()),
			Description: it.Description,
			Image:       it.Image,
			Category:    it.Category,
			Quantity:    &qty,
		})
	}
	return json.Marshal(out)
}

// DecodeCart parses and validates a persisted cart. Any deviation from the
// expected shape rejects the whole payload.
func DecodeCart(raw string, policy QuantityPolicy) ([]domain.CartItem, error) {
	raw = string(bytes.TrimSpace([]byte(raw)))
	var in []persistedItem
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}
	if in == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformedCart)
	}

	items := make([]domain.CartItem, 0, len(in))
	seen := make(map[int64]struct{}, len(in))
	for i, p := range in {
		switch {
		case p.ID == nil || *p.ID <= 0:
			return nil, fmt.Errorf("%w: item %d has no valid id", ErrMalformedCart, i)
		case len(p.Price) == 0 || bytes.Equal(p.Price, []byte("null")):
			return nil, fmt.Errorf("%w: item %d has no price", ErrMalformedCart, i)
		case p.Quantity == nil:
			return nil, fmt.Errorf("%w: item %d has no quantity", ErrMalformedCart, i)
		}
		if _, dup := seen[*p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrMalformedCart, *p.ID)
		}
		seen[*p.ID] = struct{}{}

		price, err := parsePrice(p.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedCart, i, err)
		}
		if *p.Quantity < 1 && policy == QuantityReject {
			return nil, fmt.Errorf("%w: item %d has quantity %d", ErrMalformedCart, i, *p.Quantity)
		}

		items = append(items, domain.CartItem{
			Product: domain.Product{
				ID:          *p.ID,
				Name:        p.Name,
				Price:       price,
				Description: p.Description,
				Image:       p.Image,
				Category:    p.Category,
			},
			Quantity: *p.Quantity,
		})
	}
	return items, nil
}

// parsePrice accepts only a bare non-negative JSON number.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %s", raw)
	}
	n, ok := tok.(json.Number)
	if !ok {
		return decimal.Zero, fmt.Errorf("price %s is not a number", raw)
	}
	price, err := decimal.NewFromString(n.String())
	if err != nil || price.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid price %s", raw)
	}
	return price, nil
}

// Package store owns the storefront state: catalog, cart and applied coupon.
package store

import (
	"context"
	"log/slog"
	"sync"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/storage"
)

// Observer is told about every dispatched action and its outcome.
type Observer func(kind ActionKind, err error)

type Store struct {
	mu      sync.Mutex
	state   State
	reducer Reducer
	ls      storage.LocalStorage
	log     *slog.Logger
	observe Observer
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }
func WithObserver(o Observer) Option   { return func(s *Store) { s.observe = o } }

// New builds the store and restores the persisted cart from ls (nil disables
// persistence). A malformed payload is dropped and the cart starts empty.
func New(ctx context.Context, r Reducer, ls storage.LocalStorage, opts ...Option) *Store {
	s := &Store{
		state:   State{Cart: []domain.CartItem{}},
		reducer: r,
		ls:      ls,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.New("store")
	}
	s.restore(ctx)
	return s
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies a to the current state. Cart actions are written through
// to local storage; a failed write is logged and not retried.
func (s *Store) Dispatch(ctx context.Context, a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Reduce(s.state, a)
	if s.observe != nil {
		s.observe(a.Kind(), err)
	}
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next

	if a.touchesCart() {
		s.persist(ctx)
	}
	return s.state.Clone(), nil
}

func (s *Store) persist(ctx context.Context) {
	if s.ls == nil {
		return
	}
	payload, err := EncodeCart(s.state.Cart)
	if err != nil {
		s.log.Error("encode cart", "err", err)
		return
	}
	if err := s.ls.SetItem(ctx, storage.KeyCart, string(payload)); err != nil {
		s.log.Warn("persist cart", "err", err)
	}
}

func (s *Store) restore(ctx context.Context) {
	if s.ls == nil {
		return
	}
	raw, ok, err := s.ls.GetItem(ctx, storage.KeyCart)
	if err != nil {
		s.log.Warn("read saved cart", "err", err)
		return
	}
	if !ok {
		return
	}

	items, err := DecodeCart(raw, s.reducer.Quantity)
	if err == nil {
		s.state, err = s.reducer.Reduce(s.state, SetCart{Items: items})
	}
	if err != nil {
		s.log.Warn("discarding saved cart", "err", err)
		if rmErr := s.ls.RemoveItem(ctx, storage.KeyCart); rmErr != nil {
			s.log.Warn("remove saved cart", "err", rmErr)
		}
		return
	}
	s.log.Info("cart restored", "items", len(items))
}

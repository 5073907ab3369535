package usecase

import (
	"context"

	"github.com/aq2208/gstore-api/internal/store"
)

// CartStore is the slice of *store.Store the use cases need.
type CartStore interface {
	State() store.State
	Dispatch(ctx context.Context, a store.Action) (store.State, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, msg ReceiptIssuedMsg) error
}

var _ CartStore = (*store.Store)(nil)

package queue

import (
	"context"
	"fmt"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/store"
	"github.com/aq2208/gstore-api/internal/usecase"
)

// CatalogMsg replaces the whole product listing.
type CatalogMsg struct {
	Products []domain.Product `json:"products"`
}

// CatalogSyncHandler feeds catalog updates into the store as SET_PRODUCTS.
type CatalogSyncHandler struct {
	Store usecase.CartStore
}

func NewCatalogSyncHandler(st usecase.CartStore) *CatalogSyncHandler {
	return &CatalogSyncHandler{Store: st}
}

// HandleSync is intended to be used with the JSON adapter (queue.JSONHandler[CatalogMsg]).
func (h *CatalogSyncHandler) HandleSync(ctx context.Context, msg CatalogMsg) error {
	for _, p := range msg.Products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: product %d: %v", ErrPoison, p.ID, err)
		}
	}
	_, err := h.Store.Dispatch(ctx, store.SetProducts{Products: msg.Products})
	return err
}

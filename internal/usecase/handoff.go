package usecase

import (
	"sync"

	"github.com/aq2208/gstore-api/internal/receipt"
)

// Handoff carries the last issued receipt from checkout to the receipt view.
// It lives in memory only and is gone after a restart.
type Handoff struct {
	mu   sync.RWMutex
	last *receipt.Receipt
}

func NewHandoff() *Handoff { return &Handoff{} }

func (h *Handoff) Put(r *receipt.Receipt) {
	h.mu.Lock()
	h.last = r
	h.mu.Unlock()
}

// Current returns the last receipt, or nil when no checkout happened.
func (h *Handoff) Current() *receipt.Receipt {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// Lookup returns the current receipt only if it carries orderNumber.
func (h *Handoff) Lookup(orderNumber string) *receipt.Receipt {
	if r := h.Current(); r != nil && r.OrderNumber == orderNumber {
		return r
	}
	return nil
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/aq2208/gstore-api/internal/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoff(t *testing.T) {
	h := NewHandoff()
	assert.Nil(t, h.Current())

	r := &receipt.Receipt{OrderNumber: "TS-260307-0001"}
	h.Put(r)
	assert.Same(t, r, h.Current())
	assert.Same(t, r, h.Lookup("TS-260307-0001"))
	assert.Nil(t, h.Lookup("TS-260307-0002"))
}

func TestMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryIdempotencyStore(time.Minute)
	now := fixedNow
	s.now = func() time.Time { return now }

	ok, err := s.TryLock(ctx, "checkout", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = s.TryLock(ctx, "checkout", "k")
	assert.False(t, ok)
	ok, _ = s.TryLock(ctx, "other", "k")
	assert.True(t, ok)

	require.NoError(t, s.Release(ctx, "checkout", "k"))
	ok, _ = s.TryLock(ctx, "checkout", "k")
	assert.True(t, ok)

	require.NoError(t, s.Remember(ctx, "checkout", "k", "TS-1"))
	v, ok, err := s.Recall(ctx, "checkout", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "TS-1", v)

	now = now.Add(2 * time.Minute)
	_, ok, _ = s.Recall(ctx, "checkout", "k")
	assert.False(t, ok)
	ok, _ = s.TryLock(ctx, "checkout", "k")
	assert.True(t, ok)
}

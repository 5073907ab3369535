package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisStorage(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	ls := NewRedisStorage(rdb, "gstore:", time.Hour)

	_, ok, err := ls.GetItem(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ls.SetItem(ctx, "cart", `[{"id":1}]`))
	got, err := mr.Get("gstore:ls:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)

	v, ok, err := ls.GetItem(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, ls.RemoveItem(ctx, "cart"))
	assert.False(t, mr.Exists("gstore:ls:cart"))

	require.NoError(t, ls.SetItem(ctx, "user", "{}"))
	mr.FastForward(2 * time.Hour)
	_, ok, err = ls.GetItem(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	s := NewRedisIdempotencyStore(rdb, time.Minute)

	ok, err := s.TryLock(ctx, "checkout", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.TryLock(ctx, "checkout", "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Release(ctx, "checkout", "k"))
	ok, _ = s.TryLock(ctx, "checkout", "k")
	assert.True(t, ok)

	_, ok, err = s.Recall(ctx, "checkout", "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remember(ctx, "checkout", "k", "TS-260307-0042"))
	v, ok, err := s.Recall(ctx, "checkout", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "TS-260307-0042", v)

	mr.FastForward(2 * time.Minute)
	_, ok, _ = s.Recall(ctx, "checkout", "k")
	assert.False(t, ok)
}

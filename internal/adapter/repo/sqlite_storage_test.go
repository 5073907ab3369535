package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aq2208/gstore-api/internal/coupon"
	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*SQLiteStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	db, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStorage(db), path
}

func TestSQLiteStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	ls, _ := openTemp(t)

	_, ok, err := ls.GetItem(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ls.SetItem(ctx, "cart", "[]"))
	require.NoError(t, ls.SetItem(ctx, "cart", `[{"id":1,"price":10,"quantity":2}]`))
	v, ok, err := ls.GetItem(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"price":10,"quantity":2}]`, v)

	require.NoError(t, ls.RemoveItem(ctx, "cart"))
	_, ok, err = ls.GetItem(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, ls.RemoveItem(ctx, "cart"))
}

func TestSQLiteStorage_CartSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	ls, path := openTemp(t)
	r := store.NewReducer(coupon.Default, store.QuantityReject)

	s := store.New(ctx, r, ls, store.WithLogger(logging.Discard()))
	_, err := s.Dispatch(ctx, store.AddToCart{Product: domain.Product{ID: 3, Name: "Watch", Price: decimal.RequireFromString("299.99")}})
	require.NoError(t, err)

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	restored := store.New(ctx, r, NewSQLiteStorage(db), store.WithLogger(logging.Discard()))
	cart := restored.State().Cart
	require.Len(t, cart, 1)
	assert.EqualValues(t, 3, cart[0].ID)
	assert.True(t, cart[0].Price.Equal(decimal.RequireFromString("299.99")))
}

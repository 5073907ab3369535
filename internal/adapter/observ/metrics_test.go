package observ

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aq2208/gstore-api/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStoreObserver(t *testing.T) {
	ok := storeActions.WithLabelValues(string(store.KindAddToCart), "ok")
	bad := storeActions.WithLabelValues(string(store.KindApplyCoupon), "rejected")
	okBefore, badBefore := testutil.ToFloat64(ok), testutil.ToFloat64(bad)

	StoreObserver(store.KindAddToCart, nil)
	StoreObserver(store.KindApplyCoupon, errors.New("invalid coupon"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, badBefore+1, testutil.ToFloat64(bad))
}

func TestCheckoutObserver(t *testing.T) {
	c := checkouts.WithLabelValues("completed")
	before := testutil.ToFloat64(c)

	CheckoutObserver("completed")

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestObserveHTTP(t *testing.T) {
	c := httpRequests.WithLabelValues("GET", "/v1/cart", "OK")
	before := testutil.ToFloat64(c)

	ObserveHTTP("GET", "/v1/cart", http.StatusOK, 3*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

// Package observ holds the process-wide Prometheus collectors.
package observ

import (
	"net/http"
	"time"

	"github.com/aq2208/gstore-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)

	storeActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_actions_total",
			Help: "Dispatched cart store actions by kind and result",
		},
		[]string{"action", "result"},
	)

	checkouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Checkout attempts by result",
		},
		[]string{"result"},
	)
)

func ObserveHTTP(method, path string, status int, took time.Duration) {
	httpRequests.WithLabelValues(method, path, http.StatusText(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(float64(took.Milliseconds()))
}

// StoreObserver counts actions; plug it in with store.WithObserver.
func StoreObserver(kind store.ActionKind, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	storeActions.WithLabelValues(string(kind), result).Inc()
}

// CheckoutObserver counts checkout outcomes; plug it in with usecase.WithCheckoutObserver.
func CheckoutObserver(result string) {
	checkouts.WithLabelValues(result).Inc()
}

// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperations counts store reads and writes.
	// Labels: op (read, write, delete), collection, result (found, missing, corrupt, unavailable, ok, full, failed)
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_store_operations_total",
			Help: "Total key-value store operations by collection and outcome",
		},
		[]string{"op", "collection", "result"},
	)

	// StoreOperationDuration tracks backend latency.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_store_operation_duration_seconds",
			Help:    "Key-value store operation latency in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"op"},
	)

	// StoreValueBytes is the size of the last value written per collection.
	StoreValueBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_store_value_bytes",
			Help: "Encoded size of the last value written per collection",
		},
		[]string{"collection"},
	)

	// AnalyticsDrift counts reconciliation passes that corrected totalMovies.
	AnalyticsDrift = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_analytics_drift_corrections_total",
			Help: "Reconciliation passes that found totalMovies out of sync with the catalog",
		},
	)

	// HTTPRequests counts API requests.
	// Labels: method, route, status
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
)

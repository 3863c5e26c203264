package mealdb

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for upstream requests.
const (
	outcomeOK           = "ok"
	outcomeCacheHit     = "cache_hit"
	outcomeCircuitOpen  = "circuit_open"
	outcomeRateLimited  = "rate_limited"
	outcomeTransportErr = "transport_error"
	outcomeStatusErr    = "status_error"
	outcomeDecodeErr    = "decode_error"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealdb_requests_total",
			Help: "Total number of MealDB lookups by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealdb_request_duration_seconds",
			Help:    "MealDB request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

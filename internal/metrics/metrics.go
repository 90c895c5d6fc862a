// Package metrics exposes Prometheus collectors for the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts handled HTTP requests by route, method, and
	// status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geodir",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"route", "method", "status"},
	)

	// RequestDuration observes request latency by route and method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geodir",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// CacheHits counts cache lookups by outcome.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geodir",
			Name:      "cache_lookups_total",
			Help:      "Total number of cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, CacheHits)
}

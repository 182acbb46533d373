// Package metrics provides Prometheus metrics for calls to the catalog and
// recommendation backends.
//
// Usage:
//
//	// Record a finished upstream call
//	RecordUpstreamRequest("catalog", OutcomeSuccess, 120*time.Millisecond)
//
//	// Record a response dropped because its query was superseded
//	RecordStaleResponse("recommendations")
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for upstream requests
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeDecodeError  = "decode_error"
)

var (
	// UpstreamRequestsTotal counts upstream calls by source and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discover_upstream_requests_total",
			Help: "Total number of requests sent to the catalog and recommendation APIs",
		},
		[]string{"source", "outcome"},
	)

	// UpstreamRequestDuration tracks upstream latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "discover_upstream_request_duration_seconds",
			Help: "Duration of upstream API requests in seconds",
			// AI recommendations routinely take several seconds
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"source"},
	)

	// StaleResponsesTotal counts responses discarded because a newer request superseded them.
	StaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discover_stale_responses_total",
			Help: "Total number of upstream responses discarded as stale",
		},
		[]string{"source"},
	)

	// ViewSessions reports the live view sessions per kind (home, search, overlay).
	ViewSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "discover_view_sessions",
			Help: "Number of live view sessions",
		},
		[]string{"kind"},
	)
)

// RecordUpstreamRequest records one finished upstream call.
func RecordUpstreamRequest(source, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(source, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordStaleResponse records a discarded response.
func RecordStaleResponse(source string) {
	StaleResponsesTotal.WithLabelValues(source).Inc()
}

// SetViewSessions records the number of live sessions of one kind.
func SetViewSessions(kind string, count int) {
	ViewSessions.WithLabelValues(kind).Set(float64(count))
}

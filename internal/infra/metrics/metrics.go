// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrina_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vitrina_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitrina_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Domain Metrics
	TrackingEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrina_tracking_events_total",
			Help: "Tracking events recorded, by type",
		},
		[]string{"type"},
	)

	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrina_chat_messages_total",
			Help: "Chat messages sent, by sender side",
		},
		[]string{"side"},
	)

	AdPlacementsExpiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrina_ad_placements_expired_total",
			Help: "Paid placements handled by the expiry sweeper",
		},
		[]string{"outcome"}, // "renewed", "downgraded"
	)

	// Database Pool Metrics
	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vitrina_db_pool_connections",
			Help: "PostgreSQL pool connections by state",
		},
		[]string{"state"}, // "open", "in_use", "idle"
	)

	DBPoolWaitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitrina_db_pool_waits_total",
			Help: "Connections that had to wait for a free slot",
		},
	)

	DBPoolWaitSeconds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitrina_db_pool_wait_seconds_total",
			Help: "Time spent waiting for a free connection",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAdExpiry counts one expired placement.
func RecordAdExpiry(renewed bool) {
	outcome := "downgraded"
	if renewed {
		outcome = "renewed"
	}
	AdPlacementsExpiredTotal.WithLabelValues(outcome).Inc()
}

// RecordDBPool publishes one pool sample. waits and waited are deltas since the previous sample.
func RecordDBPool(open, inUse, idle int, waits int64, waited time.Duration) {
	DBPoolConnections.WithLabelValues("open").Set(float64(open))
	DBPoolConnections.WithLabelValues("in_use").Set(float64(inUse))
	DBPoolConnections.WithLabelValues("idle").Set(float64(idle))
	if waits > 0 {
		DBPoolWaitsTotal.Add(float64(waits))
		DBPoolWaitSeconds.Add(waited.Seconds())
	}
}

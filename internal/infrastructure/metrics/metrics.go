// Package metrics exposes the Prometheus instruments shared across the
// service. Registration happens at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ledger metrics
	TransactionsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picoin_transactions_appended_total",
		Help: "Total number of ledger transactions appended",
	}, []string{"kind"})
	RewardsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picoin_rewards_issued_total",
		Help: "Total number of rewards issued",
	}, []string{"reward"})
	WithdrawalsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picoin_withdrawals_created_total",
		Help: "Total number of withdrawal records created",
	})
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picoin_rate_limit_rejections_total",
		Help: "Total number of requests rejected by rate limiting",
	}, []string{"scope"})

	// Storage metrics
	PlaintextFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picoin_plaintext_fallbacks_total",
		Help: "Total number of state writes that fell back to plaintext",
	})

	// API metrics
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picoin_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "picoin_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

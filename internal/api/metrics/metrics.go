// Package metrics defines and registers all custom Prometheus metrics for
// the devfolio API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry at init
// time via promauto; the /metrics route is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devfolio"

// AuthAttemptsTotal counts login and register attempts.
// Labels:
//   - operation: "login" or "register"
//   - result: "ok", "invalid_credentials", "conflict" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// TokenRefreshTotal counts refresh-token rotations.
// Label:
//   - result: "ok" or "rejected"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token rotations, by result.",
	},
	[]string{"result"},
)

// PortfoliosCreatedTotal counts newly created portfolios.
// Label:
//   - template: the presentation template chosen at creation ("" → "default")
var PortfoliosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "portfolios_created_total",
		Help:      "Total number of portfolios created, by template.",
	},
	[]string{"template"},
)

// EnhanceRequestsTotal counts content-enhancement requests.
// Label:
//   - result: "ok" or "error"
var EnhanceRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enhance_requests_total",
		Help:      "Total number of portfolio enhancement requests, by result.",
	},
	[]string{"result"},
)

// PublicQueryDuration measures how long public listing and search queries take.
// Label:
//   - kind: "list" or "search"
var PublicQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "public_query_duration_seconds",
		Help:      "Duration of public portfolio listing and search queries.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"kind"},
)

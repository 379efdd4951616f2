package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_gateway_calls_total",
		Help: "Calls to the remote profile service by operation and outcome kind",
	}, []string{"op", "outcome"})

	gatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_gateway_call_duration_seconds",
		Help:    "Round trip time of remote profile service calls",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"op"})

	cartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_cart_mutations_total",
		Help: "Cart mutations applied, by kind (add, edit, delete, clear)",
	}, []string{"kind"})

	forcedLogouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_forced_logouts_total",
		Help: "Sessions ended because the service rejected the token",
	})

	mockAPIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mockapi_requests_total",
		Help: "Requests served by the mock profile service",
	}, []string{"path", "status"})

	mockAPIRateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mockapi_rate_limited_total",
		Help: "Requests refused with 429, by caller scope (account, ip)",
	}, []string{"scope"})
)

// ObserveGatewayCall records one remote call. outcome is "ok" or an error kind.
// Call with time.Now() at the start of the operation.
func ObserveGatewayCall(op, outcome string, start time.Time) {
	gatewayCalls.WithLabelValues(op, outcome).Inc()
	gatewayDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func IncrementCartMutation(kind string) {
	cartMutations.WithLabelValues(kind).Inc()
}

func IncrementForcedLogout() {
	forcedLogouts.Inc()
}

func IncrementMockAPIRequest(path string, status int) {
	mockAPIRequests.WithLabelValues(path, statusClass(status)).Inc()
}

func IncrementMockAPIRateLimited(scope string) {
	mockAPIRateLimited.WithLabelValues(scope).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

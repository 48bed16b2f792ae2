package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal tracks the number of outbound calls to the X API.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twitter_api_requests_total",
			Help: "Total number of X API requests made (by endpoint, method, and status).",
		},
		[]string{"endpoint", "method", "status"},
	)

	// APIRequestDuration measures the duration of outbound X API calls.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "twitter_api_request_duration_seconds",
			Help:    "Duration of X API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"endpoint", "method"},
	)

	// TokenExchangesTotal counts client-credentials exchanges by outcome.
	TokenExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twitter_token_exchanges_total",
			Help: "Number of OAuth2 client-credentials exchanges by result.",
		},
		[]string{"result"},
	)

	// APIErrorsTotal counts API errors surfaced to callers by kind.
	APIErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twitter_api_errors_total",
			Help: "Number of errors returned by the client (by method and kind).",
		},
		[]string{"method", "kind"},
	)
)

// IncAPIRequest increments the X API request counter.
func IncAPIRequest(endpoint, method, status string) {
	APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// IncTokenExchange increments the token exchange counter.
func IncTokenExchange(result string) {
	TokenExchangesTotal.WithLabelValues(result).Inc()
}

// IncAPIError increments the error counter for an API method.
func IncAPIError(method, kind string) {
	APIErrorsTotal.WithLabelValues(method, kind).Inc()
}

// ObserveDuration records elapsed time since start into a HistogramVec or SummaryVec.
func ObserveDuration(v any, start time.Time, labels ...string) {
	duration := time.Since(start).Seconds()
	switch metric := v.(type) {
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labels...).Observe(duration)
	case *prometheus.SummaryVec:
		metric.WithLabelValues(labels...).Observe(duration)
	}
}

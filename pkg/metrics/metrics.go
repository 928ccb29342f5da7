package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Request metrics are keyed by method and numeric status code only. The
	// endpoint path is intentionally omitted from labels to keep cardinality
	// bounded; resource ids would otherwise leak into the label set.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_client_requests_total",
		Help: "Total number of gateway requests that received an HTTP status",
	}, []string{"method", "status"})
	TransportFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_client_transport_failures_total",
		Help: "Total number of gateway requests that failed before a status was received",
	}, []string{"method"})
	RequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_client_request_duration_seconds",
		Help:    "Latency of gateway request exchanges",
		Buckets: prometheus.DefBuckets,
	})

	// Token cache metrics
	TokenCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_client_token_cache_hits_total",
		Help: "Total number of token requests served from the cache without a network call",
	})
	TokenRefreshes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_client_token_refreshes_total",
		Help: "Total number of successful token exchanges against the token endpoint",
	})
	TokenRefreshFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_client_token_refresh_failures_total",
		Help: "Total number of failed token exchanges",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransportFailures)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(TokenCacheHits)
	prometheus.MustRegister(TokenRefreshes)
	prometheus.MustRegister(TokenRefreshFailures)
}

// Handler returns an http.Handler exposing Prometheus metrics for embedders
// that run their own metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Package metrics exposes Prometheus instrumentation for the gateway client:
// request counts and latency per HTTP exchange and the token cache lifecycle
// (hits, refreshes, refresh failures).
package metrics

package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestMetricsExistAndIncrement(t *testing.T) {
	// Use a test label to avoid colliding with other tests
	RequestsTotal.WithLabelValues("GET", "299").Inc()
	if v := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "299")); v < 1 {
		t.Fatalf("expected RequestsTotal >= 1, got %v", v)
	}

	TransportFailures.WithLabelValues("PATCH").Add(2)
	if v := testutil.ToFloat64(TransportFailures.WithLabelValues("PATCH")); v < 2 {
		t.Fatalf("expected TransportFailures >= 2, got %v", v)
	}
}

func TestTokenMetricsExistAndIncrement(t *testing.T) {
	TokenCacheHits.Inc()
	if v := testutil.ToFloat64(TokenCacheHits); v < 1 {
		t.Fatalf("expected TokenCacheHits >= 1, got %v", v)
	}

	TokenRefreshes.Inc()
	if v := testutil.ToFloat64(TokenRefreshes); v < 1 {
		t.Fatalf("expected TokenRefreshes >= 1, got %v", v)
	}

	TokenRefreshFailures.Inc()
	if v := testutil.ToFloat64(TokenRefreshFailures); v < 1 {
		t.Fatalf("expected TokenRefreshFailures >= 1, got %v", v)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	server := httptest.NewServer(Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("metrics endpoint failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 from metrics endpoint, got %d", resp.StatusCode)
	}
}

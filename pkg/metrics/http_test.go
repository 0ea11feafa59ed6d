package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByStatusClass(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/products", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/products", 200, 7*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/checkout/submit", 503, time.Second)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products", "2xx")); got != 2 {
		t.Fatalf("expected 2 successful GETs, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/checkout/submit", "5xx")); got != 1 {
		t.Fatalf("expected 1 failed submit, got %v", got)
	}
}

func TestObserveRequestNilReceiverIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "/", 200, time.Millisecond)
}

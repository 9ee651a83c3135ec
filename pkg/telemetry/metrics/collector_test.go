package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Aparna0112/tts-systems/pkg/config"
)

func enabledConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Path:      "/metrics",
		Namespace: "tts",
		Subsystem: "gateway",
	}
}

func TestNewCollectorDisabled(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: false}, nil)
	if collector != nil {
		t.Fatal("expected nil collector when metrics are disabled")
	}

	// Every record method tolerates the nil receiver.
	collector.RecordDispatch("kokkoro", "success", time.Second)
	collector.RecordFallback("kokkoro")
	collector.RecordProbe("kokkoro", true)

	if collector.Registry() != nil {
		t.Error("expected nil registry from nil collector")
	}
}

func TestRecordDispatch(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(enabledConfig(), registry)

	collector.RecordDispatch("kokkoro", "success", 100*time.Millisecond)
	collector.RecordDispatch("kokkoro", "success", 200*time.Millisecond)
	collector.RecordDispatch("kokkoro", "timeout", time.Second)

	if got := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("kokkoro", "success")); got != 2 {
		t.Errorf("expected 2 successes, got %f", got)
	}
	if got := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("kokkoro", "timeout")); got != 1 {
		t.Errorf("expected 1 timeout, got %f", got)
	}
}

func TestRecordProbeUpdatesGauge(t *testing.T) {
	collector := NewCollector(enabledConfig(), prometheus.NewRegistry())

	collector.RecordProbe("kokkoro", true)
	if got := testutil.ToFloat64(collector.backendHealthy.WithLabelValues("kokkoro")); got != 1 {
		t.Errorf("expected gauge 1, got %f", got)
	}

	collector.RecordProbe("kokkoro", false)
	if got := testutil.ToFloat64(collector.backendHealthy.WithLabelValues("kokkoro")); got != 0 {
		t.Errorf("expected gauge 0 after unhealthy probe, got %f", got)
	}
}

func TestHandlerExposition(t *testing.T) {
	collector := NewCollector(enabledConfig(), prometheus.NewRegistry())
	collector.RecordDispatch("kokkoro", "success", time.Second)
	collector.RecordFallback("kokkoro")

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "tts_gateway_requests_total") {
		t.Errorf("expected requests metric in exposition, got:\n%s", body)
	}
	if !strings.Contains(body, "tts_gateway_stream_fallbacks_total") {
		t.Errorf("expected fallback metric in exposition, got:\n%s", body)
	}
}

func TestNilCollectorHandler(t *testing.T) {
	var collector *Collector

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 from nil collector handler, got %d", rec.Code)
	}
}

package backends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantHealthy bool
	}{
		{"200 is healthy", http.StatusOK, true},
		{"204 is healthy", http.StatusNoContent, true},
		{"404 is unhealthy", http.StatusNotFound, false},
		{"500 is unhealthy", http.StatusInternalServerError, false},
		{"503 is unhealthy", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("expected probe on /health, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			prober := NewProber(server.Client(), 0)
			entry := Entry{Name: "kokkoro", Endpoint: server.URL}

			if got := prober.Probe(context.Background(), entry); got != tt.wantHealthy {
				t.Errorf("expected healthy=%v, got %v", tt.wantHealthy, got)
			}
		})
	}
}

func TestProbeUnreachableBackend(t *testing.T) {
	// Closed immediately so the port refuses connections.
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	prober := NewProber(&http.Client{}, time.Second)
	entry := Entry{Name: "kokkoro", Endpoint: endpoint}

	if prober.Probe(context.Background(), entry) {
		t.Error("expected unreachable backend to probe unhealthy")
	}
}

func TestProbeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(server.Client(), 20*time.Millisecond)
	entry := Entry{Name: "kokkoro", Endpoint: server.URL}

	start := time.Now()
	healthy := prober.Probe(context.Background(), entry)
	elapsed := time.Since(start)

	if healthy {
		t.Error("expected slow backend to probe unhealthy")
	}
	if elapsed > 150*time.Millisecond {
		t.Errorf("probe did not respect timeout, took %v", elapsed)
	}
}

func TestProberDefaultTimeout(t *testing.T) {
	prober := NewProber(&http.Client{}, 0)
	if prober.Timeout() != DefaultProbeTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultProbeTimeout, prober.Timeout())
	}
}

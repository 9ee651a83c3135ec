package health

import (
	"errors"
	"net/http"
	"time"

	"github.com/Aparna0112/tts-systems/pkg/backends"
	"github.com/Aparna0112/tts-systems/pkg/httpjson"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/stats"
)

// Version is the service version reported by the aggregate health
// endpoint.
const Version = "1.0.0"

// Handlers bundles the HTTP handlers for the gateway's health surface.
type Handlers struct {
	aggregator *Aggregator
	counters   *stats.Counters
	system     *stats.SystemSampler
}

// NewHandlers creates health handlers over the aggregator, process
// counters, and host resource sampler. A nil sampler omits the resource
// fields from the responses.
func NewHandlers(aggregator *Aggregator, counters *stats.Counters, system *stats.SystemSampler) *Handlers {
	return &Handlers{
		aggregator: aggregator,
		counters:   counters,
		system:     system,
	}
}

// Register mounts the health endpoints on the mux:
//
//	GET /health                  aggregate service health (always 200)
//	GET /health/quick            constant liveness body for load balancers
//	GET /health/models           detailed per-model records
//	GET /health/models/{model}   single-model health (404/503/200)
//	GET /health/stats            uptime, request count, request rate
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Aggregate)
	mux.HandleFunc("GET /health/quick", h.Quick)
	mux.HandleFunc("GET /health/models", h.Models)
	mux.HandleFunc("GET /health/models/{model}", h.Model)
	mux.HandleFunc("GET /health/stats", h.Stats)
}

// Aggregate serves the comprehensive health check: overall status, model
// availability, process counters, and host resource usage. It always
// answers 200; degradation is reported in the body so monitoring keeps a
// single scrape target.
func (h *Handlers) Aggregate(w http.ResponseWriter, r *http.Request) {
	snapshot := h.aggregator.Aggregate(r.Context())

	models := make(map[string]bool, len(snapshot.Models))
	for name, record := range snapshot.Models {
		models[name] = record.Healthy
	}

	body := map[string]interface{}{
		"status":        snapshot.Status,
		"timestamp":     snapshot.Timestamp.Format(time.RFC3339),
		"version":       Version,
		"uptime":        snapshot.UptimeSeconds,
		"request_count": snapshot.RequestCount,
		"models":        models,
	}
	h.addSystemUsage(body)

	httpjson.Write(w, http.StatusOK, body)
}

// Quick serves a constant-body liveness check for load balancers.
func (h *Handlers) Quick(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Models serves the detailed per-model health view.
func (h *Handlers) Models(w http.ResponseWriter, r *http.Request) {
	snapshot := h.aggregator.Aggregate(r.Context())

	detailed := make(map[string]interface{}, len(snapshot.Models))
	for name, record := range snapshot.Models {
		detailed[name] = map[string]interface{}{
			"healthy":    record.Healthy,
			"configured": record.Configured,
			"endpoint":   record.Endpoint,
		}
	}

	httpjson.Write(w, http.StatusOK, map[string]interface{}{
		"models":           detailed,
		"timestamp":        snapshot.Timestamp.Format(time.RFC3339),
		"total_healthy":    snapshot.TotalHealthy(),
		"total_configured": snapshot.TotalConfigured(),
	})
}

// Model serves the health check for a single model: 404 for a name
// outside the registry, 503 for an unconfigured or unhealthy backend,
// 200 for a healthy one.
func (h *Handlers) Model(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("model")

	record, err := h.aggregator.AggregateOne(r.Context(), name)
	if err != nil {
		if errors.Is(err, backends.ErrUnknownModel) {
			httpjson.Write(w, http.StatusNotFound, map[string]interface{}{
				"error":     "model not found",
				"model":     name,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		httpjson.Write(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "internal error",
		})
		return
	}

	if !record.Configured {
		httpjson.Write(w, http.StatusServiceUnavailable, map[string]interface{}{
			"model":      record.Model,
			"healthy":    false,
			"configured": false,
			"error":      "model is not configured",
			"timestamp":  record.CheckedAt.Format(time.RFC3339),
		})
		return
	}

	status := http.StatusOK
	if !record.Healthy {
		status = http.StatusServiceUnavailable
	}

	httpjson.Write(w, status, map[string]interface{}{
		"model":      record.Model,
		"healthy":    record.Healthy,
		"configured": true,
		"endpoint":   record.Endpoint,
		"timestamp":  record.CheckedAt.Format(time.RFC3339),
	})
}

// Stats serves the process statistics view.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"uptime_seconds":      h.counters.Uptime().Seconds(),
		"total_requests":      h.counters.RequestCount(),
		"requests_per_second": h.counters.RequestsPerSecond(),
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	}
	h.addSystemUsage(body)

	httpjson.Write(w, http.StatusOK, body)
}

// addSystemUsage folds host resource usage into a response body when
// samples are available.
func (h *Handlers) addSystemUsage(body map[string]interface{}) {
	if usage, ok := h.system.MemoryUsage(); ok {
		body["memory_usage"] = usage
	}
	if usage, ok := h.system.CPUUsage(); ok {
		body["cpu_usage"] = usage
	}
}

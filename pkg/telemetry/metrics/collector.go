package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aparna0112/tts-systems/pkg/config"
)

// Collector manages the gateway's Prometheus metrics: dispatch outcomes,
// request latency, streaming fallbacks, and backend health probes.
// A nil *Collector is valid and records nothing, so callers don't need to
// branch on whether metrics are enabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Dispatch metrics
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fallbacksTotal  *prometheus.CounterVec

	// Health metrics
	probesTotal    *prometheus.CounterVec
	backendHealthy *prometheus.GaugeVec
}

// NewCollector creates a metrics collector registered against the given
// Prometheus registry. If registry is nil a fresh one is created. When
// metrics are disabled in the configuration, nil is returned; all Record
// methods tolerate a nil receiver.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if !cfg.Enabled {
		return nil
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of synthesis dispatches by model and outcome",
			},
			[]string{"model", "outcome"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of synthesis dispatches in seconds",
				// Synthesis latencies range from sub-second cache hits to
				// long multi-sentence generations.
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"model"},
		),

		fallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stream_fallbacks_total",
				Help:      "Streaming requests transparently degraded to non-streaming delivery",
			},
			[]string{"model"},
		),

		probesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "probes_total",
				Help:      "Backend liveness probes by model and result",
			},
			[]string{"model", "result"},
		),

		backendHealthy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "backend_healthy",
				Help:      "Whether the backend answered its last liveness probe (1 healthy, 0 unhealthy)",
			},
			[]string{"model"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.fallbacksTotal,
		c.probesTotal,
		c.backendHealthy,
	)

	return c
}

// RecordDispatch records one completed dispatch. Outcome is the failure
// kind, or "success".
func (c *Collector) RecordDispatch(model, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(model, outcome).Inc()
	c.requestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordFallback records a streaming request that fell back to the
// non-streaming path.
func (c *Collector) RecordFallback(model string) {
	if c == nil {
		return
	}
	c.fallbacksTotal.WithLabelValues(model).Inc()
}

// RecordProbe records one liveness probe result and updates the health
// gauge for the model.
func (c *Collector) RecordProbe(model string, healthy bool) {
	if c == nil {
		return
	}

	result := "healthy"
	value := 1.0
	if !healthy {
		result = "unhealthy"
		value = 0.0
	}
	c.probesTotal.WithLabelValues(model, result).Inc()
	c.backendHealthy.WithLabelValues(model).Set(value)
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

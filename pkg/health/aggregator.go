package health

import (
	"context"
	"sync"
	"time"

	"github.com/Aparna0112/tts-systems/pkg/backends"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/metrics"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/stats"
)

// Service status values.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Record is the health picture of one backend, produced fresh on every
// probe and never cached between queries. Healthy implies Configured:
// unconfigured entries are recorded unhealthy without being probed.
type Record struct {
	// Model is the logical model name.
	Model string `json:"model"`

	// Healthy reports whether the backend answered its liveness probe.
	Healthy bool `json:"healthy"`

	// Configured reports whether the backend has an endpoint.
	Configured bool `json:"configured"`

	// Endpoint is the backend's base URL, omitted when unconfigured.
	Endpoint string `json:"endpoint,omitempty"`

	// CheckedAt is when the probe (or the unconfigured shortcut) ran.
	CheckedAt time.Time `json:"checked_at"`
}

// ServiceHealth is the service-wide health snapshot: per-backend records
// merged with process counters. It is recomputed on every read, not
// stored. The service is healthy iff at least one backend is healthy.
type ServiceHealth struct {
	// Status is "healthy" or "degraded".
	Status string `json:"status"`

	// Models maps model name to its health record.
	Models map[string]Record `json:"models"`

	// UptimeSeconds is the process uptime.
	UptimeSeconds float64 `json:"uptime_seconds"`

	// RequestCount is the number of dispatches since startup.
	RequestCount int64 `json:"request_count"`

	// Timestamp is when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`
}

// TotalHealthy returns the number of healthy backends in the snapshot.
func (s ServiceHealth) TotalHealthy() int {
	n := 0
	for _, record := range s.Models {
		if record.Healthy {
			n++
		}
	}
	return n
}

// TotalConfigured returns the number of configured backends in the
// snapshot.
func (s ServiceHealth) TotalConfigured() int {
	n := 0
	for _, record := range s.Models {
		if record.Configured {
			n++
		}
	}
	return n
}

// Aggregator fans liveness probes out across every registered backend and
// folds the results into one ServiceHealth snapshot.
type Aggregator struct {
	registry *backends.Registry
	prober   *backends.Prober
	counters *stats.Counters
	metrics  *metrics.Collector
}

// NewAggregator creates an aggregator over the registry using the given
// prober.
func NewAggregator(
	registry *backends.Registry,
	prober *backends.Prober,
	counters *stats.Counters,
	collector *metrics.Collector,
) *Aggregator {
	return &Aggregator{
		registry: registry,
		prober:   prober,
		counters: counters,
		metrics:  collector,
	}
}

// Aggregate probes every configured backend concurrently and merges the
// results. Unconfigured entries are recorded without a probe, so the
// probe count per run equals the number of configured entries, and total
// latency is bounded by the slowest single probe rather than the sum.
func (a *Aggregator) Aggregate(ctx context.Context) ServiceHealth {
	records := make(map[string]Record, a.registry.Len())

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, entry := range a.registry.Entries() {
		if !entry.Configured() {
			records[entry.Name] = Record{
				Model:      entry.Name,
				Healthy:    false,
				Configured: false,
				CheckedAt:  time.Now().UTC(),
			}
			continue
		}

		wg.Add(1)
		go func(entry backends.Entry) {
			defer wg.Done()

			record := a.probeOne(ctx, entry)

			mu.Lock()
			records[entry.Name] = record
			mu.Unlock()
		}(entry)
	}

	wg.Wait()

	snapshot := ServiceHealth{
		Status:    StatusDegraded,
		Models:    records,
		Timestamp: time.Now().UTC(),
	}
	if snapshot.TotalHealthy() > 0 {
		snapshot.Status = StatusHealthy
	}
	if a.counters != nil {
		snapshot.UptimeSeconds = a.counters.Uptime().Seconds()
		snapshot.RequestCount = a.counters.RequestCount()
	}

	return snapshot
}

// AggregateOne produces the health record for a single model. It returns
// backends.ErrUnknownModel (wrapped) for names outside the registry; a
// known-but-unconfigured model yields an unprobed record.
func (a *Aggregator) AggregateOne(ctx context.Context, name string) (Record, error) {
	entry, err := a.registry.Resolve(name)
	if err != nil {
		return Record{}, err
	}

	if !entry.Configured() {
		return Record{
			Model:      entry.Name,
			Healthy:    false,
			Configured: false,
			CheckedAt:  time.Now().UTC(),
		}, nil
	}

	return a.probeOne(ctx, entry), nil
}

// probeOne runs one probe and records its result in the metrics.
func (a *Aggregator) probeOne(ctx context.Context, entry backends.Entry) Record {
	healthy := a.prober.Probe(ctx, entry)
	a.metrics.RecordProbe(entry.Name, healthy)

	return Record{
		Model:      entry.Name,
		Healthy:    healthy,
		Configured: true,
		Endpoint:   entry.Endpoint,
		CheckedAt:  time.Now().UTC(),
	}
}

package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/Aparna0112/tts-systems/pkg/config"
)

// Monitor runs scheduled background health sweeps over the aggregator so
// the backend-health gauges stay fresh between ad-hoc queries. Sweeps
// observe only; query-path aggregation still probes live on every call.
type Monitor struct {
	aggregator *Aggregator
	cfg        config.HealthConfig
	cron       *cron.Cron
	logger     *slog.Logger

	mu      sync.Mutex
	running bool

	// last sweep's per-model health, used to log transitions only.
	previous map[string]bool
}

// NewMonitor creates a background health monitor over the aggregator.
func NewMonitor(aggregator *Aggregator, cfg config.HealthConfig) *Monitor {
	return &Monitor{
		aggregator: aggregator,
		cfg:        cfg,
		cron:       cron.New(),
		logger:     slog.Default().With("component", "health.monitor"),
	}
}

// Start begins the scheduled sweeps based on the configured cron
// expression. If sweeps are disabled or the schedule is empty, Start is a
// no-op.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.SweepEnabled || m.cfg.SweepSchedule == "" {
		m.logger.Info("background health sweeps disabled")
		return nil
	}

	// Validate cron expression
	if _, err := cron.ParseStandard(m.cfg.SweepSchedule); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", m.cfg.SweepSchedule, err)
	}

	if _, err := m.cron.AddFunc(m.cfg.SweepSchedule, func() {
		m.sweep(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule health sweep: %w", err)
	}

	m.cron.Start()
	m.running = true

	m.logger.Info("background health sweeps started",
		"schedule", m.cfg.SweepSchedule,
	)
	return nil
}

// Stop halts the sweep schedule. A sweep already in flight is allowed to
// finish.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.cron.Stop()
	m.running = false
	m.logger.Info("background health sweeps stopped")
}

// sweep runs one aggregation pass and logs health transitions since the
// previous pass.
func (m *Monitor) sweep(ctx context.Context) {
	snapshot := m.aggregator.Aggregate(ctx)

	m.mu.Lock()
	previous := m.previous
	current := make(map[string]bool, len(snapshot.Models))
	for name, record := range snapshot.Models {
		current[name] = record.Healthy
	}
	m.previous = current
	m.mu.Unlock()

	for name, healthy := range current {
		was, seen := previous[name]
		if seen && was == healthy {
			continue
		}
		if healthy {
			m.logger.Info("backend healthy", "model", name)
		} else {
			m.logger.Warn("backend unhealthy", "model", name)
		}
	}

	m.logger.Debug("health sweep completed",
		"status", snapshot.Status,
		"healthy", snapshot.TotalHealthy(),
		"configured", snapshot.TotalConfigured(),
	)
}

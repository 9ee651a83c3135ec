package health

import (
	"context"
	"testing"

	"github.com/Aparna0112/tts-systems/pkg/config"
)

func TestMonitorDisabled(t *testing.T) {
	monitor := NewMonitor(newTestAggregator(nil), config.HealthConfig{
		SweepEnabled: false,
	})

	if err := monitor.Start(context.Background()); err != nil {
		t.Fatalf("disabled monitor must start cleanly, got %v", err)
	}
	monitor.Stop()
}

func TestMonitorInvalidSchedule(t *testing.T) {
	monitor := NewMonitor(newTestAggregator(nil), config.HealthConfig{
		SweepEnabled:  true,
		SweepSchedule: "not a schedule",
	})

	if err := monitor.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron schedule")
	}
}

func TestMonitorStartStop(t *testing.T) {
	monitor := NewMonitor(newTestAggregator(nil), config.HealthConfig{
		SweepEnabled:  true,
		SweepSchedule: "@every 1h",
	})

	if err := monitor.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	monitor.Stop()
	// Stop is idempotent.
	monitor.Stop()
}

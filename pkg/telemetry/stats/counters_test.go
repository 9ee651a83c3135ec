package stats

import (
	"sync"
	"testing"
)

func TestCountersIncrement(t *testing.T) {
	counters := NewCounters()

	if counters.RequestCount() != 0 {
		t.Fatalf("expected fresh counters to read 0, got %d", counters.RequestCount())
	}

	counters.IncRequests()
	counters.IncRequests()
	counters.IncRequests()

	if counters.RequestCount() != 3 {
		t.Errorf("expected 3 requests, got %d", counters.RequestCount())
	}
}

func TestCountersConcurrentIncrement(t *testing.T) {
	counters := NewCounters()

	const goroutines = 50
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				counters.IncRequests()
			}
		}()
	}
	wg.Wait()

	if got := counters.RequestCount(); got != goroutines*perGoroutine {
		t.Errorf("expected %d requests, got %d", goroutines*perGoroutine, got)
	}
}

func TestRequestsPerSecondClampsUptime(t *testing.T) {
	counters := NewCounters()

	for i := 0; i < 10; i++ {
		counters.IncRequests()
	}

	// A freshly started process has near-zero uptime; the rate must not
	// blow up or divide by zero.
	rate := counters.RequestsPerSecond()
	if rate > 10 {
		t.Errorf("expected rate clamped to at most 10 req/s, got %f", rate)
	}
	if rate <= 0 {
		t.Errorf("expected positive rate, got %f", rate)
	}
}

func TestUptimeAdvances(t *testing.T) {
	counters := NewCounters()
	if counters.Uptime() < 0 {
		t.Error("uptime went backwards")
	}
	if counters.StartTime().IsZero() {
		t.Error("start time not set")
	}
}

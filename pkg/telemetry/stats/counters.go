// Package stats tracks process-lifetime counters for the gateway.
package stats

import (
	"sync/atomic"
	"time"
)

// Counters holds process-wide counters: the service start time and the
// number of dispatched requests. It is created once at startup, shared by
// reference, and never reset while the process runs. The request count is
// the only state mutated by concurrent request paths, so it is an atomic
// counter; increments are commutative and need no further ordering.
type Counters struct {
	start    time.Time
	requests atomic.Int64
}

// NewCounters creates counters anchored at the current time.
func NewCounters() *Counters {
	return &Counters{start: time.Now()}
}

// IncRequests increments the request counter by one.
func (c *Counters) IncRequests() {
	c.requests.Add(1)
}

// RequestCount returns the number of requests counted so far.
func (c *Counters) RequestCount() int64 {
	return c.requests.Load()
}

// StartTime returns the process start time.
func (c *Counters) StartTime() time.Time {
	return c.start
}

// Uptime returns the elapsed time since startup.
func (c *Counters) Uptime() time.Duration {
	return time.Since(c.start)
}

// RequestsPerSecond returns the average request rate over the process
// lifetime. Uptime is clamped to one second so a freshly started process
// never divides by zero.
func (c *Counters) RequestsPerSecond() float64 {
	uptime := c.Uptime()
	if uptime < time.Second {
		uptime = time.Second
	}
	return float64(c.requests.Load()) / uptime.Seconds()
}

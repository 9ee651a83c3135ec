package stats

import (
	"fmt"
	"sync"

	"github.com/prometheus/procfs"
)

// SystemSampler reports coarse host resource usage for the health
// surface: memory utilization from /proc/meminfo and aggregate CPU
// utilization from /proc/stat deltas between samples. All methods
// tolerate a nil receiver, reporting no sample, so callers on platforms
// without procfs degrade to omitting the fields.
type SystemSampler struct {
	fs procfs.FS

	mu        sync.Mutex
	lastIdle  float64
	lastTotal float64
}

// NewSystemSampler creates a sampler over the default procfs mount.
func NewSystemSampler() (*SystemSampler, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("procfs unavailable: %w", err)
	}
	return &SystemSampler{fs: fs}, nil
}

// MemoryUsage returns the used share of physical memory as a percentage.
// The second return is false when no sample could be taken.
func (s *SystemSampler) MemoryUsage() (float64, bool) {
	if s == nil {
		return 0, false
	}

	info, err := s.fs.Meminfo()
	if err != nil || info.MemTotal == nil || info.MemAvailable == nil || *info.MemTotal == 0 {
		return 0, false
	}

	total := float64(*info.MemTotal)
	available := float64(*info.MemAvailable)
	return (total - available) / total * 100, true
}

// CPUUsage returns aggregate CPU utilization as a percentage over the
// interval since the previous call (since boot on the first call). The
// second return is false when no sample could be taken.
func (s *SystemSampler) CPUUsage() (float64, bool) {
	if s == nil {
		return 0, false
	}

	stat, err := s.fs.Stat()
	if err != nil {
		return 0, false
	}

	c := stat.CPUTotal
	idle := c.Idle + c.Iowait
	total := idle + c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Steal

	s.mu.Lock()
	defer s.mu.Unlock()

	deltaTotal := total - s.lastTotal
	deltaIdle := idle - s.lastIdle
	s.lastTotal = total
	s.lastIdle = idle

	if deltaTotal <= 0 {
		return 0, false
	}

	usage := (deltaTotal - deltaIdle) / deltaTotal * 100
	if usage < 0 {
		usage = 0
	}
	if usage > 100 {
		usage = 100
	}
	return usage, true
}

package backends

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// DefaultProbeTimeout bounds a single liveness probe when no override is
// configured.
const DefaultProbeTimeout = 5 * time.Second

// Prober issues bounded-timeout liveness checks against backend endpoints.
// It is stateless: every failure mode (network error, non-2xx status,
// timeout) collapses to an unhealthy result, and a single probe is one
// data point with no retries. The aggregate view stays correct by
// re-probing on the next aggregation cycle.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// NewProber creates a prober that borrows the shared HTTP client. The
// client is owned by the caller; the prober never closes it. A zero
// timeout selects DefaultProbeTimeout.
func NewProber(client *http.Client, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{
		client:  client,
		timeout: timeout,
	}
}

// Probe issues a single GET against the entry's liveness path and reports
// whether the backend answered with a 2xx status within the probe timeout.
// It never returns an error: unreachable, slow, and unhealthy backends all
// report false.
func (p *Prober) Probe(ctx context.Context, entry Entry) bool {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, entry.HealthURL(), nil)
	if err != nil {
		slog.Debug("probe request construction failed",
			"model", entry.Name,
			"error", err,
		)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Debug("backend probe failed",
			"model", entry.Name,
			"endpoint", entry.Endpoint,
			"error", err,
		)
		return false
	}
	defer resp.Body.Close()

	healthy := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !healthy {
		slog.Debug("backend probe returned unhealthy status",
			"model", entry.Name,
			"endpoint", entry.Endpoint,
			"status", resp.StatusCode,
		)
	}
	return healthy
}

// Timeout returns the per-probe timeout.
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Aparna0112/tts-systems/pkg/backends"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/metrics"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/stats"
)

// DefaultTimeout bounds a non-streaming forwarding call when no override
// is configured.
const DefaultTimeout = 60 * time.Second

// Dispatcher resolves a model name via the registry and forwards the
// synthesis payload to the backend's generation path, translating every
// failure mode into a classified outcome. It makes exactly one forwarding
// attempt per call; retry policy belongs to the caller.
type Dispatcher struct {
	registry *backends.Registry
	client   *http.Client
	counters *stats.Counters
	metrics  *metrics.Collector
	timeout  time.Duration
}

// NewDispatcher creates a dispatcher. The HTTP client is the shared
// process-lifetime client; the dispatcher borrows it and never closes it.
// A zero timeout selects DefaultTimeout.
func NewDispatcher(
	registry *backends.Registry,
	client *http.Client,
	counters *stats.Counters,
	collector *metrics.Collector,
	timeout time.Duration,
) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		registry: registry,
		client:   client,
		counters: counters,
		metrics:  collector,
		timeout:  timeout,
	}
}

// Dispatch forwards one synthesis request and returns its classified
// outcome. The process request counter is incremented exactly once per
// call, regardless of outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Outcome {
	d.counters.IncRequests()

	start := time.Now()
	outcome := d.dispatch(ctx, req)
	d.metrics.RecordDispatch(req.Model, outcomeLabel(outcome), time.Since(start))

	return outcome
}

func (d *Dispatcher) dispatch(ctx context.Context, req *Request) *Outcome {
	entry, failure := d.resolve(req.Model)
	if failure != nil {
		return fail(failure)
	}

	slog.Info("forwarding synthesis request",
		"model", req.Model,
		"endpoint", entry.Endpoint,
		"text_length", len(req.Text),
	)

	body, err := json.Marshal(req)
	if err != nil {
		slog.Error("failed to encode synthesis request", "model", req.Model, "error", err)
		return fail(&Failure{
			Kind:    KindInternal,
			Message: "internal error",
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, entry.GenerateURL(), bytes.NewReader(body))
	if err != nil {
		slog.Error("failed to build forwarding request", "model", req.Model, "error", err)
		return fail(&Failure{
			Kind:    KindInternal,
			Message: "internal error",
		})
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		failure := classifyTransportError(err, entry.Endpoint)
		slog.Warn("forwarding failed",
			"model", req.Model,
			"endpoint", entry.Endpoint,
			"kind", string(failure.Kind),
			"error", err,
		)
		return fail(failure)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("failed to read backend response", "model", req.Model, "error", err)
		return fail(&Failure{
			Kind:    KindInternal,
			Message: "internal error",
		})
	}

	slog.Debug("received backend response",
		"model", req.Model,
		"status", resp.StatusCode,
		"bytes", len(respBody),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var result Result
		if err := json.Unmarshal(respBody, &result); err != nil {
			slog.Error("backend returned unparseable payload",
				"model", req.Model,
				"status", resp.StatusCode,
				"error", err,
			)
			return fail(&Failure{
				Kind:    KindInternal,
				Message: "internal error",
			})
		}
		return succeed(&result)
	}

	return fail(classifyStatus(resp.StatusCode, respBody))
}

// resolve maps a model name to its registry entry, classifying an unknown
// name as InvalidModel and a known-but-unconfigured model as
// BackendUnavailable.
func (d *Dispatcher) resolve(model string) (backends.Entry, *Failure) {
	entry, err := d.registry.Resolve(model)
	if err != nil {
		return backends.Entry{}, &Failure{
			Kind:    KindInvalidModel,
			Message: fmt.Sprintf("unknown model %q, available models: %v", model, d.registry.Names()),
		}
	}
	if !entry.Configured() {
		return backends.Entry{}, &Failure{
			Kind:    KindBackendUnavailable,
			Message: fmt.Sprintf("model %q is not configured", model),
		}
	}
	return entry, nil
}

// Timeout returns the forwarding timeout.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// outcomeLabel returns the metric label for an outcome.
func outcomeLabel(outcome *Outcome) string {
	if outcome.OK() {
		return "success"
	}
	return string(outcome.Failure.Kind)
}

// validationDetail extracts the detail message from a backend 422 body,
// falling back to the raw body when it isn't the expected JSON shape.
func validationDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if len(body) > 0 {
		return string(body)
	}
	return "validation error"
}

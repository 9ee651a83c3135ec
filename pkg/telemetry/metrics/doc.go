// Package metrics provides Prometheus metrics for the TTS gateway.
//
// The collector tracks dispatch outcomes and latency per model, streaming
// fallbacks, and backend liveness probe results. Metrics are exposed via
// the standard Prometheus exposition format at the configured path.
package metrics

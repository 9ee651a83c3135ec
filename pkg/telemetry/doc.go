// Package telemetry groups the gateway's observability concerns.
//
//   - logging: structured logging on top of log/slog
//   - metrics: Prometheus metrics collection and exposition
//   - stats: process-lifetime counters (uptime, request count)
package telemetry

// Package health aggregates per-backend liveness into a service-wide
// view and serves it over HTTP.
//
// The Aggregator fans probes out concurrently across every configured
// backend and folds the results into a fresh snapshot on each call;
// nothing is cached between queries. Unconfigured backends are reported
// unhealthy without being probed. The service counts as healthy when at
// least one backend is.
//
// Handlers expose the snapshot at /health and its siblings. Monitor
// additionally runs the same aggregation on a cron schedule so the
// backend-health gauges stay current between queries.
package health

// Package backends provides the backend registry and the liveness prober.
//
// The registry is an immutable mapping from logical model name to backend
// endpoint, built once at startup from configuration. Resolution
// distinguishes three cases: an unknown name (ErrUnknownModel), a known
// model with no configured endpoint, and a fully configured backend.
//
// The prober issues single bounded-timeout liveness checks. It never
// raises; every failure mode folds into an unhealthy result.
package backends

// Package dispatch forwards validated synthesis requests to backend
// services and translates every failure mode into a stable, classified
// outcome.
//
// The Dispatcher resolves the logical model name through the backend
// registry, POSTs the payload to the backend's generation path under a
// bounded timeout, and classifies the response: success, backend
// validation rejection, unexpected backend status, timeout, unreachable
// backend, or internal error. Classification happens exactly once here;
// the HTTP boundary maps each kind to a transport status without
// re-interpreting it.
//
// The Negotiator layers streaming on top of the Dispatcher. It attempts
// the backend's streaming path first and, when the backend answers 404
// (streaming unsupported), transparently re-issues the request through
// the non-streaming path. Every negotiation produces exactly one terminal
// outcome: a single-pass byte stream or a dispatch outcome.
package dispatch

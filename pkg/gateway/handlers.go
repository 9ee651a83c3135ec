package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Aparna0112/tts-systems/pkg/backends"
	"github.com/Aparna0112/tts-systems/pkg/dispatch"
	"github.com/Aparna0112/tts-systems/pkg/httpjson"
)

// ServiceName and ServiceVersion identify the gateway in the root
// endpoint's response.
const (
	ServiceName    = "TTS Gateway"
	ServiceVersion = "1.0.0"
)

// Handlers bundles the synthesis and discovery HTTP handlers.
type Handlers struct {
	registry   *backends.Registry
	dispatcher *dispatch.Dispatcher
	negotiator *dispatch.Negotiator
}

// NewHandlers creates the gateway handlers over the registry, dispatcher,
// and streaming negotiator.
func NewHandlers(
	registry *backends.Registry,
	dispatcher *dispatch.Dispatcher,
	negotiator *dispatch.Negotiator,
) *Handlers {
	return &Handlers{
		registry:   registry,
		dispatcher: dispatcher,
		negotiator: negotiator,
	}
}

// Register mounts the gateway endpoints on the mux:
//
//	GET  /                   service information
//	GET  /models             backend configuration overview
//	POST /tts/{model}        synthesize audio
//	POST /tts/{model}/stream synthesize audio, streamed when supported
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /models", h.Models)
	mux.HandleFunc("POST /tts/{model}", h.Synthesize)
	mux.HandleFunc("POST /tts/{model}/stream", h.SynthesizeStream)
}

// Root serves service identification and the endpoint map.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]interface{}{
		"service":          ServiceName,
		"version":          ServiceVersion,
		"available_models": h.registry.Names(),
		"endpoints": map[string]string{
			"health":   "/health",
			"models":   "/models",
			"generate": "/tts/{model}",
			"stream":   "/tts/{model}/stream",
		},
	})
}

// Models serves the per-model configuration overview.
func (h *Handlers) Models(w http.ResponseWriter, r *http.Request) {
	models := make(map[string]interface{}, h.registry.Len())
	for _, entry := range h.registry.Entries() {
		endpoint := entry.Endpoint
		if !entry.Configured() {
			endpoint = "Not configured"
		}
		models[entry.Name] = map[string]interface{}{
			"available": entry.Configured(),
			"endpoint":  endpoint,
		}
	}

	httpjson.Write(w, http.StatusOK, map[string]interface{}{
		"models":       models,
		"total_models": h.registry.Len(),
	})
}

// Synthesize handles a non-streaming synthesis request: validate, forward
// through the dispatcher, and relay the backend's result or the
// classified failure.
func (h *Handlers) Synthesize(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")

	req, err := DecodeTTSRequest(r.Body)
	if err != nil {
		reqErr, ok := err.(*RequestError)
		if !ok {
			reqErr = &RequestError{Violations: map[string]string{"body": err.Error()}}
		}
		writeRequestError(w, r, reqErr)
		return
	}

	outcome := h.dispatcher.Dispatch(r.Context(), req.toDispatch(model))
	if !outcome.OK() {
		writeFailure(w, r, outcome.Failure)
		return
	}

	httpjson.Write(w, http.StatusOK, outcome.Result)
}

// SynthesizeStream handles a streaming synthesis request. When the
// backend streams, the audio bytes are relayed as they arrive; when the
// backend does not support streaming, the fallback dispatch result is
// returned as a regular JSON response.
func (h *Handlers) SynthesizeStream(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")

	req, err := DecodeTTSRequest(r.Body)
	if err != nil {
		reqErr, ok := err.(*RequestError)
		if !ok {
			reqErr = &RequestError{Violations: map[string]string{"body": err.Error()}}
		}
		writeRequestError(w, r, reqErr)
		return
	}

	result := h.negotiator.Stream(r.Context(), req.toDispatch(model))

	if result.Stream != nil {
		h.relayStream(w, r, model, result.Stream)
		return
	}

	if !result.Outcome.OK() {
		writeFailure(w, r, result.Outcome.Failure)
		return
	}

	// Fallback path: the backend does not stream, so the client receives
	// the regular synthesis response instead.
	httpjson.Write(w, http.StatusOK, result.Outcome.Result)
}

// relayStream copies backend audio chunks to the client as they arrive.
func (h *Handlers) relayStream(w http.ResponseWriter, r *http.Request, model string, stream *dispatch.Stream) {
	w.Header().Set("Content-Type", stream.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=tts_%s_%d.wav", model, time.Now().Unix()))
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	for chunk := range stream.Chunks {
		if chunk.Err != nil {
			// Headers are already sent; all we can do is log and stop.
			slog.Warn("stream interrupted",
				"model", model,
				"error", chunk.Err,
			)
			return
		}
		if _, err := w.Write(chunk.Data); err != nil {
			slog.Debug("client disconnected during stream", "model", model)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

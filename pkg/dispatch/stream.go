package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultStreamTimeout bounds a streaming forwarding call. Streams take
// longer to complete than regular generations, so this exceeds the
// non-streaming default.
const DefaultStreamTimeout = 120 * time.Second

// streamChunkSize is the read granularity when relaying backend audio.
const streamChunkSize = 32 * 1024

// Chunk is one element of a streamed audio body. Err is set on the final
// chunk if the stream ended abnormally.
type Chunk struct {
	Data []byte
	Err  error
}

// Stream is a lazily-produced, single-pass sequence of audio chunks from a
// backend that accepted a streaming request. The channel is closed when
// the backend closes the stream; it cannot be restarted.
type Stream struct {
	// ContentType is the media type reported by the backend.
	ContentType string

	// Chunks yields the audio bytes in order. The caller must drain the
	// channel until it closes.
	Chunks <-chan Chunk
}

// StreamOutcome is the single terminal outcome of a streaming negotiation:
// exactly one of Stream or Outcome is set. Outcome carries either the
// fallback dispatch result (when the backend does not support streaming)
// or a classified failure.
type StreamOutcome struct {
	Stream  *Stream
	Outcome *Outcome
}

// Negotiator attempts a streaming forward call and transparently degrades
// to the non-streaming dispatcher when the backend answers the streaming
// path with a 404. A non-404 failure never falls back; it is classified
// with the dispatcher's taxonomy and surfaced as-is.
type Negotiator struct {
	dispatcher *Dispatcher
	client     *http.Client
	timeout    time.Duration
}

// NewNegotiator creates a negotiator layered on the dispatcher, borrowing
// the same shared HTTP client. A zero timeout selects
// DefaultStreamTimeout.
func NewNegotiator(dispatcher *Dispatcher, client *http.Client, timeout time.Duration) *Negotiator {
	if timeout <= 0 {
		timeout = DefaultStreamTimeout
	}
	return &Negotiator{
		dispatcher: dispatcher,
		client:     client,
		timeout:    timeout,
	}
}

// Stream negotiates streaming delivery for one synthesis request. The
// caller receives exactly one terminal outcome: a byte stream, the
// fallback dispatch outcome, or a classified failure. The process request
// counter is incremented once per call; the fallback path counts through
// the dispatcher instead of here.
func (n *Negotiator) Stream(ctx context.Context, req *Request) *StreamOutcome {
	entry, failure := n.dispatcher.resolve(req.Model)
	if failure != nil {
		n.dispatcher.counters.IncRequests()
		n.dispatcher.metrics.RecordDispatch(req.Model, string(failure.Kind), 0)
		return &StreamOutcome{Outcome: fail(failure)}
	}

	body, err := json.Marshal(req)
	if err != nil {
		slog.Error("failed to encode streaming request", "model", req.Model, "error", err)
		n.dispatcher.counters.IncRequests()
		return &StreamOutcome{Outcome: fail(&Failure{
			Kind:    KindInternal,
			Message: "internal error",
		})}
	}

	slog.Info("attempting streaming synthesis",
		"model", req.Model,
		"endpoint", entry.Endpoint,
		"text_length", len(req.Text),
	)

	streamCtx, cancel := context.WithTimeout(ctx, n.timeout)

	httpReq, err := http.NewRequestWithContext(streamCtx, http.MethodPost, entry.StreamURL(), bytes.NewReader(body))
	if err != nil {
		cancel()
		slog.Error("failed to build streaming request", "model", req.Model, "error", err)
		n.dispatcher.counters.IncRequests()
		return &StreamOutcome{Outcome: fail(&Failure{
			Kind:    KindInternal,
			Message: "internal error",
		})}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(httpReq)
	if err != nil {
		cancel()
		failure := classifyTransportError(err, entry.Endpoint)
		slog.Warn("streaming attempt failed",
			"model", req.Model,
			"endpoint", entry.Endpoint,
			"kind", string(failure.Kind),
			"error", err,
		)
		n.dispatcher.counters.IncRequests()
		n.dispatcher.metrics.RecordDispatch(req.Model, string(failure.Kind), 0)
		return &StreamOutcome{Outcome: fail(failure)}
	}

	// A 404 on the streaming path means the backend does not stream.
	// Hand the unmodified request to the non-streaming dispatcher; its
	// outcome becomes ours.
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		cancel()

		slog.Info("streaming not supported, falling back to non-streaming dispatch",
			"model", req.Model,
		)
		n.dispatcher.metrics.RecordFallback(req.Model)

		return &StreamOutcome{Outcome: n.dispatcher.Dispatch(ctx, req)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()

		failure := classifyStatus(resp.StatusCode, errBody)
		slog.Warn("streaming attempt returned error status",
			"model", req.Model,
			"status", resp.StatusCode,
			"kind", string(failure.Kind),
		)
		n.dispatcher.counters.IncRequests()
		n.dispatcher.metrics.RecordDispatch(req.Model, string(failure.Kind), 0)
		return &StreamOutcome{Outcome: fail(failure)}
	}

	n.dispatcher.counters.IncRequests()
	n.dispatcher.metrics.RecordDispatch(req.Model, "stream", 0)

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/wav"
	}

	chunks := make(chan Chunk, 4)
	go relay(streamCtx, cancel, resp.Body, chunks)

	return &StreamOutcome{Stream: &Stream{
		ContentType: contentType,
		Chunks:      chunks,
	}}
}

// Timeout returns the streaming forwarding timeout.
func (n *Negotiator) Timeout() time.Duration {
	return n.timeout
}

// relay copies the backend's streamed body into the chunk channel. It
// owns the response body and the call's cancel func, releasing both when
// the stream ends.
func relay(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser, chunks chan<- Chunk) {
	defer close(chunks)
	defer cancel()
	defer body.Close()

	buf := make([]byte, streamChunkSize)
	for {
		nr, err := body.Read(buf)
		if nr > 0 {
			data := make([]byte, nr)
			copy(data, buf[:nr])

			select {
			case chunks <- Chunk{Data: data}:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				select {
				case chunks <- Chunk{Err: err}:
				case <-ctx.Done():
				}
			}
			return
		}
	}
}

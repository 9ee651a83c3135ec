package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a dispatch failure. Classification happens once at the
// forwarding boundary; downstream layers map kinds to transport status
// codes without re-interpreting them.
type Kind string

const (
	// KindInvalidModel is an unknown logical model name (client error).
	KindInvalidModel Kind = "invalid_model"

	// KindBackendUnavailable is a model that is not configured or whose
	// backend is unreachable (retryable by the caller).
	KindBackendUnavailable Kind = "backend_unavailable"

	// KindTimeout is a backend that exceeded the forwarding bound
	// (retryable by the caller).
	KindTimeout Kind = "timeout"

	// KindValidation is a backend rejecting the payload semantics; the
	// backend's detail message is passed through verbatim.
	KindValidation Kind = "validation_error"

	// KindBackend is an unexpected backend status, surfaced with the
	// backend-provided status and body.
	KindBackend Kind = "backend_error"

	// KindInternal is an unclassified failure inside the gateway.
	KindInternal Kind = "internal_error"
)

// Failure is a classified dispatch failure.
type Failure struct {
	// Kind is the failure classification.
	Kind Kind

	// Message is the client-facing detail. For KindValidation it is the
	// backend's detail verbatim; for KindInternal it is a generic message
	// with the underlying cause logged rather than surfaced.
	Message string

	// Status is the backend's HTTP status for KindBackend, zero otherwise.
	Status int
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Status > 0 {
		return fmt.Sprintf("%s (status %d): %s", f.Kind, f.Status, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// HTTPStatus maps the failure kind to the transport status code the
// boundary layer returns. KindBackend passes the backend status through.
func (f *Failure) HTTPStatus() int {
	switch f.Kind {
	case KindInvalidModel:
		return http.StatusBadRequest
	case KindBackendUnavailable:
		return http.StatusServiceUnavailable
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBackend:
		if f.Status > 0 {
			return f.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// classifyTransportError classifies an error returned by the HTTP client
// before any backend status was received: deadline expiry becomes a
// timeout, everything else an unreachable backend.
func classifyTransportError(err error, endpoint string) *Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("backend timeout: %s", endpoint),
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Failure{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("backend timeout: %s", endpoint),
		}
	}

	return &Failure{
		Kind:    KindBackendUnavailable,
		Message: fmt.Sprintf("cannot reach backend: %s", endpoint),
	}
}

// classifyStatus classifies a non-2xx backend response. A 422 carries the
// backend's validation detail through verbatim; anything else is surfaced
// as a backend error with the original status and body.
func classifyStatus(status int, body []byte) *Failure {
	if status == http.StatusUnprocessableEntity {
		return &Failure{
			Kind:    KindValidation,
			Message: validationDetail(body),
		}
	}

	message := string(body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &Failure{
		Kind:    KindBackend,
		Message: message,
		Status:  status,
	}
}

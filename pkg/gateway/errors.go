package gateway

import (
	"net/http"
	"time"

	"github.com/Aparna0112/tts-systems/pkg/dispatch"
	"github.com/Aparna0112/tts-systems/pkg/gateway/middleware"
	"github.com/Aparna0112/tts-systems/pkg/httpjson"
)

// ErrorResponse is the JSON body for every gateway error.
type ErrorResponse struct {
	// Success is always false for error responses.
	Success bool `json:"success"`

	// Error is the human-readable error message.
	Error string `json:"error"`

	// ErrorCode is a stable code for programmatic handling.
	ErrorCode string `json:"error_code,omitempty"`

	// Details carries additional structured error information.
	Details map[string]interface{} `json:"details,omitempty"`

	// Timestamp is when the error was produced.
	Timestamp string `json:"timestamp"`

	// RequestID correlates the error with the access logs.
	RequestID string `json:"request_id,omitempty"`
}

// errorCode maps a failure kind to its client-facing error code.
func errorCode(kind dispatch.Kind) string {
	switch kind {
	case dispatch.KindInvalidModel:
		return "MODEL_NOT_FOUND"
	case dispatch.KindBackendUnavailable:
		return "SERVICE_UNAVAILABLE"
	case dispatch.KindTimeout:
		return "GATEWAY_TIMEOUT"
	case dispatch.KindValidation:
		return "VALIDATION_ERROR"
	case dispatch.KindBackend:
		return "BACKEND_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// writeFailure writes a classified dispatch failure as an error response,
// mapping the failure kind to its transport status.
func writeFailure(w http.ResponseWriter, r *http.Request, failure *dispatch.Failure) {
	writeError(w, failure.HTTPStatus(), ErrorResponse{
		Success:   false,
		Error:     failure.Message,
		ErrorCode: errorCode(failure.Kind),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

// writeRequestError writes a schema violation as a 422 response carrying
// the per-field details.
func writeRequestError(w http.ResponseWriter, r *http.Request, reqErr *RequestError) {
	details := make(map[string]interface{}, len(reqErr.Violations))
	for field, msg := range reqErr.Violations {
		details[field] = msg
	}

	writeError(w, http.StatusUnprocessableEntity, ErrorResponse{
		Success:   false,
		Error:     reqErr.Error(),
		ErrorCode: "VALIDATION_ERROR",
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	httpjson.Write(w, status, resp)
}

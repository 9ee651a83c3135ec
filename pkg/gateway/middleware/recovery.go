package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// Recovery recovers from panics in HTTP handlers and answers with a 500
// error body. The panic is logged with its stack trace; internal details
// are not exposed to clients.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"success":    false,
					"error":      "An internal error occurred. Please try again later.",
					"error_code": "INTERNAL_ERROR",
					"timestamp":  time.Now().UTC().Format(time.RFC3339),
					"request_id": requestID,
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

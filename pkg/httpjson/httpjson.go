// Package httpjson writes JSON response bodies with the gateway's
// standard content type. Encoding errors are ignored: the status line is
// already on the wire by the time encoding runs, so there is nothing
// left to report to the client.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write serializes body as the JSON response with the given status.
func Write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

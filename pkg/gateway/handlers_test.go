package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aparna0112/tts-systems/pkg/backends"
	"github.com/Aparna0112/tts-systems/pkg/config"
	"github.com/Aparna0112/tts-systems/pkg/dispatch"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/stats"
)

// newGatewayTestServer wires real dispatch components against the given
// backend endpoint, with "kokkoro" configured and "chatterbox" not.
func newGatewayTestServer(t *testing.T, endpoint string) *httptest.Server {
	t.Helper()

	registry := backends.NewRegistry(map[string]config.BackendConfig{
		"kokkoro":    {Endpoint: endpoint},
		"chatterbox": {Endpoint: ""},
	})
	counters := stats.NewCounters()
	dispatcher := dispatch.NewDispatcher(registry, &http.Client{}, counters, nil, 0)
	negotiator := dispatch.NewNegotiator(dispatcher, &http.Client{}, 0)

	mux := http.NewServeMux()
	NewHandlers(registry, dispatcher, negotiator).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func backendResult() []byte {
	body, _ := json.Marshal(dispatch.Result{
		Success:     true,
		AudioData:   "UklGRg==",
		AudioFormat: "wav",
		SampleRate:  22050,
		ModelUsed:   "kokkoro",
		TextLength:  5,
	})
	return body
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestSynthesize(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("expected /generate, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(backendResult())
	}))
	t.Cleanup(backend.Close)

	server := newGatewayTestServer(t, backend.URL)

	resp := postJSON(t, server.URL+"/tts/kokkoro", `{"text": "Hello"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body["success"])
	}
	if body["model_used"] != "kokkoro" {
		t.Errorf("expected model_used kokkoro, got %v", body["model_used"])
	}
}

func TestSynthesizeUnknownModel(t *testing.T) {
	server := newGatewayTestServer(t, "http://unused:8001")

	resp := postJSON(t, server.URL+"/tts/nonexistent", `{"text": "Hello"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["success"] != false {
		t.Errorf("expected success false, got %v", body["success"])
	}
	if body["error_code"] != "MODEL_NOT_FOUND" {
		t.Errorf("expected MODEL_NOT_FOUND, got %v", body["error_code"])
	}
}

func TestSynthesizeUnconfiguredModel(t *testing.T) {
	server := newGatewayTestServer(t, "http://unused:8001")

	resp := postJSON(t, server.URL+"/tts/chatterbox", `{"text": "Hello"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestSynthesizeSchemaViolation(t *testing.T) {
	server := newGatewayTestServer(t, "http://unused:8001")

	resp := postJSON(t, server.URL+"/tts/kokkoro", `{"text": "Hello", "format": "aiff"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error_code"] != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %v", body["error_code"])
	}
	details, ok := body["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected details map, got %T", body["details"])
	}
	if _, found := details["format"]; !found {
		t.Errorf("expected format violation in details, got %v", details)
	}
}

func TestSynthesizeBackendValidationPassthrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "voice not available for language"}`))
	}))
	t.Cleanup(backend.Close)

	server := newGatewayTestServer(t, backend.URL)

	resp := postJSON(t, server.URL+"/tts/kokkoro", `{"text": "Hello"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "voice not available for language" {
		t.Errorf("expected backend detail verbatim, got %v", body["error"])
	}
}

func TestSynthesizeStreamRelaysAudio(t *testing.T) {
	audio := bytes.Repeat([]byte("wav-bytes"), 128)

	mux := http.NewServeMux()
	mux.HandleFunc("/generate/stream", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(audio)
	})
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	server := newGatewayTestServer(t, backend.URL)

	resp := postJSON(t, server.URL+"/tts/kokkoro/stream", `{"text": "Hello"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("expected audio/wav, got %s", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("expected attachment disposition, got %q", cd)
	}

	got, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read stream: %v", err)
	}
	if !bytes.Equal(got, audio) {
		t.Errorf("streamed bytes differ: expected %d, got %d", len(audio), len(got))
	}
}

func TestSynthesizeStreamFallsBackTo404(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate/stream", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(backendResult())
	})
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	server := newGatewayTestServer(t, backend.URL)

	resp := postJSON(t, server.URL+"/tts/kokkoro/stream", `{"text": "Hello"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from fallback, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("fallback must answer JSON, got %s", ct)
	}

	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("expected successful fallback result, got %v", body)
	}
}

func TestRootEndpoint(t *testing.T) {
	server := newGatewayTestServer(t, "http://unused:8001")

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["service"] != ServiceName {
		t.Errorf("expected service %q, got %v", ServiceName, body["service"])
	}

	models, ok := body["available_models"].([]interface{})
	if !ok || len(models) != 2 {
		t.Errorf("expected 2 available models, got %v", body["available_models"])
	}
}

func TestModelsEndpoint(t *testing.T) {
	server := newGatewayTestServer(t, "http://kokkoro:8001")

	resp, err := http.Get(server.URL + "/models")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body := decodeBody(t, resp)
	if body["total_models"] != float64(2) {
		t.Errorf("expected 2 models, got %v", body["total_models"])
	}

	models := body["models"].(map[string]interface{})
	kokkoro := models["kokkoro"].(map[string]interface{})
	if kokkoro["available"] != true {
		t.Errorf("expected kokkoro available, got %v", kokkoro)
	}
	chatterbox := models["chatterbox"].(map[string]interface{})
	if chatterbox["available"] != false {
		t.Errorf("expected chatterbox unavailable, got %v", chatterbox)
	}
	if chatterbox["endpoint"] != "Not configured" {
		t.Errorf("expected placeholder endpoint, got %v", chatterbox["endpoint"])
	}
}

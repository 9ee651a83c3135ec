package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Aparna0112/tts-systems/pkg/dispatch"
)

// Request size and parameter bounds enforced before dispatch.
const (
	maxTextLength = 5000

	minSampleRate = 8000
	maxSampleRate = 48000

	minSpeed = 0.1
	maxSpeed = 3.0

	minPitch = 0.1
	maxPitch = 3.0

	minVolume = 0.1
	maxVolume = 2.0
)

// allowedFormats is the set of output audio formats the gateway accepts.
var allowedFormats = map[string]bool{
	"wav":  true,
	"mp3":  true,
	"ogg":  true,
	"flac": true,
}

// TTSRequest is the client-facing synthesis request. Absent fields take
// documented defaults before validation runs.
type TTSRequest struct {
	// Text is the text to synthesize. Required, 1 to 5000 characters,
	// not blank.
	Text string `json:"text"`

	// VoiceID selects a voice, when the backend supports more than one.
	VoiceID string `json:"voice_id,omitempty"`

	// Language is the language code, "en" or "en-US" form. Normalized to
	// lowercase. Default: "en".
	Language string `json:"language,omitempty"`

	// Format is the output audio format: wav, mp3, ogg, or flac.
	// Default: "wav".
	Format string `json:"format,omitempty"`

	// SampleRate is the output sample rate in Hz, 8000 to 48000.
	// Default: 22050.
	SampleRate int `json:"sample_rate,omitempty"`

	// Speed is the speech speed multiplier, 0.1 to 3.0. Default: 1.0.
	Speed float64 `json:"speed,omitempty"`

	// Pitch is the pitch multiplier, 0.1 to 3.0. Default: 1.0.
	Pitch float64 `json:"pitch,omitempty"`

	// Volume is the volume multiplier, 0.1 to 2.0. Default: 1.0.
	Volume float64 `json:"volume,omitempty"`

	// ModelParams carries model-specific parameters opaque to the gateway.
	ModelParams map[string]interface{} `json:"model_params,omitempty"`

	// Normalize requests audio normalization. Default: true.
	Normalize bool `json:"normalize"`

	// RemoveSilence requests trimming of leading/trailing silence.
	// Default: false.
	RemoveSilence bool `json:"remove_silence"`
}

// RequestError is a schema violation in a client request. It maps to a
// 422 response carrying the field-level details.
type RequestError struct {
	// Violations maps field names to their violation messages.
	Violations map[string]string
}

// Error returns a single-line summary of the violations.
func (e *RequestError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for field, msg := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// defaultTTSRequest returns a request pre-populated with the documented
// defaults; decoding over it leaves absent fields at their default.
func defaultTTSRequest() TTSRequest {
	return TTSRequest{
		Language:   "en",
		Format:     "wav",
		SampleRate: 22050,
		Speed:      1.0,
		Pitch:      1.0,
		Volume:     1.0,
		Normalize:  true,
	}
}

// DecodeTTSRequest reads a JSON request body, applies defaults, and
// validates the result. A malformed body or schema violation returns a
// *RequestError.
func DecodeTTSRequest(body io.Reader) (*TTSRequest, error) {
	req := defaultTTSRequest()

	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return nil, &RequestError{Violations: map[string]string{
			"body": fmt.Sprintf("invalid JSON: %v", err),
		}}
	}

	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// validate checks every field against its documented bounds, normalizing
// the language code along the way. All violations are collected so the
// client sees the complete picture in one response.
func (r *TTSRequest) validate() error {
	violations := make(map[string]string)

	// The length bound counts characters, not bytes; CJK text is the
	// normal case for several backends.
	if strings.TrimSpace(r.Text) == "" {
		violations["text"] = "text cannot be empty"
	} else if utf8.RuneCountInString(r.Text) > maxTextLength {
		violations["text"] = fmt.Sprintf("text exceeds maximum length of %d characters", maxTextLength)
	}

	if r.Language != "" {
		lang := strings.ToLower(strings.TrimSpace(r.Language))
		if len(lang) != 2 && len(lang) != 5 {
			violations["language"] = fmt.Sprintf("invalid language code %q, use short (en) or full (en-us) form", r.Language)
		} else {
			r.Language = lang
		}
	}

	if !allowedFormats[r.Format] {
		violations["format"] = fmt.Sprintf("unsupported format %q, must be one of: wav, mp3, ogg, flac", r.Format)
	}

	if r.SampleRate < minSampleRate || r.SampleRate > maxSampleRate {
		violations["sample_rate"] = fmt.Sprintf("sample_rate must be between %d and %d", minSampleRate, maxSampleRate)
	}

	if r.Speed < minSpeed || r.Speed > maxSpeed {
		violations["speed"] = fmt.Sprintf("speed must be between %.1f and %.1f", minSpeed, maxSpeed)
	}
	if r.Pitch < minPitch || r.Pitch > maxPitch {
		violations["pitch"] = fmt.Sprintf("pitch must be between %.1f and %.1f", minPitch, maxPitch)
	}
	if r.Volume < minVolume || r.Volume > maxVolume {
		violations["volume"] = fmt.Sprintf("volume must be between %.1f and %.1f", minVolume, maxVolume)
	}

	if len(violations) > 0 {
		return &RequestError{Violations: violations}
	}
	return nil
}

// toDispatch converts the validated request into the forwarding payload,
// injecting the resolved model name.
func (r *TTSRequest) toDispatch(model string) *dispatch.Request {
	return &dispatch.Request{
		Model:         model,
		Text:          r.Text,
		VoiceID:       r.VoiceID,
		Language:      r.Language,
		Format:        r.Format,
		SampleRate:    r.SampleRate,
		Speed:         r.Speed,
		Pitch:         r.Pitch,
		Volume:        r.Volume,
		ModelParams:   r.ModelParams,
		Normalize:     r.Normalize,
		RemoveSilence: r.RemoveSilence,
	}
}

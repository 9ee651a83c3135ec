package dispatch

// Request is the validated synthesis payload forwarded to a backend.
// The boundary layer constructs it after schema validation and injects the
// resolved model name; the JSON body sent to the backend carries the model
// field alongside the synthesis parameters.
type Request struct {
	// Model is the logical model name, injected by the gateway so the
	// backend knows which model the request was routed for.
	Model string `json:"model"`

	// Text is the text to synthesize.
	Text string `json:"text"`

	// VoiceID selects a voice, when the backend supports more than one.
	VoiceID string `json:"voice_id,omitempty"`

	// Language is the synthesis language code ("en" or "en-US" form).
	Language string `json:"language,omitempty"`

	// Format is the output audio format (wav, mp3, ogg, flac).
	Format string `json:"format"`

	// SampleRate is the output sample rate in Hz.
	SampleRate int `json:"sample_rate"`

	// Speed is the speech speed multiplier.
	Speed float64 `json:"speed"`

	// Pitch is the pitch multiplier.
	Pitch float64 `json:"pitch"`

	// Volume is the volume multiplier.
	Volume float64 `json:"volume"`

	// ModelParams carries model-specific parameters opaque to the gateway.
	ModelParams map[string]interface{} `json:"model_params,omitempty"`

	// Normalize requests audio normalization from the backend.
	Normalize bool `json:"normalize"`

	// RemoveSilence requests trimming of leading/trailing silence.
	RemoveSilence bool `json:"remove_silence"`
}

// Result is a backend's successful synthesis response. Fields are carried
// through exactly as the backend returned them; the gateway does not
// reinterpret audio payloads or metadata.
type Result struct {
	// Success reports whether generation succeeded.
	Success bool `json:"success"`

	// AudioData is the base64-encoded audio payload.
	AudioData string `json:"audio_data,omitempty"`

	// AudioFormat is the format of the audio payload.
	AudioFormat string `json:"audio_format"`

	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`

	// SampleRate is the audio sample rate in Hz.
	SampleRate int `json:"sample_rate"`

	// ModelUsed is the model that generated the audio.
	ModelUsed string `json:"model_used"`

	// VoiceUsed is the voice that was used, if reported.
	VoiceUsed string `json:"voice_used,omitempty"`

	// Language is the language used for synthesis.
	Language string `json:"language,omitempty"`

	// ProcessingTime is the backend-reported processing time in seconds.
	ProcessingTime float64 `json:"processing_time,omitempty"`

	// TextLength is the length of the synthesized text.
	TextLength int `json:"text_length"`

	// Error carries a backend-reported error message when Success is false.
	Error string `json:"error,omitempty"`

	// Warnings lists non-fatal issues reported by the backend.
	Warnings []string `json:"warnings,omitempty"`
}

// Outcome is the tagged result of a dispatch: exactly one of Result or
// Failure is set.
type Outcome struct {
	// Result is the backend's response when the dispatch succeeded.
	Result *Result

	// Failure is the classified failure when the dispatch did not succeed.
	Failure *Failure
}

// OK reports whether the dispatch succeeded.
func (o *Outcome) OK() bool {
	return o.Failure == nil
}

// succeed wraps a backend result in a success outcome.
func succeed(result *Result) *Outcome {
	return &Outcome{Result: result}
}

// fail wraps a classified failure in a failure outcome.
func fail(failure *Failure) *Outcome {
	return &Outcome{Failure: failure}
}

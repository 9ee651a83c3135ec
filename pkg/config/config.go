package config

import "time"

// Config is the root configuration structure for the TTS gateway.
// It contains all configuration sections for the HTTP server, backend
// endpoints, dispatch behavior, health probing, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and CORS settings.
	Server ServerConfig `yaml:"server"`

	// Backends maps logical model names to their backend configuration.
	// Keys are model names (e.g., "kokkoro", "chatterbox"). An entry with
	// an empty endpoint is a known model that is not configured, which is
	// reported differently from a model that is absent from this map.
	Backends map[string]BackendConfig `yaml:"backends"`

	// Dispatch contains request forwarding configuration including
	// timeouts for the generation and streaming paths.
	Dispatch DispatchConfig `yaml:"dispatch"`

	// Health contains health probing configuration.
	Health HealthConfig `yaml:"health"`

	// Telemetry contains observability configuration for logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the gateway HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the gateway to listen on.
	// Format: "host:port" (e.g., "0.0.0.0:8000").
	// Default: "0.0.0.0:8000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. This must comfortably exceed the streaming dispatch
	// timeout or long streams will be cut off.
	// Default: 180s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown before in-flight requests are dropped.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins for CORS requests.
	// Use ["*"] to allow all origins.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed HTTP headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the maximum age (in seconds) for preflight request cache.
	// Default: 3600
	MaxAge int `yaml:"max_age"`

	// AllowCredentials controls whether credentials are allowed in
	// CORS requests.
	// Default: false
	AllowCredentials bool `yaml:"allow_credentials"`
}

// BackendConfig contains configuration for a single synthesis backend.
type BackendConfig struct {
	// Endpoint is the base URL of the backend service
	// (e.g., "http://kokkoro:8001"). An empty endpoint marks the model
	// as known but not configured; requests for it are rejected with a
	// service-unavailable outcome instead of an unknown-model outcome.
	Endpoint string `yaml:"endpoint"`
}

// DispatchConfig contains configuration for request forwarding.
type DispatchConfig struct {
	// Timeout is the maximum duration for a non-streaming generation
	// request to a backend.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// StreamTimeout is the maximum duration for a streaming generation
	// request to a backend. Streams are slower to complete than regular
	// generations, so this is longer than Timeout.
	// Default: 120s
	StreamTimeout time.Duration `yaml:"stream_timeout"`

	// MaxRetries is reserved for a future retry layer. The dispatcher
	// currently makes exactly one forwarding attempt per request and no
	// code path consults this value.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`
}

// HealthConfig contains configuration for backend health probing.
type HealthConfig struct {
	// ProbeTimeout is the maximum duration for a single liveness probe
	// against one backend.
	// Default: 5s
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// SweepEnabled controls whether the background health sweep runs.
	// Health endpoints always probe on demand regardless of this setting.
	// Default: true
	SweepEnabled bool `yaml:"sweep_enabled"`

	// SweepSchedule is the cron schedule for background health sweeps
	// that feed the backend health metrics.
	// Default: "@every 30s"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path where metrics are exposed.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	// Default: "tts"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`
}

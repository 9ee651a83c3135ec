package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "0.0.0.0:8000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 180 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// CORS defaults
	DefaultCORSEnabled          = true
	DefaultCORSMaxAge           = 3600 // 1 hour
	DefaultCORSAllowCredentials = false

	// Dispatch defaults
	DefaultDispatchTimeout = 60 * time.Second
	DefaultStreamTimeout   = 120 * time.Second
	DefaultMaxRetries      = 3

	// Health defaults
	DefaultProbeTimeout  = 5 * time.Second
	DefaultSweepEnabled  = true
	DefaultSweepSchedule = "@every 30s"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "tts"
	DefaultMetricsSubsystem = "gateway"
)

// DefaultBackendNames is the registry population used when no backends
// section is present in the configuration file. Both models are declared
// but unconfigured until their endpoints are supplied, matching the fixed
// model set the gateway has always fronted.
var DefaultBackendNames = []string{"kokkoro", "chatterbox"}

// Default returns a configuration populated entirely from defaults.
// Backend endpoints still need to be supplied via the configuration file
// or environment variables before any model becomes dispatchable.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for any configuration fields that
// are unset (zero values). It is called after parsing the YAML file and
// before validation.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// CORS defaults. Enabled defaults to true only when the whole CORS
	// section was omitted; an explicit "enabled: false" is preserved.
	if cfg.Server.CORS.AllowedOrigins == nil && cfg.Server.CORS.AllowedMethods == nil &&
		cfg.Server.CORS.AllowedHeaders == nil && !cfg.Server.CORS.Enabled {
		cfg.Server.CORS.Enabled = DefaultCORSEnabled
	}
	if cfg.Server.CORS.AllowedOrigins == nil {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.CORS.AllowedMethods == nil {
		cfg.Server.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if cfg.Server.CORS.AllowedHeaders == nil {
		cfg.Server.CORS.AllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Backend defaults: when no backends are declared, register the
	// built-in model set as known-but-unconfigured.
	if cfg.Backends == nil {
		cfg.Backends = make(map[string]BackendConfig, len(DefaultBackendNames))
		for _, name := range DefaultBackendNames {
			cfg.Backends[name] = BackendConfig{}
		}
	}

	// Dispatch defaults
	if cfg.Dispatch.Timeout == 0 {
		cfg.Dispatch.Timeout = DefaultDispatchTimeout
	}
	if cfg.Dispatch.StreamTimeout == 0 {
		cfg.Dispatch.StreamTimeout = DefaultStreamTimeout
	}
	if cfg.Dispatch.MaxRetries == 0 {
		cfg.Dispatch.MaxRetries = DefaultMaxRetries
	}

	// Health defaults
	if cfg.Health.ProbeTimeout == 0 {
		cfg.Health.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Health.SweepSchedule == "" {
		cfg.Health.SweepEnabled = DefaultSweepEnabled
		cfg.Health.SweepSchedule = DefaultSweepSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

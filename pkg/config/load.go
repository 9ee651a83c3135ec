package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that behavior.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. If the file does not exist the
// built-in defaults are used as the base, so the gateway can run from
// environment variables alone.
//
// The loading sequence is:
//  1. Load YAML from file (or defaults when the file is absent)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg = Default()
	} else {
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format TTSGW_SECTION_FIELD. Backend
// endpoints additionally honor the bare <NAME>_ENDPOINT spelling
// (e.g., KOKKORO_ENDPOINT) used by existing deployments.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("TTSGW_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("TTSGW_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("TTSGW_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Backend endpoint overrides for every registered model name.
	for name, backend := range cfg.Backends {
		upper := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		if val := os.Getenv("TTSGW_BACKEND_" + upper + "_ENDPOINT"); val != "" {
			backend.Endpoint = val
			cfg.Backends[name] = backend
			continue
		}
		if val := os.Getenv(upper + "_ENDPOINT"); val != "" {
			backend.Endpoint = val
			cfg.Backends[name] = backend
		}
	}

	// Dispatch overrides
	if val := os.Getenv("TTSGW_DISPATCH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Dispatch.Timeout = d
		}
	}
	if val := os.Getenv("TTSGW_DISPATCH_STREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Dispatch.StreamTimeout = d
		}
	}

	// Health overrides
	if val := os.Getenv("TTSGW_HEALTH_PROBE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Health.ProbeTimeout = d
		}
	}
	if val := os.Getenv("TTSGW_HEALTH_SWEEP_SCHEDULE"); val != "" {
		cfg.Health.SweepSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("TTSGW_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("TTSGW_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}

package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := Default()
	backend := cfg.Backends["kokkoro"]
	backend.Endpoint = "http://kokkoro:8001"
	cfg.Backends["kokkoro"] = backend
	return cfg
}

func TestValidateValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "missing listen address",
			mutate: func(c *Config) { c.Server.ListenAddress = "" },
			field:  "server.listen_address",
		},
		{
			name:   "negative read timeout",
			mutate: func(c *Config) { c.Server.ReadTimeout = -1 },
			field:  "server.read_timeout",
		},
		{
			name:   "no backends",
			mutate: func(c *Config) { c.Backends = map[string]BackendConfig{} },
			field:  "backends",
		},
		{
			name: "endpoint without scheme",
			mutate: func(c *Config) {
				c.Backends["kokkoro"] = BackendConfig{Endpoint: "kokkoro:8001"}
			},
			field: "backends.kokkoro.endpoint",
		},
		{
			name:   "zero dispatch timeout",
			mutate: func(c *Config) { c.Dispatch.Timeout = 0 },
			field:  "dispatch.timeout",
		},
		{
			name:   "negative max retries",
			mutate: func(c *Config) { c.Dispatch.MaxRetries = -1 },
			field:  "dispatch.max_retries",
		},
		{
			name:   "zero probe timeout",
			mutate: func(c *Config) { c.Health.ProbeTimeout = 0 },
			field:  "health.probe_timeout",
		},
		{
			name: "sweeps enabled without schedule",
			mutate: func(c *Config) {
				c.Health.SweepEnabled = true
				c.Health.SweepSchedule = ""
			},
			field: "health.sweep_schedule",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			field:  "telemetry.logging.level",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			field:  "telemetry.logging.format",
		},
		{
			name:   "metrics path without slash",
			mutate: func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			field:  "telemetry.metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var valErr ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}

			found := false
			for _, fieldErr := range valErr.Errors {
				if fieldErr.Field == tt.field {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.field, valErr.Errors)
			}
		})
	}
}

func TestValidateUnconfiguredEndpointIsValid(t *testing.T) {
	cfg := validConfig()
	cfg.Backends["chatterbox"] = BackendConfig{Endpoint: ""}

	if err := Validate(cfg); err != nil {
		t.Errorf("declared-but-unconfigured backend must validate, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}}

	msg := err.Error()
	if !strings.Contains(msg, "2 errors") {
		t.Errorf("expected error count in message, got %q", msg)
	}
	if !strings.Contains(msg, "a: first") || !strings.Contains(msg, "b: second") {
		t.Errorf("expected all field errors listed, got %q", msg)
	}
}

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides access to
// all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any validation rules fail. All validation errors are
// collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateBackends(cfg.Backends)...)
	errs = append(errs, validateDispatch(&cfg.Dispatch)...)
	errs = append(errs, validateHealth(&cfg.Health)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "must not be negative",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "must not be negative",
		})
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "must be positive",
		})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "must not be negative",
		})
	}

	return errs
}

func validateBackends(backends map[string]BackendConfig) []FieldError {
	var errs []FieldError

	if len(backends) == 0 {
		errs = append(errs, FieldError{
			Field:   "backends",
			Message: "at least one backend must be declared",
		})
		return errs
	}

	for name, backend := range backends {
		if name == "" {
			errs = append(errs, FieldError{
				Field:   "backends",
				Message: "backend name must not be empty",
			})
			continue
		}

		// Empty endpoint means declared-but-unconfigured, which is valid.
		if backend.Endpoint == "" {
			continue
		}

		u, err := url.Parse(backend.Endpoint)
		if err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("backends.%s.endpoint", name),
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("backends.%s.endpoint", name),
				Message: "endpoint must start with http:// or https://",
			})
		}
		if u.Host == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("backends.%s.endpoint", name),
				Message: "endpoint must include a host",
			})
		}
	}

	return errs
}

func validateDispatch(cfg *DispatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "dispatch.timeout",
			Message: "must be positive",
		})
	}
	if cfg.StreamTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "dispatch.stream_timeout",
			Message: "must be positive",
		})
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, FieldError{
			Field:   "dispatch.max_retries",
			Message: "must not be negative",
		})
	}

	return errs
}

func validateHealth(cfg *HealthConfig) []FieldError {
	var errs []FieldError

	if cfg.ProbeTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "health.probe_timeout",
			Message: "must be positive",
		})
	}
	if cfg.SweepEnabled && cfg.SweepSchedule == "" {
		errs = append(errs, FieldError{
			Field:   "health.sweep_schedule",
			Message: "required when sweeps are enabled",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q (must be json or text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "must start with /",
		})
	}

	return errs
}

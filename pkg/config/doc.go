// Package config provides configuration loading, validation, and defaults
// for the TTS gateway.
//
// Configuration is loaded from a YAML file and can be overridden with
// environment variables using the TTSGW_SECTION_FIELD naming convention.
// Backend endpoints additionally honor the bare <NAME>_ENDPOINT spelling
// (e.g., KOKKORO_ENDPOINT) for compatibility with existing deployments.
//
// The loading sequence is: parse YAML, apply defaults, apply environment
// overrides, validate. Validation collects all field errors rather than
// stopping at the first one.
//
// Example:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.ListenAddress)
package config

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aparna0112/tts-systems/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the configuration file without starting the server.

Environment variable overrides are applied before validation, so the
result reflects the configuration the server would actually run with.

Examples:
  ttsgateway validate
  ttsgateway validate --config /etc/ttsgateway/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}

		fmt.Println("✓ Configuration valid")
		fmt.Printf("  listen address: %s\n", cfg.Server.ListenAddress)
		for name, backend := range cfg.Backends {
			endpoint := backend.Endpoint
			if endpoint == "" {
				endpoint = "(not configured)"
			}
			fmt.Printf("  backend %s: %s\n", name, endpoint)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ttsgateway",
	Short: "TTS Gateway - dispatch gateway for speech synthesis backends",
	Long: `TTS Gateway fronts a fleet of text-to-speech backends behind a single
HTTP surface. It routes synthesis requests by model name, negotiates
streaming delivery with transparent fallback, and aggregates backend
health into one service-wide view.

Endpoints:
  - POST /tts/{model}          synthesize audio
  - POST /tts/{model}/stream   synthesize audio, streamed when supported
  - GET  /health               aggregate service health
  - GET  /models               backend configuration overview
  - GET  /metrics              Prometheus metrics`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

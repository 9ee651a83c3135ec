package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aparna0112/tts-systems/pkg/backends"
	"github.com/Aparna0112/tts-systems/pkg/config"
	"github.com/Aparna0112/tts-systems/pkg/dispatch"
	"github.com/Aparna0112/tts-systems/pkg/gateway"
	"github.com/Aparna0112/tts-systems/pkg/health"
	"github.com/Aparna0112/tts-systems/pkg/server"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/logging"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/metrics"
	"github.com/Aparna0112/tts-systems/pkg/telemetry/stats"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watchConfig   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the TTS gateway server",
	Long: `Start the TTS gateway server with the specified configuration.

The gateway listens on the configured address and forwards synthesis
requests to the backend matching the requested model name.

Examples:
  # Start with default config
  ttsgateway run

  # Start with custom config
  ttsgateway run --config /etc/ttsgateway/config.yaml

  # Override listen address
  ttsgateway run --listen 0.0.0.0:9000

  # Validate config without starting the server
  ttsgateway run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.watchConfig, "watch-config", true, "revalidate the config file when it changes on disk")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// Shared HTTP client for dispatches and probes, created once here and
	// released once on shutdown. Per-call timeouts come from contexts, so
	// the client itself carries none.
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	defer client.CloseIdleConnections()

	registry := backends.NewRegistry(cfg.Backends)
	prober := backends.NewProber(client, cfg.Health.ProbeTimeout)
	counters := stats.NewCounters()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	dispatcher := dispatch.NewDispatcher(registry, client, counters, collector, cfg.Dispatch.Timeout)
	negotiator := dispatch.NewNegotiator(dispatcher, client, cfg.Dispatch.StreamTimeout)
	aggregator := health.NewAggregator(registry, prober, counters, collector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Verify backend reachability at startup. Failures are logged, not
	// fatal; backends may come up after the gateway does.
	verifyBackends(ctx, aggregator)

	monitor := health.NewMonitor(aggregator, cfg.Health)
	if err := monitor.Start(ctx); err != nil {
		slog.Warn("failed to start background health sweeps", "error", err)
	} else {
		defer monitor.Stop()
	}

	if runFlags.watchConfig {
		watcher, err := config.NewWatcher(cfgFile, slog.Default())
		if err != nil {
			slog.Warn("config watcher unavailable", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					slog.Warn("config watcher stopped", "error", err)
				}
			}()
			defer watcher.Stop()
		}
	}

	sampler, err := stats.NewSystemSampler()
	if err != nil {
		slog.Warn("host resource stats unavailable", "error", err)
	}

	gatewayHandlers := gateway.NewHandlers(registry, dispatcher, negotiator)
	healthHandlers := health.NewHandlers(aggregator, counters, sampler)

	srv := server.NewServer(cfg, gatewayHandlers, healthHandlers, collector)

	slog.Info("starting TTS gateway",
		"address", cfg.Server.ListenAddress,
		"models", registry.Names(),
	)

	return srv.Start(ctx)
}

// verifyBackends runs one aggregation pass at startup and logs each
// backend's reachability.
func verifyBackends(ctx context.Context, aggregator *health.Aggregator) {
	snapshot := aggregator.Aggregate(ctx)
	for name, record := range snapshot.Models {
		switch {
		case !record.Configured:
			slog.Warn("backend not configured", "model", name)
		case record.Healthy:
			slog.Info("backend reachable", "model", name, "endpoint", record.Endpoint)
		default:
			slog.Warn("backend unreachable at startup",
				"model", name,
				"endpoint", record.Endpoint,
			)
		}
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/scoreboard-service/internal/config"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := serveCmd()
	root := &cobra.Command{
		Use:          "scoreboard",
		Short:        "Multi-league live score aggregation service",
		Version:      appVersion,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, fetchCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the acquisition loop, HTTP API and metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server.New(cfg, logger).Run(ctx, stop)
			return nil
		},
	}
}

func fetchCmd() *cobra.Command {
	var leagues string
	var pretty bool
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one acquisition cycle and print the notifications as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			if leagues != "" {
				if cfg.Leagues, err = config.ParseLeagues(leagues); err != nil {
					return err
				}
			}
			cfg.Metrics.Enabled = false

			out, err := server.New(cfg, logger).RunOnce(cmd.Context())
			if err != nil {
				logging.Warn(logger, "fetch cycle finished with errors", "error", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&leagues, "leagues", "", "override LEAGUES for this run (comma list or all)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func load() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading configuration: %w", err)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "scoreboard-service",
		Version: appVersion,
		Output:  os.Stderr,
	})
	return cfg, logger, nil
}

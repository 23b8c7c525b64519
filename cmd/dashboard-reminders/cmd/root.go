package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dashboard-reminders/internal/app"
	"dashboard-reminders/internal/core/logger"

	"github.com/spf13/cobra"
)

var (
	// configPath is the directory holding the .env file.
	configPath string

	// rootCmd runs the HTTP server when no subcommand is given.
	rootCmd = &cobra.Command{
		Use:   "dashboard-reminders",
		Short: "Serve the feature activation reminders of the Ceph dashboard.",
		Long: `Tracks whether the Call Home and Storage Insights reminders should be shown,
lets operators mute them and drives the Call Home activation dialog.

Configuration is read from a .env file in --config and from the environment.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default).",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
)

// Execute runs the CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing the .env file")
	rootCmd.AddCommand(serveCmd, checkCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a, err := build(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer a.Close()

	return a.Serve(ctx)
}

func build(ctx context.Context) (*app.App, error) {
	a, err := app.Build(ctx, app.Options{ConfigPath: configPath})
	if err != nil {
		return nil, fmt.Errorf("startup: %w", err)
	}
	return a, nil
}

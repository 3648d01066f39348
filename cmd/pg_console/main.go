package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/spf13/cobra"
)

// @title PG Console API
// @version 1.0
// @description Role-filtered data sync and mutations for the PG property console.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var cfg *config.Config
	rootCmd := &cobra.Command{
		Use:           "pg_console",
		Short:         "PG property console backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return nil
		},
	}
	// Subcommands read cfg after PersistentPreRunE has filled it.
	getConfig := func() *config.Config { return cfg }

	rootCmd.AddCommand(
		serveCmd(getConfig, logger),
		migrateCmd(getConfig, logger),
		tokenCmd(getConfig),
		demoCmd(getConfig, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"log/slog"

	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/SscSPs/pg_console/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd(getConfig func() *config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := getConfig()
				return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert the last applied migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := getConfig()
				return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateDown, logger)
			},
		},
	)
	return cmd
}

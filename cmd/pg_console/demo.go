package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/SscSPs/pg_console/internal/repositories/demo"
	"github.com/spf13/cobra"
)

// openDemoStore builds the demo store over the configured key-value backend.
// The returned func releases the backend.
func openDemoStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*demo.Store, func(), error) {
	if cfg.DemoStore != config.DemoStoreRedis {
		return demo.NewStore(demo.NewMemoryKV()), func() {}, nil
	}
	client, err := demo.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect demo redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("Demo store uses redis", slog.String("addr", cfg.RedisAddr), slog.Int("db", cfg.RedisDB))
	return demo.NewStore(demo.NewRedisKV(client)), func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close demo redis client", slog.String("error", err.Error()))
		}
	}, nil
}

func demoCmd(getConfig func() *config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Manage the demo dataset",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove the demo dataset and seed it again",
		Long:  "Only meaningful with DEMO_STORE=redis; the memory store is rebuilt on every start.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openDemoStore(cmd.Context(), getConfig(), logger)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset demo store: %w", err)
			}
			if _, err := store.Seed(cmd.Context(), time.Now()); err != nil {
				return fmt.Errorf("seed demo store: %w", err)
			}
			logger.Info("Demo store reset")
			return nil
		},
	})
	return cmd
}

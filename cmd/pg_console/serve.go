package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/core/services"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
	"github.com/SscSPs/pg_console/internal/handlers"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/SscSPs/pg_console/internal/repositories/database/pgsql"
	"github.com/SscSPs/pg_console/internal/session"
	"github.com/SscSPs/pg_console/internal/utils"
	"github.com/SscSPs/pg_console/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(getConfig func() *config.Config, logger *slog.Logger) *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			if migrateFirst {
				if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	demoStore, closeDemo, err := openDemoStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDemo()
	if seeded, err := demoStore.Seed(ctx, time.Now()); err != nil {
		return fmt.Errorf("seed demo store: %w", err)
	} else if seeded {
		logger.Info("Demo store seeded", slog.String("kv", cfg.DemoStore))
	}

	fetchOpts := fetch.Options{CacheSize: cfg.FetchCacheSize, CacheTTL: cfg.FetchCacheTTL}
	svcOpts := []services.ServiceOption{services.WithMetrics(m), services.WithEventSink(posthogClient)}
	sessions := session.NewManager(
		session.NewBackend("live", pgsql.NewRepositoryProvider(dbPool), fetchOpts, m, svcOpts...),
		session.NewBackend("demo", demoStore.Provider(), fetchOpts, m, svcOpts...),
		snapshot.Config{
			MinInterval:    cfg.LoadMinInterval,
			DebounceWindow: cfg.LoadDebounceWindow,
			FetchTimeout:   cfg.LoadFetchTimeout,
		},
		session.WithMetrics(m),
		session.WithLogger(logger))
	defer sessions.Close()

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(limiter),
		middleware.PosthogMiddleware(posthogClient),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, handlers.Dependencies{
		Sessions: sessions,
		Metrics:  m,
		Posthog:  posthogClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", slog.Int("open_sessions", sessions.Len()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

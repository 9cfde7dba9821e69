package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/cache"
	portscache "github.com/SscSPs/mei_retail_app/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	"github.com/SscSPs/mei_retail_app/internal/core/services"
	"github.com/SscSPs/mei_retail_app/internal/handlers"
	"github.com/SscSPs/mei_retail_app/internal/jobs"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/SscSPs/mei_retail_app/internal/platform/config"
	"github.com/SscSPs/mei_retail_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/mei_retail_app/internal/repositories/memory"
	"github.com/SscSPs/mei_retail_app/pkg/database"
	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func newServeCmd(logger *slog.Logger) *cobra.Command {
	var skipMigrations bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !skipMigrations {
				if err := runMigrations(logger, cfg, func(m *migrate.Migrate) error { return m.Up() }); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), logger, cfg)
		},
	}
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
	return serveCmd
}

func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	reportCache, closeCache := openReportCache(ctx, logger, cfg)
	defer closeCache()

	serviceContainer := services.NewServiceContainer(cfg, repos, reportCache)

	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.AddJob(cfg.CacheWarmSchedule, jobs.NewReportWarmer(serviceContainer.Owner, serviceContainer.Reporting)); err != nil {
		return fmt.Errorf("failed to schedule report cache warm-up: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage_backend", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, logger *slog.Logger, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// openReportCache prefers Redis when configured and reachable. Reports are
// always recomputable, so an unreachable Redis only degrades to the
// in-process cache.
func openReportCache(ctx context.Context, logger *slog.Logger, cfg *config.Config) (portscache.ReportCache, func()) {
	if cfg.ReportCacheTTL <= 0 {
		return cache.NoopReportCache{}, func() {}
	}
	if cfg.RedisAddr == "" {
		return cache.NewMemoryReportCache(nil), func() {}
	}

	redisCache := cache.NewRedisReportCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("Redis unavailable, using in-process report cache", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		_ = redisCache.Close()
		return cache.NewMemoryReportCache(nil), func() {}
	}
	logger.Info("Report cache connected to Redis", slog.String("addr", cfg.RedisAddr))
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	}
}

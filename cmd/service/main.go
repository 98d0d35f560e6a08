// Package main is the entry point for the notekeeper service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/notekeeper/internal/adapters/http"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/handlers"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/middleware"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/views"
	"github.com/jsamuelsen/notekeeper/internal/adapters/storage/memory"
	"github.com/jsamuelsen/notekeeper/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/notekeeper/internal/app"
	"github.com/jsamuelsen/notekeeper/internal/platform/config"
	"github.com/jsamuelsen/notekeeper/internal/platform/logging"
	"github.com/jsamuelsen/notekeeper/internal/platform/metrics"
	"github.com/jsamuelsen/notekeeper/internal/platform/telemetry"
	"github.com/jsamuelsen/notekeeper/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// metricsNamespace prefixes every Prometheus metric the service exports.
const metricsNamespace = "notekeeper"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry and Prometheus metrics
	healthRegistry := ports.NewHealthRegistry()
	appMetrics := metrics.New(prometheus.DefaultRegisterer, metricsNamespace)

	// 6. Open the note store
	store, closeStore, err := openStore(ctx, &cfg.Storage, logger, healthRegistry, appMetrics)
	if err != nil {
		return err
	}
	defer closeStore()

	// 7. Create note service (application layer)
	noteService := app.NewNoteService(app.NoteServiceConfig{
		Store:   store,
		Logger:  logger,
		Metrics: appMetrics,
	})

	// 8. Create handlers
	renderer, err := views.New(cfg.App.Name)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	routerCfg := http.RouterConfig{
		ServiceName:   cfg.Telemetry.ServiceName,
		Renderer:      renderer,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, buildInfo),
		Pages: handlers.NewNoteHTMLHandler(noteService, handlers.Messages{
			Created: cfg.Messages.Created,
			Updated: cfg.Messages.Updated,
			Deleted: cfg.Messages.Deleted,
		}),
		API:            handlers.NewNoteAPIHandler(noteService),
		RequestTimeout: cfg.Server.RequestTimeout,
	}

	if cfg.RateLimit.Enabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		})
	}

	if cfg.CORS.Enabled {
		routerCfg.CORS = &middleware.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxAge:         cfg.CORS.MaxAge,
		}
	}

	// 9. Create HTTP server and router
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), routerCfg)

	// 10. Serve until a shutdown signal or a server error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// openStore builds the configured note store. SQL stores are registered as
// a readiness check and export connection pool metrics; the returned func
// closes them.
func openStore(
	ctx context.Context,
	cfg *config.StorageConfig,
	logger *slog.Logger,
	registry ports.HealthRegistry,
	m *metrics.Metrics,
) (ports.NoteStore, func(), error) {
	if cfg.Driver == config.StorageDriverMemory {
		logger.Warn("using in-memory note store, notes are lost on restart")
		return memory.New(), func() {}, nil
	}

	store, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:          sqlstore.Dialect(cfg.Driver),
		DSN:             cfg.DSN,
		EncryptionKey:   cfg.EncryptionKey,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnectRetries:  cfg.ConnectRetries,
		RetryBackoff:    cfg.RetryBackoff,
		Logger:          logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening note store: %w", err)
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Error("closing note store", slog.Any("error", err))
		}
	}

	if err := registry.Register(store); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("registering note store health check: %w", err)
	}

	if err := m.RegisterDBStats(store.DB()); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("registering db stats: %w", err)
	}

	logger.Info("note store ready",
		slog.String("driver", cfg.Driver),
		slog.Bool("encrypted", cfg.EncryptionKey != ""),
	)

	return store, closeStore, nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/config"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/logging"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/metrics"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/refdata"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/store"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("configuration loaded", "config", cfg.String())

	ref, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		logger.Error("failed to load reference data", "error", err, "path", cfg.RefData.Path)
		os.Exit(1)
	}
	logger.Info("reference data loaded", "branches", len(ref.Branches), "officers", len(ref.Officers))

	pipelineOpts := []core.PipelineOption{
		core.WithTransformer(core.NewTransformer(ref.Branches, ref.Officers)),
		core.WithLogger(logger),
		core.WithWorkers(cfg.Pipeline.Workers),
		core.WithAutoCorrect(cfg.Pipeline.AutoCorrect),
		core.WithSampleSize(cfg.Pipeline.SampleSize),
	}

	var m *metrics.Manager
	if cfg.Metrics.Enabled {
		m = metrics.NewManager(metrics.WithNamespace(cfg.Metrics.Namespace))
		pipelineOpts = append(pipelineOpts, core.WithObserver(m))
	}

	serviceOpts := []core.ServiceOption{
		core.WithLimiter(core.NewRunLimiter(cfg.Pipeline.MaxConcurrent, cfg.Pipeline.MaxWaitTime)),
		core.WithRunTimeout(cfg.Pipeline.Timeout),
		core.WithRetainedRuns(cfg.Pipeline.RetainedRuns),
		core.WithServiceLogger(logger),
	}

	ctx := context.Background()
	if cfg.Database.Enabled() {
		pool, err := connect(ctx, &cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		st := store.New(pool)
		if cfg.Database.Migrate {
			if err := st.Migrate(ctx); err != nil {
				logger.Error("failed to migrate database", "error", err)
				os.Exit(1)
			}
		}
		serviceOpts = append(serviceOpts, core.WithStore(st))
	} else {
		logger.Info("no database configured, runs are kept in memory only")
	}

	service := core.NewService(core.NewPipeline(pipelineOpts...), serviceOpts...)
	server := web.NewServer(service, cfg, m)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.LimiterStatus(); status.Active > 0 {
			logger.Info("waiting for runs to complete", "active", status.Active)
			if err := service.Drain(shutdownCtx); err != nil {
				logger.Warn("runs did not complete in time", "error", err)
			} else {
				logger.Info("all runs completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
}

// connect opens and verifies the connection pool.
func connect(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}

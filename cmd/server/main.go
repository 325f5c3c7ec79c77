package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/server"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup("info")

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	gate, err := authz.LoadGate(cfg.RolesConfigPath)
	if err != nil {
		slog.Error("failed to load role rights", "path", cfg.RolesConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("role rights loaded", "roles", gate.Roles())

	repo, err := openRepository(cfg)
	if err != nil {
		slog.Error("storage initialization failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	sinks := []slog.Handler{logging.NewJSONHandler(os.Stdout, cfg.LogLevel)}

	// system_logs persistence (ERROR+ async batch), postgres only
	var dbLogHandler *logging.DBHandler
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	if cfg.DBDriver == config.DriverPostgres {
		dbLogHandler = logging.NewDBHandler(database.DB)
		sinks = append(sinks, dbLogHandler)
		logging.StartCleanup(cleanupCtx, database.DB, cfg.LogRetentionDays)
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: cfg.SentryTracesSampleRate,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sinks = append(sinks, logging.NewSentryHandler(sentry.CurrentHub()))
			defer sentry.Flush(2 * time.Second)
		}
	}

	slog.SetDefault(slog.New(logging.NewContextHandler(logging.NewMultiHandler(sinks...))))

	app := server.New(cfg, gate, repo, config.NewValidator())

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stopCleanup()
	if dbLogHandler != nil {
		dbLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	database.Close(ctx)

	slog.Info("server stopped")
}

func openRepository(cfg *config.Config) (repository.ReportRepository, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		if cfg.DBPassword == "" {
			slog.Warn("DB_PASSWORD is empty")
		}
		if err := database.Connect(cfg); err != nil {
			return nil, err
		}
		if err := database.Migrate(); err != nil {
			return nil, err
		}
		return repository.NewGormReportRepository(database.DB), nil

	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
		defer cancel()
		if err := database.ConnectMongo(ctx, cfg); err != nil {
			return nil, err
		}
		repo := repository.NewMongoReportRepository(database.Mongo, cfg.MongoDatabase)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case config.DriverMemory:
		slog.Warn("using in-memory storage, reports are lost on restart")
		return repository.NewMemoryReportRepository(), nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

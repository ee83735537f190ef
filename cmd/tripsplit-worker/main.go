package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tripsplit/internal/amqp"
	"tripsplit/internal/config"
	"tripsplit/internal/export"
	exportgoogle "tripsplit/internal/export/google"
	exportmemory "tripsplit/internal/export/memory"
	applog "tripsplit/internal/log"
	"tripsplit/internal/rates"
	"tripsplit/internal/services"
	"tripsplit/internal/store"
	"tripsplit/internal/store/memory"
	"tripsplit/internal/store/sqlite"
	"tripsplit/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	slog.SetDefault(logger.Logger)

	logger.Info("Starting tripsplit-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	var st store.TripStore
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		st = repo
	default:
		// The worker reads ledgers written by the server; a private
		// in-memory store is only useful for local smoke runs.
		st = memory.New()
		logger.Warn("Memory backend selected - worker will not see server data")
	}

	var exporter export.SnapshotExporter
	switch cfg.ExportBackend {
	case "sheets":
		cli, err := exportgoogle.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = cli
		logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	case "memory":
		exporter = exportmemory.New()
		logger.Info("Memory exporter initialized")
	default:
		logger.Error("No export backend configured - set EXPORT_BACKEND to 'sheets' or 'memory'")
		os.Exit(1)
	}

	provider := rates.NewFileProvider(cfg.RatesFile)
	svc := services.NewTripService(st, nil, provider, cfg.Tolerances())
	defer svc.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(svc, exporter, cfg.DisplayCurrency)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Consuming expense events", "queue", cfg.AMQPQueue)
	err = amqpClient.ConsumeExpenseEvents(ctx, func(msg *amqp.ExpenseEventMessage) error {
		return exportWorker.HandleExpenseEvent(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}

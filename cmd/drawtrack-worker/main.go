// drawtrack-worker consumes mirror-sync requests from AMQP and pushes the
// entity store into the Google Sheets mirror. It shares the SQLite database
// with the server, so it only runs with the sqlite backend.
package main

import (
	"context"
	"errors"
	"os"

	"drawtrack/internal/amqp"
	"drawtrack/internal/cli"
	"drawtrack/internal/services"
	gsheet "drawtrack/internal/sheets/google"
	"drawtrack/internal/store/sqlite"
	"drawtrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.DataBackend != "sqlite" {
		logger.Error("drawtrack-worker requires DATA_BACKEND=sqlite, the memory backend is not shared across processes")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("drawtrack-worker requires AMQP_URL, without it the server consumes syncs in-process")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	entityStore, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer entityStore.Close()

	sheetsClient, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncService := services.NewSyncService(entityStore, sheetsClient)
	syncWorker := worker.NewSyncWorker(syncService, amqpClient, cfg.SyncInterval)

	// Push once on startup so requests missed while the worker was down are
	// repaired immediately.
	if _, err := syncService.SyncAll(ctx); err != nil {
		logger.Error("Startup mirror sync failed", "error", err)
	}

	logger.Info("Starting drawtrack-worker",
		"queue", cfg.AMQPQueue,
		"sync_interval", cfg.SyncInterval.String())

	if err := syncWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

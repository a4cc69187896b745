package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"drawtrack/internal/amqp"
	"drawtrack/internal/auth"
	"drawtrack/internal/backend"
	"drawtrack/internal/cli"
	apphttp "drawtrack/internal/http"
	"drawtrack/internal/services"
	"drawtrack/internal/sheets"
	gsheet "drawtrack/internal/sheets/google"
	sheetsmem "drawtrack/internal/sheets/memory"
	"drawtrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	// Entity storage
	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:         backend.BackendType(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Storage cleanup failed", "error", err)
			}
		}()
	}
	entityStore := result.Store

	// Sessions and login
	sessions := auth.NewSessionStore(cfg.SessionTTL)
	authService := auth.NewService(entityStore, sessions, auth.Options{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
		StateSecret:  cfg.SessionSecret,
	}, logger)
	if err := authService.SeedDemoUser(ctx); err != nil {
		logger.Error("Failed to seed demo user", "error", err)
		os.Exit(1)
	}

	// Spreadsheet mirror: real Google Sheets when a spreadsheet is
	// configured, the in-process mirror otherwise.
	var (
		mirrorWriter sheets.MirrorWriter
		mirrorReader sheets.MirrorReader
	)
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirrorWriter, mirrorReader = client, client
		logger.Info("Google Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		m := sheetsmem.New()
		mirrorWriter, mirrorReader = m, m
		logger.Info("Google Sheets disabled, using in-process mirror")
	}
	syncService := services.NewSyncService(entityStore, mirrorWriter)

	// Mirror-sync transport: AMQP when configured, otherwise an in-process
	// queue consumed by this binary. With AMQP the drawtrack-worker binary
	// owns consumption.
	var (
		trigger  services.MirrorTrigger
		consumer worker.SyncConsumer
	)
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		trigger = amqpClient
		logger.Info("AMQP sync transport enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		queue := worker.NewMemoryQueue(cfg.SyncQueueSize)
		trigger = queue
		consumer = queue
		logger.Info("AMQP disabled, using in-process sync queue")
	}

	entryService := services.NewEntryService(entityStore, trigger)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:        ":" + cfg.Port,
		Entries:     entryService,
		Sync:        syncService,
		Mirror:      mirrorReader,
		Auth:        authService,
		Development: cfg.IsDevelopment(),
		Logger:      logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting drawtrack server", "port", cfg.Port, "env", cfg.Env, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if consumer != nil {
		g.Go(func() error {
			syncWorker := worker.NewSyncWorker(syncService, consumer, cfg.SyncInterval)
			if err := syncWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

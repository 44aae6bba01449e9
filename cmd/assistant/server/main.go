package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pantryassistant"
	"pantryassistant/api"
	"pantryassistant/internal/app"
	"pantryassistant/inventory/sqlstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := pantryassistant.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	slog.SetDefault(pantryassistant.NewSlogLogger(cfg.Log, os.Stdout))

	accessLog, err := pantryassistant.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create access logger: %s", err)
	}
	defer accessLog.Sync() // nolint: errcheck

	if err := os.MkdirAll(filepath.Dir(cfg.Assistant.DatabasePath), 0o755); err != nil {
		slog.Error("SETUP: Failed to create database directory", "error", err)
		return
	}
	store, err := sqlstore.Open(cfg.Assistant.DatabasePath, cfg.Log.Development)
	if err != nil {
		slog.Error("SETUP: Failed to open inventory database", "error", err)
		return
	}
	defer store.Close() // nolint: errcheck

	seed, err := app.NewSeedState(ctx, cfg.Assistant)
	if err != nil {
		slog.Error("SETUP: Failed to configure seed source", "error", err)
		return
	}
	if _, err := app.SeedInventory(ctx, store, seed, false); err != nil {
		slog.Error("SETUP: Failed to seed inventory", "error", err)
		return
	}

	journal, cleanup, err := app.OpenJournal(cfg.Assistant.JournalPath)
	if err != nil {
		slog.Error("SETUP: Failed to open command journal", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("Failed to flush command journal", "error", err)
		}
	}()

	opts := app.Options{Store: store, Journal: journal}
	if cfg.Server.OtelEnabled {
		tracerProvider, meterProvider, otelShutdown, err := pantryassistant.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return
		}
		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()
		opts.TracerProvider = tracerProvider
		opts.MeterProvider = meterProvider
	}

	a, err := app.New(ctx, cfg, opts)
	if err != nil {
		slog.Error("SETUP: Failed to assemble services", "error", err)
		return
	}

	services := api.Services{
		Inventory: a.Inventory,
		Planner:   a.Planner,
		Shopping:  a.Shopping,
		Commands:  a.Commands,
		Tools:     a.Tools,
	}
	if a.Notifier != nil {
		services.Notifier = a.Notifier
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(cfg.Server, services, accessLog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		accessLog.Info("Server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("SERVER: Listen failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("SERVER: Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("SERVER: Graceful shutdown failed", "error", err)
	}
}

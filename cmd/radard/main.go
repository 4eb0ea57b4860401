package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onearthlouis/stock-radar/internal/config"
	"github.com/onearthlouis/stock-radar/internal/refresher"
	"github.com/onearthlouis/stock-radar/internal/server"
	"github.com/onearthlouis/stock-radar/internal/service"
	"github.com/onearthlouis/stock-radar/internal/source/radar"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	client := radar.New(radar.Config{
		BaseURL:        cfg.Data.BaseURL,
		Timeout:        cfg.Data.Timeout,
		MaxAttempts:    cfg.Data.Retry.MaxAttempts,
		InitialBackoff: cfg.Data.Retry.InitialBackoff,
		MaxBackoff:     cfg.Data.Retry.MaxBackoff,
	}, logger)

	dashboard := service.NewDashboard(client, cfg.UI.MaxHotTopics, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Keep the documents fresh on the collector's cadence.
	ref := refresher.New(dashboard, cfg.Server.RefreshInterval, logger)
	go func() {
		if err := ref.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("refresher error", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(dashboard, logger).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("starting stock radar api",
		"addr", cfg.Server.Addr,
		"base_url", cfg.Data.BaseURL,
		"refresh_interval", cfg.Server.RefreshInterval,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/onearthlouis/stock-radar/internal/config"
	"github.com/onearthlouis/stock-radar/internal/service"
	"github.com/onearthlouis/stock-radar/internal/source/radar"
	"github.com/onearthlouis/stock-radar/internal/tui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger, closeLog, err := setupLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer closeLog()

	client := radar.New(radar.Config{
		BaseURL:        cfg.Data.BaseURL,
		Timeout:        cfg.Data.Timeout,
		MaxAttempts:    cfg.Data.Retry.MaxAttempts,
		InitialBackoff: cfg.Data.Retry.InitialBackoff,
		MaxBackoff:     cfg.Data.Retry.MaxBackoff,
	}, logger)

	dashboard := service.NewDashboard(client, cfg.UI.MaxHotTopics, logger)

	program := tea.NewProgram(tui.New(dashboard), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "ui error:", err)
		os.Exit(1)
	}
}

func setupLogger(level, path string) (*slog.Logger, func(), error) {
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

	var w io.Writer = io.Discard
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { f.Close() }
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	return slog.New(slog.NewJSONHandler(w, opts)), closeLog, nil
}

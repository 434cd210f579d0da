package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sandeepkv93/kario/internal/config"
	"github.com/sandeepkv93/kario/internal/storage"
	"github.com/sandeepkv93/kario/internal/tasks"
)

// app is the wired runtime shared by every subcommand.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	logFile *os.File
	store   *storage.SQLiteStore
	svc     *tasks.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadOrCreate(config.Path(configPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = config.FromEnv(cfg)

	a := &app{cfg: cfg}
	if err := a.openLog(); err != nil {
		return nil, err
	}

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	a.store = store

	svc, err := tasks.Open(ctx, store,
		tasks.WithLogger(a.log),
		tasks.WithRetention(time.Duration(cfg.PurgeAfterDays)*24*time.Hour),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	a.svc = svc

	if n, err := svc.Purge(ctx); err != nil {
		a.log.WarnContext(ctx, "startup purge failed", "err", err)
	} else if n > 0 {
		a.log.InfoContext(ctx, "startup purge", "removed", n)
	}
	return a, nil
}

// openLog sends structured logs to the configured file; stdout belongs to
// the TUI and to command output.
func (a *app) openLog() error {
	if dir := filepath.Dir(a.cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = f
	a.log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: a.cfg.Level()}))
	slog.SetDefault(a.log)
	return nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close database", "err", err)
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

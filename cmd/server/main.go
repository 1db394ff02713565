// Package main implements the entry point for the task manager API server,
// which serves user signup and login together with task management
// endpoints backed by PostgreSQL or SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	cfg, logger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" {
		if err := runMigrations(ctx, cfg.Database, *migrateCmd, logger); err != nil {
			logger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		logger.Info("Migration completed", "command", *migrateCmd)
		return
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		logger.Error("Failed to create application", "error", err)
		db.close()
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	return cfg, l, nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
	"github.com/phrazzld/taskmanager-api/internal/platform/sqlite"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"gorm.io/gorm"
)

// appDatabase bundles the stores of the configured backend with a way to
// release its connections.
type appDatabase struct {
	stores     store.Stores
	transactor store.Transactor
	closeFn    func() error
	logger     *slog.Logger
}

func (d *appDatabase) close() {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		d.logger.Error("Error closing database connection", "error", err)
	}
}

// setupAppDatabase connects to the configured backend, applies the schema
// when auto-migration is enabled and builds the stores.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*appDatabase, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := openPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		return &appDatabase{
			stores:     postgres.NewStores(db, logger),
			transactor: postgres.NewTransactor(db, logger),
			closeFn:    db.Close,
			logger:     logger,
		}, nil

	case config.DriverSQLite:
		db, err := openSQLite(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &appDatabase{
			stores:     sqlite.NewStores(db, logger),
			transactor: sqlite.NewTransactor(db, logger),
			closeFn:    func() error { return sqlite.Close(db) },
			logger:     logger,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// openPostgres establishes a connection pool and verifies it with a ping.
func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return db, nil
}

// openSQLite opens the database file and, when enabled, migrates its schema.
func openSQLite(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	db, err := sqlite.Open(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := sqlite.Migrate(db); err != nil {
			if closeErr := sqlite.Close(db); closeErr != nil {
				logger.Error("Error closing database connection", "error", closeErr)
			}
			return nil, err
		}
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return db, nil
}

// runMigrations executes a migration command against the configured backend.
// SQLite supports only "up".
func runMigrations(ctx context.Context, cfg config.DatabaseConfig, command string, logger *slog.Logger) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := openPostgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, command, logger)

	case config.DriverSQLite:
		if command != "up" {
			return fmt.Errorf("migration command %q is not supported for sqlite", command)
		}
		db, err := sqlite.Open(cfg.URL)
		if err != nil {
			return err
		}
		defer func() { _ = sqlite.Close(db) }()
		return sqlite.Migrate(db)

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/service"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *appDatabase

	// Auth
	jwtService       auth.JWTService
	identityResolver auth.IdentityResolver

	// Service interfaces
	userService service.UserService
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *appDatabase) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"algorithm", cfg.Auth.Algorithm,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.identityResolver = auth.NewIdentityResolver(app.jwtService, db.stores.Users, logger)

	app.userService = service.NewUserService(
		db.stores.Users,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		app.jwtService,
		logger,
	)
	app.taskService = service.NewTaskService(db.stores, db.transactor, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.db.close()
	app.logger.Info("Application shutdown completed")
}

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/OPpuolitaival/tasklist/internal/config"
	"github.com/OPpuolitaival/tasklist/internal/platform/logger"
	"github.com/OPpuolitaival/tasklist/internal/platform/postgres"
	"github.com/OPpuolitaival/tasklist/internal/service/auth"
	"github.com/OPpuolitaival/tasklist/internal/store"
	"github.com/OPpuolitaival/tasklist/migrations"
)

// application holds the wired dependencies of the server. Everything
// downstream of main receives its collaborators from here.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	db               *sql.DB
	userStore        store.UserStore
	taskStore        store.TaskStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	passwordHasher   auth.PasswordHasher
}

// initializeApp loads configuration, sets up logging, connects to the
// database, runs migrations and wires the service layer.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := migrations.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	bcryptVerifier := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	return &application{
		config:           cfg,
		logger:           appLogger,
		db:               db,
		userStore:        postgres.NewPostgresUserStore(db, appLogger),
		taskStore:        postgres.NewPostgresTaskStore(db, appLogger),
		jwtService:       jwtService,
		passwordVerifier: bcryptVerifier,
		passwordHasher:   bcryptVerifier,
	}, nil
}

// accessTokenTTL reports the configured access token lifetime.
func (app *application) accessTokenTTL() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}

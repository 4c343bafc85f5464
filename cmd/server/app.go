package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/trello-manager/internal/config"
	"github.com/phrazzld/trello-manager/internal/platform/memory"
	"github.com/phrazzld/trello-manager/internal/platform/postgres"
	"github.com/phrazzld/trello-manager/internal/platform/redisstore"
	"github.com/phrazzld/trello-manager/internal/service"
	"github.com/phrazzld/trello-manager/internal/service/auth"
	"github.com/phrazzld/trello-manager/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Backend handles; at most one is set, matching storage.driver.
	db    *sql.DB
	redis *redis.Client

	stores      store.CardStores
	cardService service.CardService
	jwtService  auth.JWTService // nil when authentication is disabled
}

// newApplication connects the configured storage backend and builds the
// services on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	if err := app.setupServices(); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

func (app *application) setupStores(ctx context.Context) error {
	cfg := app.config

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := setupAppDatabase(ctx, cfg.Database, app.logger)
		if err != nil {
			return err
		}
		app.db = db

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, "up", app.logger); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		app.stores = postgres.NewPostgresCardStores(db, app.logger)

	case config.StorageDriverRedis:
		client, err := setupRedis(ctx, cfg.Redis, app.logger)
		if err != nil {
			return err
		}
		app.redis = client
		app.stores = redisstore.NewRedisCardStores(client, redisstore.DefaultKeyPrefix, app.logger)

	case config.StorageDriverMemory:
		app.logger.Warn("using in-memory card storage; data is lost on restart")
		app.stores = memory.NewCardStores()

	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	app.logger.Info("card stores initialized", slog.String("driver", cfg.Storage.Driver))
	return nil
}

func (app *application) setupServices() error {
	var err error
	app.cardService, err = service.NewCardService(
		app.stores,
		service.NewBugTitleGenerator(app.config.Cards.BugTitleToken),
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create card service: %w", err)
	}

	if app.config.Auth.Enabled() {
		app.jwtService, err = auth.NewJWTService(app.config.Auth)
		if err != nil {
			return fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		app.logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)
	}

	return nil
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
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/trello-manager/internal/config"
	"github.com/phrazzld/trello-manager/internal/platform/postgres"
)

// runMigrations executes a goose command against the configured database.
// Migrations only apply to the postgres storage driver.
func runMigrations(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	command string,
	args ...string,
) error {
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("migrations require the %q storage driver, configured driver is %q",
			config.StorageDriverPostgres, cfg.Storage.Driver)
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("error closing database connection", "error", cerr)
		}
	}()

	if err := postgres.Migrate(ctx, db, command, logger, args...); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}

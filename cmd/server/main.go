// Package main implements the entry point for the trello-manager server,
// which serves the card CRUD API for Bug, Issue and Task cards.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/trello-manager/internal/config"
	"github.com/phrazzld/trello-manager/internal/platform/logger"
	"github.com/phrazzld/trello-manager/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a database migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")")
	flag.Parse()

	if err := run(*migrateCmd, flag.Args()); err != nil {
		log.Fatalf("trello-manager: %v", err)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or serves HTTP until SIGINT/SIGTERM.
func run(migrateCmd string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	lg, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	lg.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateCmd != "" {
		return runMigrations(ctx, cfg, lg, migrateCmd, args...)
	}

	app, err := newApplication(ctx, cfg, lg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// Package main is the entry point for the studium API server: a study
// planner that schedules spaced-repetition reviews for studied topics
// and rebalances them across the user's available daily capacity.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/studiumhq/studium-api/internal/config"
	"github.com/studiumhq/studium-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"planner_horizon_days", cfg.Planner.HorizonDays)

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDatabase(db, log)
		return runMigrations(db, migrateCmd, log)
	}

	// Apply pending migrations on startup so the schema always matches
	// the binary.
	if err := runMigrations(db, "up", log); err != nil {
		closeDatabase(db, log)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDatabase(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}

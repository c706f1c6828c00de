package main

// Run database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate down
//   go run ./cmd/migrate status

import (
	"context"
	"database/sql"
	"os"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/storage/db"
	"resume-analyzer/internal/shared/telemetry"
)

type migrateFunc func(ctx context.Context, database *sql.DB) error

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the resume-analyzer database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd("up", "Apply all pending migrations", db.RunMigrations),
		newMigrateCmd("down", "Roll back the latest migration", db.RollbackLast),
		newMigrateCmd("status", "Print the state of every migration", db.MigrationStatus),
	)
	return root
}

func newMigrateCmd(use, short string, fn migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), use, fn)
		},
	}
}

func run(ctx context.Context, name string, fn migrateFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	defer telemetry.Sync()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		return err
	}
	defer sqlDB.Close()

	if err := fn(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": name, "error": err})
		return err
	}
	telemetry.Info("migrate.done", map[string]any{"command": name})
	return nil
}

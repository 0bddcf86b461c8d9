package commands

import (
	"context"
	"fmt"
	"yatube/config"
	"yatube/storage/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	// Migrate flags
	toIndex int
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Apply or revert schema migrations.

Subcommands:
  up      - Apply pending migrations
  down    - Revert applied migrations`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `Apply pending migrations.

Examples:
  yatube migrate up           # Apply every pending migration
  yatube migrate up --to 1    # Apply migrations up to and including 001`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, db.Migrate)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert migrations",
	Long: `Revert applied migrations.

Examples:
  yatube migrate down         # Revert every migration
  yatube migrate down --to 1  # Keep only migration 001`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, db.Revert)
	},
}

type migrationFunc func(context.Context, *pgxpool.Pool, *db.MigrationConfig) error

func runMigration(cmd *cobra.Command, migrate migrationFunc) error {
	if settings.Storage.Backend != config.BackendPostgres {
		return errMemoryBackend
	}

	ctx := cmd.Context()
	pool, err := connectDatabase(ctx, settings)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrationConfig := &db.MigrationConfig{}
	if cmd.Flags().Changed("to") {
		migrationConfig.ToIndex = &toIndex
	}
	if err := migrate(ctx, pool, migrationConfig); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migrations complete")
	return nil
}

func init() {
	migrateUpCmd.Flags().IntVar(&toIndex, "to", 0, "Stop after this migration number")
	migrateDownCmd.Flags().IntVar(&toIndex, "to", 0, "Keep migrations up to this number")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

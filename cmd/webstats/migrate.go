package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/webstats/webstats/internal/db"
	"github.com/webstats/webstats/internal/exitcode"
	"github.com/webstats/webstats/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitWith(exitcode.UsageError, err)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return exitWith(exitcode.DBConnError, err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return exitWith(exitcode.CopyError, err)
	}

	log.Info().Msg("all migrations applied successfully")
	return nil
}

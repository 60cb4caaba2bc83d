package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

// migrateCmd applies the database migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "apply pending database migrations",
	Run: func(cmd *cobra.Command, _ []string) {
		err := migrate(cmd.Context(), k.Bool("status"))
		cobra.CheckErr(err)
	},
}

// init registers the migrate command and its flags on the root command
func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("status", false, "print the current schema version without migrating")
}

// migrate connects to the configured database and migrates it to the latest version
func migrate(ctx context.Context, statusOnly bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pg, err := connectDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	defer pg.Close()

	if !statusOnly {
		if err := store.Migrate(ctx, pg.Pool); err != nil {
			return err
		}
	}

	version, err := store.MigrationVersion(ctx, pg.Pool)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	log.Info().Int64("version", version).Bool("migrated", !statusOnly).Msg("database schema version")

	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/bootstrap"
	"github.com/coursehub/coursehub/internal/seed"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		store, err := bootstrap.OpenDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer store.Close()

		return bootstrap.RunMigrations(cmd.Context(), store, lgr)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo hierarchy when the store has no courses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		store, err := bootstrap.OpenDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := bootstrap.RunMigrations(cmd.Context(), store, lgr); err != nil {
			return err
		}
		if err := seed.SeedDemoData(cmd.Context(), repositories.NewRepositories(store), lgr); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		return nil
	},
}

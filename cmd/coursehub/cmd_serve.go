package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursehub/coursehub/internal/bootstrap"
	"github.com/coursehub/coursehub/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	srv, err := server.NewServer(cmd.Context(), cfg, lgr)
	if err != nil {
		return err
	}

	if err := srv.Run(cmd.Context()); err != nil {
		return err
	}
	lgr.Info().Msg("Application finished gracefully.")
	return nil
}

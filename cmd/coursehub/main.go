package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/coursehub/coursehub/internal/pkg/logger"
)

// @title CourseHub API
// @version 1.0
// @description Course hierarchy manager and proxy to a remote question-answering backend.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

var configPath string

var rootCmd = &cobra.Command{
	Use:   "coursehub",
	Short: "Course hierarchy and document upload backend",
	Long: `coursehub stores a Course > Year > Semester > Unit hierarchy, keeps the
PDF documents uploaded to each unit and forwards questions to a remote
question-answering backend.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file (default: configs/config.yaml)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("coursehub exited with an error")
		os.Exit(1)
	}
}

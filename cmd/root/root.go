// Package root contains the root command for the application.
package root

import (
	"github.com/Gustitos/gustitosgo-backend/internal/config"
	"github.com/Gustitos/gustitosgo-backend/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the application configuration, loaded before any command runs.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "gustitosgo",
		Short: "Merchant chain resolution and report generation backend.",
		Long: `gustitosgo resolves free-text merchant names to canonical chain
identities and produces per-chain financial summary reports over the
transaction dataset.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to gustitosgo!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}
)

// Logger returns the shared logger wrapped in the logging abstraction.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

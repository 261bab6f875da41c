// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to every command
type CommonFlags struct {
	Database  string
	LogLevel  string
	LogFormat string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the dependencies built from AppConfig
	AppContainer *container.Container

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintrack",
		Short: "Import bank statements and categorize transactions with rules.",
		Long: `fintrack imports CSV and OFX bank statements into a local database.
Each transaction is categorized by the first matching rule; transactions
without an auto-confirming rule wait in the pending queue for review.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Shutdown()
		},
	}
)

// Init initializes the root command flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.Database, "db", "", "Database file (overrides data.database)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json")
}

// Initialize loads the configuration, applies flag overrides and builds the
// container. It is a no-op once a container exists.
func Initialize() error {
	if AppContainer != nil {
		return nil
	}

	config.LoadEnv()
	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cfg)

	Log = config.ConfigureLogrusFromConfig(cfg)
	dateutils.SetLogger(Log)
	appContainer, err := container.NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(Log))
	if err != nil {
		return err
	}

	AppConfig = cfg
	AppContainer = appContainer
	return nil
}

// Shutdown closes the container opened by Initialize.
func Shutdown() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close application container")
	}
	AppContainer = nil
}

func applyFlagOverrides(cfg *config.Config) {
	if SharedFlags.Database != "" {
		cfg.Data.Database = SharedFlags.Database
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
}

// GetConfig returns the loaded configuration, or nil before Initialize.
func GetConfig() *config.Config {
	return AppConfig
}

// GetContainer returns the application container, or nil before Initialize.
func GetContainer() *container.Container {
	return AppContainer
}

// GetLogrusAdapter returns the command logger behind the logging interface.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// RequireContainer returns the application container or an error when
// Initialize has not run.
func RequireContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application container not initialized")
	}
	return AppContainer, nil
}

// Package root contains the root command for the application
package root

import (
	"fjacquet/csv2qif/internal/config"
	"fjacquet/csv2qif/internal/logging"
	"fjacquet/csv2qif/internal/preset"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppPresets holds the built-in presets plus those of presets.file
	AppPresets *preset.Registry

	// ConfigFile is the value of --config
	ConfigFile string

	// Debug is set by -d/--debug
	Debug bool

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "csv2qif",
		Short: "A CLI tool to convert bank and credit card CSV exports to QIF.",
		Long: `csv2qif converts CSV statements exported by banks and card issuers into
QIF files that personal finance applications can import.

Columns are mapped to QIF fields with --fieldMap, or taken from a known
institution preset with --company.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to csv2qif!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "config file (default is config.yaml in $HOME/.csv2qif, .csv2qif or .)")
	Cmd.PersistentFlags().BoolVarP(&Debug, "debug", "d", false, "log every resolved record")
}

// Setup loads the configuration, configures logging and the preset
// registry. It runs before every subcommand.
func Setup() error {
	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}
	AppConfig = cfg
	Log = config.ConfigureLoggingFromConfig(cfg, Debug)

	registry := preset.NewRegistry()
	if cfg.Presets.File != "" {
		n, err := registry.LoadFile(cfg.Presets.File)
		if err != nil {
			return err
		}
		Log.Debug("Loaded presets", logging.F(logging.FieldCount, n), logging.F(logging.FieldInputFile, cfg.Presets.File))
	}
	AppPresets = registry
	return nil
}

// GetLogger returns the shared logger.
func GetLogger() logging.Logger {
	return Log
}

// GetConfig returns the loaded configuration, or the defaults when Setup has
// not run.
func GetConfig() *config.Config {
	if AppConfig == nil {
		return config.Default()
	}
	return AppConfig
}

// GetPresets returns the preset registry, or the built-ins when Setup has not
// run.
func GetPresets() *preset.Registry {
	if AppPresets == nil {
		return preset.NewRegistry()
	}
	return AppPresets
}

// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/csv2qif/internal/dateutils"
	"fjacquet/csv2qif/internal/encodingutils"
	"fjacquet/csv2qif/internal/qif"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "CSV2QIF"

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig holds the input defaults used when --csv leaves them out.
type CSVConfig struct {
	Encoding   string `mapstructure:"encoding" yaml:"encoding"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// QIFConfig holds the output defaults used when --qif leaves them out.
type QIFConfig struct {
	Encoding   string `mapstructure:"encoding" yaml:"encoding"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	Type       string `mapstructure:"type" yaml:"type"`
}

// PresetsConfig points at an optional YAML file of extra presets.
type PresetsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	CSV     CSVConfig     `mapstructure:"csv" yaml:"csv"`
	QIF     QIFConfig     `mapstructure:"qif" yaml:"qif"`
	Presets PresetsConfig `mapstructure:"presets" yaml:"presets"`
}

// InitializeConfig loads defaults, then config.yaml from $HOME/.csv2qif,
// .csv2qif or the working directory (or configFile when given), then
// CSV2QIF_* environment variables.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.csv2qif")
		v.AddConfigPath(".csv2qif")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration, ignoring config files and the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.encoding", encodingutils.Default)
	v.SetDefault("csv.date_format", dateutils.DefaultFormat)

	v.SetDefault("qif.encoding", encodingutils.Default)
	v.SetDefault("qif.date_format", dateutils.DefaultFormat)
	v.SetDefault("qif.type", string(qif.DefaultAccountType))

	v.SetDefault("presets.file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if _, err := encodingutils.Lookup(config.CSV.Encoding); err != nil {
		return fmt.Errorf("csv.encoding: %w", err)
	}
	if _, err := encodingutils.Lookup(config.QIF.Encoding); err != nil {
		return fmt.Errorf("qif.encoding: %w", err)
	}

	if err := dateutils.ValidateFormat(config.CSV.DateFormat); err != nil {
		return fmt.Errorf("csv.date_format: %w", err)
	}
	if err := dateutils.ValidateFormat(config.QIF.DateFormat); err != nil {
		return fmt.Errorf("qif.date_format: %w", err)
	}

	if _, err := qif.ParseAccountType(config.QIF.Type); err != nil {
		return fmt.Errorf("qif.type: %w", err)
	}

	return nil
}

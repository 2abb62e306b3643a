package config

import (
	"os"
	"path/filepath"

	"fjacquet/csv2qif/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory or its parent, if
// one exists, without overriding variables already set. It returns the file
// loaded, or "" when none was found.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return envFile, err
		}
		return envFile, nil
	}
	return "", nil
}

// ConfigureLoggingFromConfig builds the application logger from the log
// settings. debug forces the debug level.
func ConfigureLoggingFromConfig(config *Config, debug bool) logging.Logger {
	level := config.Log.Level
	if debug {
		level = "debug"
	}
	return logging.NewLogrusAdapter(level, config.Log.Format)
}

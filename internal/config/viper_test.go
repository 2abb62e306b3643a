package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/csv2qif/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func isolate(t *testing.T) string {
	t.Helper()
	clearTestEnvVars(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdir(t, dir)
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "utf8", config.CSV.Encoding)
	assert.Equal(t, "%Y-%m-%d", config.CSV.DateFormat)
	assert.Equal(t, "utf8", config.QIF.Encoding)
	assert.Equal(t, "%Y-%m-%d", config.QIF.DateFormat)
	assert.Equal(t, "CCard", config.QIF.Type)
	assert.Equal(t, "", config.Presets.File)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	t.Setenv("CSV2QIF_LOG_LEVEL", "debug")
	t.Setenv("CSV2QIF_LOG_FORMAT", "json")
	t.Setenv("CSV2QIF_CSV_ENCODING", "sjis")
	t.Setenv("CSV2QIF_QIF_DATE_FORMAT", "%m/%d/%Y")
	t.Setenv("CSV2QIF_QIF_TYPE", "Bank")
	t.Setenv("CSV2QIF_PRESETS_FILE", "/etc/csv2qif/presets.yaml")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "sjis", config.CSV.Encoding)
	assert.Equal(t, "%m/%d/%Y", config.QIF.DateFormat)
	assert.Equal(t, "Bank", config.QIF.Type)
	assert.Equal(t, "/etc/csv2qif/presets.yaml", config.Presets.File)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := isolate(t)

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  encoding: "euc_jp"
  date_format: "%d.%m.%Y"
qif:
  type: "Bank"
presets:
  file: "presets.yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0o644))

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "euc_jp", config.CSV.Encoding)
	assert.Equal(t, "%d.%m.%Y", config.CSV.DateFormat)
	assert.Equal(t, "Bank", config.QIF.Type)
	assert.Equal(t, "utf8", config.QIF.Encoding)
	assert.Equal(t, "presets.yaml", config.Presets.File)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("qif:\n  type: Cash\n"), 0o644))

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Cash", config.QIF.Type)

	_, err = InitializeConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "error reading config file")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	dir := isolate(t)

	configContent := `
log:
  level: "warn"
qif:
  type: "Bank"
  encoding: "sjis"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0o644))

	t.Setenv("CSV2QIF_LOG_LEVEL", "error")
	t.Setenv("CSV2QIF_QIF_TYPE", "Invst")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)   // env var wins
	assert.Equal(t, "Invst", config.QIF.Type)    // env var wins
	assert.Equal(t, "sjis", config.QIF.Encoding) // config file value
}

func TestInitializeConfig_InvalidEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("CSV2QIF_QIF_TYPE", "Savings")

	_, err := InitializeConfig("")
	assert.ErrorContains(t, err, "qif.type")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "unknown csv encoding",
			modifyConfig: func(c *Config) { c.CSV.Encoding = "klingon" },
			expectError:  "csv.encoding",
		},
		{
			name:         "unknown qif encoding",
			modifyConfig: func(c *Config) { c.QIF.Encoding = "klingon" },
			expectError:  "qif.encoding",
		},
		{
			name:         "csv date format without directive",
			modifyConfig: func(c *Config) { c.CSV.DateFormat = "DD.MM.YYYY" },
			expectError:  "csv.date_format",
		},
		{
			name:         "empty qif date format",
			modifyConfig: func(c *Config) { c.QIF.DateFormat = "" },
			expectError:  "qif.date_format",
		},
		{
			name:         "unknown account type",
			modifyConfig: func(c *Config) { c.QIF.Type = "ccard" },
			expectError:  "qif.type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{
				Log: LogConfig{Level: "info", Format: "text"},
				CSV: CSVConfig{Encoding: "utf8", DateFormat: "%Y-%m-%d"},
				QIF: QIFConfig{Encoding: "utf8", DateFormat: "%Y-%m-%d", Type: "CCard"},
			}
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		debug    bool
		expected logrus.Level
	}{
		{"text format info level", &Config{Log: LogConfig{Level: "info", Format: "text"}}, false, logrus.InfoLevel},
		{"json format warn level", &Config{Log: LogConfig{Level: "warn", Format: "json"}}, false, logrus.WarnLevel},
		{"debug flag wins", &Config{Log: LogConfig{Level: "error", Format: "text"}}, true, logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := ConfigureLoggingFromConfig(tt.config, tt.debug)
			adapter, ok := logger.(*logging.LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expected, adapter.Level())
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)

	file, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "", file)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CSV2QIF_QIF_TYPE=Bank\n"), 0o600))
	t.Setenv("CSV2QIF_QIF_TYPE", "")
	require.NoError(t, os.Unsetenv("CSV2QIF_QIF_TYPE"))

	file, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", file)
	assert.Equal(t, "Bank", os.Getenv("CSV2QIF_QIF_TYPE"))

	config, err := InitializeConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Bank", config.QIF.Type)
}

// Helper function to clear test environment variables
func clearTestEnvVars(t *testing.T) {
	for _, key := range []string{
		"CSV2QIF_LOG_LEVEL",
		"CSV2QIF_LOG_FORMAT",
		"CSV2QIF_CSV_ENCODING",
		"CSV2QIF_CSV_DATE_FORMAT",
		"CSV2QIF_QIF_ENCODING",
		"CSV2QIF_QIF_DATE_FORMAT",
		"CSV2QIF_QIF_TYPE",
		"CSV2QIF_PRESETS_FILE",
	} {
		// Setenv restores the original value after the test.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefault(t *testing.T) {
	isolate(t)
	t.Setenv("CSV2QIF_QIF_TYPE", "Bank")

	config := Default()
	assert.Equal(t, "CCard", config.QIF.Type, "environment is ignored")
	assert.NoError(t, validateConfig(config))
}

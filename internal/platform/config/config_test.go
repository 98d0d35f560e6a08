package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "notekeeper", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, DefaultStorageDSN, cfg.Storage.DSN)
	assert.Empty(t, cfg.Storage.EncryptionKey)

	require.NoError(t, cfg.Validate())
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_STORAGE_DRIVER", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
}

// TestLoad_EnvVarUnderscoreKeys tests keys whose names contain underscores.
func TestLoad_EnvVarUnderscoreKeys(t *testing.T) {
	t.Setenv("APP_STORAGE_ENCRYPTION_KEY", "s3cret")
	t.Setenv("APP_SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("APP_LOG_FILE_MAX_SIZE", "10")
	t.Setenv("APP_RATE_LIMIT_BURST", "7")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Storage.EncryptionKey)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Storage.ConnMaxLifetime)
	assert.Equal(t, 2*time.Second, cfg.Storage.RetryBackoff)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "notekeeper", cfg.App.Name)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY_ENABLED", "true")
	t.Setenv("APP_RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
}

// TestLoadFrom_FileLayering tests base and profile files over defaults.
func TestLoadFrom_FileLayering(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "base.yaml"), `
app:
  name: notes-base
storage:
  driver: mysql
  dsn: notes:pw@tcp(db:3306)/notes
messages:
  created: Saved
`)
	writeFile(t, filepath.Join(dir, "qa.yaml"), `
app:
  environment: qa
messages:
  created: Saved (qa)
cors:
  enabled: true
  allowed_origins:
    - https://qa.example.com
`)

	t.Setenv("APP_APP_NAME", "notes-env")

	cfg, err := LoadFrom(dir, "qa")
	require.NoError(t, err)

	assert.Equal(t, "notes-env", cfg.App.Name)
	assert.Equal(t, "qa", cfg.App.Environment)
	assert.Equal(t, StorageDriverMySQL, cfg.Storage.Driver)
	assert.Equal(t, "notes:pw@tcp(db:3306)/notes", cfg.Storage.DSN)
	assert.Equal(t, "Saved (qa)", cfg.Messages.Created)
	assert.Equal(t, "Note updated", cfg.Messages.Updated)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://qa.example.com"}, cfg.CORS.AllowedOrigins)

	require.NoError(t, cfg.Validate())
}

// TestLoadFrom_InvalidYAML tests that parse errors are reported.
func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "app: [unclosed")

	_, err := LoadFrom(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/app.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestLoad_TelemetryDefaults tests that telemetry defaults are set correctly.
func TestLoad_TelemetryDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "notekeeper", cfg.Telemetry.ServiceName)
	assert.InDelta(t, 1.0, cfg.Telemetry.SamplingRate, 0)
}

// TestLoad_HTTPPolicyDefaults tests the messages, CORS and rate limit defaults.
func TestLoad_HTTPPolicyDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Note added", cfg.Messages.Created)
	assert.Equal(t, "Note updated", cfg.Messages.Updated)
	assert.Equal(t, "Note deleted", cfg.Messages.Deleted)

	assert.False(t, cfg.CORS.Enabled)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, DefaultCORSMaxAge, cfg.CORS.MaxAge)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.InDelta(t, DefaultRateLimitRPS, cfg.RateLimit.RPS, 0)
	assert.Equal(t, DefaultRateLimitBurst, cfg.RateLimit.Burst)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "notekeeper", d["app.name"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, DefaultStorageDriver, d["storage.driver"])
	assert.Equal(t, DefaultConnectRetries, d["storage.connect_retries"])
	assert.Equal(t, "", d["storage.encryption_key"])
}

func TestEnvMapper(t *testing.T) {
	mapper := envMapper(defaults())

	tests := []struct {
		env       string
		value     string
		wantKey   string
		wantValue any
	}{
		{"APP_SERVER_PORT", "9090", "server.port", "9090"},
		{"APP_STORAGE_MAX_OPEN_CONNS", "3", "storage.max_open_conns", "3"},
		{"APP_RATE_LIMIT_RPS", "2.5", "rate_limit.rps", "2.5"},
		{"APP_CORS_ALLOWED_ORIGINS", "a,,b", "cors.allowed_origins", []string{"a", "b"}},
		{"APP_CORS_ALLOWED_ORIGINS", "", "cors.allowed_origins", []string{}},
		{"APP_SOMETHING_ELSE", "x", "something.else", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			key, value := mapper(tt.env, tt.value)

			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

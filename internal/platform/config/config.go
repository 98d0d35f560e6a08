// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultStorageDriver is the durable single-file store.
	DefaultStorageDriver = "sqlite"

	// DefaultStorageDSN is where the sqlite driver keeps notes.
	DefaultStorageDSN = "file:./data/notes.db"

	// DefaultMaxOpenConns caps the SQL connection pool.
	DefaultMaxOpenConns = 10

	// DefaultMaxIdleConns is the number of idle SQL connections kept.
	DefaultMaxIdleConns = 5

	// DefaultConnectRetries is how many extra pings are tried at startup.
	DefaultConnectRetries = 5

	// DefaultRateLimitRPS is the sustained per-client API request rate.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the per-client API burst size.
	DefaultRateLimitBurst = 40

	// DefaultCORSMaxAge is the preflight cache lifetime in seconds.
	DefaultCORSMaxAge = 600
)

// Storage drivers.
const (
	StorageDriverMemory = "memory"
	StorageDriverSQLite = "sqlite"
	StorageDriverMySQL  = "mysql"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"        validate:"required"`
	Server    ServerConfig    `koanf:"server"     validate:"required"`
	Log       LogConfig       `koanf:"log"        validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Storage   StorageConfig   `koanf:"storage"    validate:"required"`
	Messages  MessagesConfig  `koanf:"messages"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`

	// RequestTimeout bounds each /api request. Zero disables the deadline.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"min=0s"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// StorageConfig selects and tunes the note store.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory sqlite mysql"`

	// DSN is a sqlite file URI or a go-sql-driver/mysql DSN.
	DSN string `koanf:"dsn" validate:"required_unless=Driver memory"`

	// EncryptionKey enables SQLCipher page encryption of the sqlite file.
	EncryptionKey string `koanf:"encryption_key" validate:"excluded_unless=Driver sqlite"`

	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"min=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"min=0s"`
	ConnectRetries  int           `koanf:"connect_retries"   validate:"min=0,max=30"`
	RetryBackoff    time.Duration `koanf:"retry_backoff"     validate:"min=0s"`
}

// MessagesConfig holds the banner texts shown after successful form actions.
// An empty message redirects home without a banner.
type MessagesConfig struct {
	Created string `koanf:"created"`
	Updated string `koanf:"updated"`
	Deleted string `koanf:"deleted"`
}

// CORSConfig controls cross-origin access to the JSON API.
type CORSConfig struct {
	Enabled        bool     `koanf:"enabled"`
	AllowedOrigins []string `koanf:"allowed_origins" validate:"required_if=Enabled true,dive,required"`
	MaxAge         int      `koanf:"max_age"         validate:"min=0"`
}

// RateLimitConfig controls the per-client token bucket on the JSON API.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"     validate:"required_if=Enabled true,min=0"`
	Burst   int     `koanf:"burst"   validate:"required_if=Enabled true,min=0"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "notekeeper",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,
		"server.request_timeout":  "15s",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "notekeeper",
		"telemetry.sampling_rate": 1.0,

		"storage.driver":            DefaultStorageDriver,
		"storage.dsn":               DefaultStorageDSN,
		"storage.encryption_key":    "",
		"storage.max_open_conns":    DefaultMaxOpenConns,
		"storage.max_idle_conns":    DefaultMaxIdleConns,
		"storage.conn_max_lifetime": "30m",
		"storage.connect_retries":   DefaultConnectRetries,
		"storage.retry_backoff":     "2s",

		"messages.created": "Note added",
		"messages.updated": "Note updated",
		"messages.deleted": "Note deleted",

		"cors.enabled":         false,
		"cors.allowed_origins": []string{},
		"cors.max_age":         DefaultCORSMaxAge,

		"rate_limit.enabled": true,
		"rate_limit.rps":     DefaultRateLimitRPS,
		"rate_limit.burst":   DefaultRateLimitBurst,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	d := defaults()

	err := k.Load(confmap.Provider(d, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, dir+"/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("%s/%s.yaml", dir, profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.ProviderWithValue("APP_", ".", envMapper(d)), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envMapper maps APP_STORAGE_ENCRYPTION_KEY to storage.encryption_key.
// Underscores are both the nesting separator and part of key names, so the
// variable is matched against the known keys with every underscore read as
// a dot. Unknown variables fall back to that dotted form.
//
// List-valued keys accept a comma separated value.
func envMapper(known map[string]any) func(key, value string) (string, any) {
	byDotted := make(map[string]string, len(known))
	for k := range known {
		byDotted[strings.ReplaceAll(k, "_", ".")] = k
	}

	return func(key, value string) (string, any) {
		dotted := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "APP_")), "_", ".")

		name, ok := byDotted[dotted]
		if !ok {
			return dotted, value
		}

		if _, isList := known[name].([]string); isList {
			return name, splitList(value)
		}

		return name, value
	}
}

func splitList(value string) []string {
	out := []string{}

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Badger    BadgerConfig    `mapstructure:"badger"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Poster    PosterConfig    `mapstructure:"poster"`
	Draft     DraftConfig     `mapstructure:"draft"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selects and scopes the key-value backend.
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`      // memory, badger, redis, postgres
	Namespace  string `mapstructure:"namespace"`   // key prefix / row namespace for network backends
	QuotaBytes int    `mapstructure:"quota_bytes"` // memory driver capacity; badger per-value cap
}

// BadgerConfig holds embedded store settings.
type BadgerConfig struct {
	Path       string `mapstructure:"path"`
	InMemory   bool   `mapstructure:"in_memory"`
	SyncWrites bool   `mapstructure:"sync_writes"`
}

// RedisConfig holds Redis connection settings for the redis driver and the reconcile lock.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Name         string        `mapstructure:"name"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	SSLMode      string        `mapstructure:"ssl_mode"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
}

// PosterConfig holds the poster inliner client settings.
type PosterConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxBytes int64         `mapstructure:"max_bytes"`
	Retry    RetryConfig   `mapstructure:"retry"`
	CB       CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// DraftConfig holds autosave settings.
type DraftConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ReconcileConfig holds analytics reconciliation settings.
type ReconcileConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	OnStartup bool          `mapstructure:"on_startup"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverBadger, DriverRedis, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Reconcile.Enabled && c.Reconcile.Interval <= 0 {
		return fmt.Errorf("reconcile.interval must be positive, got %s", c.Reconcile.Interval)
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "movie-catalog-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "127.0.0.1")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// Storage defaults
	v.SetDefault("storage.driver", DriverBadger)
	v.SetDefault("storage.namespace", "cinema")
	v.SetDefault("storage.quota_bytes", 5*1024*1024)

	// Badger defaults
	v.SetDefault("badger.path", "./data/catalog")
	v.SetDefault("badger.in_memory", false)
	v.SetDefault("badger.sync_writes", true)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "movie_catalog")
	v.SetDefault("database.user", "app")
	v.SetDefault("database.password", "secret")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_lifetime", "5m")

	// Poster defaults
	v.SetDefault("poster.timeout", "10s")
	v.SetDefault("poster.max_bytes", 1024*1024)
	v.SetDefault("poster.retry.max_attempts", 2)
	v.SetDefault("poster.retry.wait_time", "500ms")
	v.SetDefault("poster.retry.max_wait_time", "3s")
	v.SetDefault("poster.circuit_breaker.max_requests", 3)
	v.SetDefault("poster.circuit_breaker.interval", "60s")
	v.SetDefault("poster.circuit_breaker.timeout", "30s")
	v.SetDefault("poster.circuit_breaker.failure_ratio", 0.5)

	// Draft defaults
	v.SetDefault("draft.debounce", "500ms")

	// Reconcile defaults
	v.SetDefault("reconcile.enabled", true)
	v.SetDefault("reconcile.interval", "10m")
	v.SetDefault("reconcile.on_startup", true)
	v.SetDefault("reconcile.timeout", "30s")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

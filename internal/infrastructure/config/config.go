package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Desktop   DesktopConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string `envconfig:"DB_PATH" default:"webdesk.db"`
}

// CacheConfig holds snapshot cache configuration.
type CacheConfig struct {
	TTL     time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	Enabled bool          `envconfig:"CACHE_ENABLED" default:"true"`
}

// DesktopConfig holds default viewport and chrome dimensions.
type DesktopConfig struct {
	ViewportWidth  int `envconfig:"VIEWPORT_WIDTH" default:"1920"`
	ViewportHeight int `envconfig:"VIEWPORT_HEIGHT" default:"1080"`
	TaskbarHeight  int `envconfig:"TASKBAR_HEIGHT" default:"48"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Database: DatabaseConfig{
			Path: "webdesk.db",
		},
		Cache: CacheConfig{
			TTL:     5 * time.Minute,
			Enabled: true,
		},
		Desktop: DesktopConfig{
			ViewportWidth:  1920,
			ViewportHeight: 1080,
			TaskbarHeight:  48,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

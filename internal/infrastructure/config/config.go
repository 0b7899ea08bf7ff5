package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Bridge    BridgeConfig
	Quiz      QuizConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// BridgeConfig selects how the widget reaches its host.
type BridgeConfig struct {
	// Mode is "local" (web preview) or "host" (native host over WebSocket).
	Mode           string   `envconfig:"BRIDGE_MODE" default:"local"`
	AllowedOrigins []string `envconfig:"BRIDGE_ALLOWED_ORIGINS" default:"*"`
}

// QuizConfig holds the initial quiz source.
type QuizConfig struct {
	// Source is empty (built-in sample), a file path or an http(s) URL.
	Source       string        `envconfig:"QUIZ_SOURCE" default:""`
	FetchTimeout time.Duration `envconfig:"QUIZ_FETCH_TIMEOUT" default:"10s"`
	FetchRetries int           `envconfig:"QUIZ_FETCH_RETRIES" default:"3"`
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

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Bridge: BridgeConfig{
			Mode:           "local",
			AllowedOrigins: []string{"*"},
		},
		Quiz: QuizConfig{
			Source:       "",
			FetchTimeout: 10 * time.Second,
			FetchRetries: 3,
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

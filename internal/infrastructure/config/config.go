package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Build     BuildConfig
	Artifact  ArtifactConfig
	History   HistoryConfig
	Icon      IconConfig
	Preview   PreviewConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
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

// BuildConfig holds build simulation configuration.
type BuildConfig struct {
	// StepsFile optionally replaces the built-in step table (.yaml, .yml, .toml or .json)
	StepsFile string `envconfig:"BUILD_STEPS_FILE"`
	// DelayScale multiplies every step delay; 0 makes builds instant
	DelayScale float64 `envconfig:"BUILD_DELAY_SCALE" default:"1"`
}

// ArtifactConfig holds placeholder artifact configuration.
type ArtifactConfig struct {
	SizeBytes int    `envconfig:"ARTIFACT_SIZE_BYTES" default:"15728640"`
	Filler    string `envconfig:"ARTIFACT_FILLER" default:"fixed"` // fixed | random
}

// HistoryConfig holds recent-projects persistence configuration.
type HistoryConfig struct {
	Path  string `envconfig:"HISTORY_PATH" default:"/tmp/appcopro/history.json"`
	Limit int    `envconfig:"HISTORY_LIMIT" default:"5"`
}

// IconConfig holds image generation service configuration.
type IconConfig struct {
	APIKey   string        `envconfig:"ICON_API_KEY"`
	Endpoint string        `envconfig:"ICON_ENDPOINT" default:"https://generativelanguage.googleapis.com/v1beta"`
	Model    string        `envconfig:"ICON_MODEL" default:"gemini-2.5-flash-image"`
	Timeout  time.Duration `envconfig:"ICON_TIMEOUT" default:"60s"`
	Retries  int           `envconfig:"ICON_RETRIES" default:"0"`
	RPS      float64       `envconfig:"ICON_RPS" default:"2"`
}

// PreviewConfig holds target-site probing configuration.
type PreviewConfig struct {
	Enabled bool          `envconfig:"PREVIEW_ENABLED" default:"true"`
	Timeout time.Duration `envconfig:"PREVIEW_TIMEOUT" default:"10s"`
	// AllowPrivate lets preview fetches reach loopback, private and link-local hosts
	AllowPrivate bool `envconfig:"PREVIEW_ALLOW_PRIVATE" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate checks values envconfig cannot constrain on its own.
func (c *Config) Validate() error {
	if c.Build.DelayScale < 0 {
		return fmt.Errorf("BUILD_DELAY_SCALE must be >= 0, got %v", c.Build.DelayScale)
	}
	if c.Artifact.SizeBytes < 0 {
		return fmt.Errorf("ARTIFACT_SIZE_BYTES must be >= 0, got %d", c.Artifact.SizeBytes)
	}
	switch c.Artifact.Filler {
	case "fixed", "random":
	default:
		return fmt.Errorf("ARTIFACT_FILLER must be fixed or random, got %q", c.Artifact.Filler)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be > 0, got %d", c.History.Limit)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
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
		Build: BuildConfig{
			DelayScale: 1,
		},
		Artifact: ArtifactConfig{
			SizeBytes: 15 * 1024 * 1024,
			Filler:    "fixed",
		},
		History: HistoryConfig{
			Path:  "/tmp/appcopro/history.json",
			Limit: 5,
		},
		Icon: IconConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-2.5-flash-image",
			Timeout:  60 * time.Second,
			RPS:      2,
		},
		Preview: PreviewConfig{
			Enabled: true,
			Timeout: 10 * time.Second,
		},
	}
}

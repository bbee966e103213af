package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	// Build and artifact config
	assert.Empty(t, cfg.Build.StepsFile)
	assert.Equal(t, 1.0, cfg.Build.DelayScale)
	assert.Equal(t, 15*1024*1024, cfg.Artifact.SizeBytes)
	assert.Equal(t, "fixed", cfg.Artifact.Filler)

	// History config
	assert.Equal(t, 5, cfg.History.Limit)

	// Icon config
	assert.Empty(t, cfg.Icon.APIKey)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.Icon.Model)
	assert.Equal(t, 0, cfg.Icon.Retries)

	// Preview config
	assert.True(t, cfg.Preview.Enabled)
	assert.False(t, cfg.Preview.AllowPrivate)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	// With a clean environment Load should produce exactly the defaults
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                  "9000",
		"HOST":                  "127.0.0.1",
		"LOG_LEVEL":             "debug",
		"LOG_DEV":               "true",
		"RATE_LIMIT_RPS":        "500",
		"RATE_LIMIT_BURST":      "1000",
		"RATE_LIMIT_ENABLED":    "false",
		"BUILD_STEPS_FILE":      "/etc/appcopro/steps.yaml",
		"BUILD_DELAY_SCALE":     "0",
		"ARTIFACT_SIZE_BYTES":   "4096",
		"ARTIFACT_FILLER":       "random",
		"HISTORY_PATH":          "/var/lib/appcopro/history.json",
		"HISTORY_LIMIT":         "10",
		"ICON_API_KEY":          "secret",
		"ICON_TIMEOUT":          "5s",
		"ICON_RETRIES":          "2",
		"PREVIEW_ALLOW_PRIVATE": "true",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "/etc/appcopro/steps.yaml", cfg.Build.StepsFile)
	assert.Equal(t, 0.0, cfg.Build.DelayScale)
	assert.Equal(t, 4096, cfg.Artifact.SizeBytes)
	assert.Equal(t, "random", cfg.Artifact.Filler)
	assert.Equal(t, "/var/lib/appcopro/history.json", cfg.History.Path)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, "secret", cfg.Icon.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Icon.Timeout)
	assert.Equal(t, 2, cfg.Icon.Retries)
	assert.True(t, cfg.Preview.AllowPrivate)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	err := os.Setenv("PORT", "3000")
	require.NoError(t, err)
	defer os.Unsetenv("PORT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)

	// Defaults still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5, cfg.History.Limit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative delay scale", key: "BUILD_DELAY_SCALE", value: "-1"},
		{name: "negative artifact size", key: "ARTIFACT_SIZE_BYTES", value: "-5"},
		{name: "unknown filler", key: "ARTIFACT_FILLER", value: "zeros"},
		{name: "zero history limit", key: "HISTORY_LIMIT", value: "0"},
		{name: "unparsable duration", key: "ICON_TIMEOUT", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			// LoadOrDefault falls back instead of failing
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}

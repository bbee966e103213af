// Package config provides 12-factor configuration management for the AppCoPro backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Build: Step table file and delay scaling for simulated builds
//   - Artifact: Placeholder binary size and filler mode
//   - History: Recent projects file and bound
//   - Icon: Image generation endpoint, model, credential and client limits
//   - Preview: Target-site probing
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - BUILD_STEPS_FILE, BUILD_DELAY_SCALE
//   - ARTIFACT_SIZE_BYTES, ARTIFACT_FILLER
//   - HISTORY_PATH, HISTORY_LIMIT
//   - ICON_API_KEY, ICON_ENDPOINT, ICON_MODEL, ICON_TIMEOUT, ICON_RETRIES, ICON_RPS
//   - PREVIEW_ENABLED, PREVIEW_TIMEOUT
package config

// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components get named child loggers (orchestrator, icon, history, http) so
// a single process log can be filtered per concern.
//
// Example Usage:
//
//	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Component("icon").Warn("Image service failed", zap.Error(err))
package logging

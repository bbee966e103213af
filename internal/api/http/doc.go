// Package http provides the REST handlers of the builder API.
//
// Endpoints:
//   - Health: / and /health
//   - Config: /config/defaults, /config/fragment
//   - Workspaces: /workspaces, /workspaces/:id
//   - Builds: /workspaces/:id/build, /workspaces/:id/reset, /workspaces/:id/cancel
//   - Artifacts: /workspaces/:id/artifacts/:kind
//   - Icons: /icons/generate, /icons/edit, /icons/upload
//   - History: /history
//   - Preview: /preview?url=
//
// Example Usage:
//
//	handlers := http.NewHandlers(workspaces, generator, icons, store, prober, metrics, logger)
//	handlers.Register(router)
package http

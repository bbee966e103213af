// Package types provides shared data structures for the AppCoPro backend.
//
// Core Types:
//   - ProjectConfig: The app being configured (URL, name, icon, colors, features)
//   - BuildStep: One stage of a simulated pipeline
//   - BuildSnapshot: Copy of a build session for API responses
//   - BuildEvent: Ordered progress notification for stream observers
//   - Artifact: Generated placeholder download
//   - HistoryEntry: Recent project reference
//
// Request Types:
//   - FragmentRequest: Builder navigation fragment decoding
//   - IconGenerateRequest, IconEditRequest: Icon assist calls
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	cfg := project.Defaults()
//	cfg.Name = "Demo"
//	cfg.URL = project.NormalizeURL("demo.io")
//	if cfg.Buildable() {
//	    orchestrator.Start(ctx, cfg)
//	}
package types

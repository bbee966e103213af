// Package main is the entry point for the AppCoPro backend server.
//
// AppCoPro turns a website into a mobile app mockup. The server provides:
//   - REST API for project defaults, builder workspaces and builds
//   - WebSocket streaming of build progress
//   - Placeholder APK/IPA downloads
//   - Icon generation and editing through an external image service
//   - Recent project history
//   - Phone-frame preview policy and target-site probing
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	ICON_API_KEY=... ./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
//	# Custom build pipeline
//	./server -steps ./steps.yaml
package main

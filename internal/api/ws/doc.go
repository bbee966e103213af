// Package ws streams build progress of a workspace over WebSocket.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - snapshot: Current build state, always sent first
//   - build_start, build_log, build_complete, build_cancelled: Build events
//   - pong: Reply to ping
//   - error: Unknown or malformed client message
//
// The stream closes with a normal closure frame when the workspace is deleted.
//
// Example Usage:
//
//	handler := ws.NewHandler(workspaces, metrics, logger)
//	router.GET("/workspaces/:id/stream", handler.HandleConnection)
package ws

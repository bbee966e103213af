// Package history keeps the five most recently built projects, unique by URL
// and most recent first, in a JSON file. Store implements the build
// orchestrator's Recorder.
package history

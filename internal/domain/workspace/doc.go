// Package workspace manages builder workspaces. Each workspace owns exactly
// one build orchestrator, so several builders can run side by side.
package workspace

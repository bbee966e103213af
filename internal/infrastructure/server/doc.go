// Package server wires the AppCoPro backend together.
//
// Server Lifecycle:
//  1. Validate configuration and initialize the logger
//  2. Initialize metrics and tracing
//  3. Load the build step table (built-in or BUILD_STEPS_FILE)
//  4. Create the history store, workspace manager, artifact generator,
//     icon client and optional preview prober
//  5. Setup middleware and routes
//  6. Start HTTP server
//  7. Graceful shutdown: drain HTTP, cancel builds, flush spans and logs
package server

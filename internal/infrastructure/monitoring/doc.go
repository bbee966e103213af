/*
Package monitoring provides Prometheus metrics collection.

# Overview

Each Metrics value owns a private registry with Go runtime and process
collectors attached, plus counters for HTTP traffic, simulated builds,
artifact downloads, image service calls and build stream connections.

# Usage

	metrics := monitoring.NewMetrics()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", monitoring.Handler(metrics))

	metrics.BuildStarted()
	metrics.BuildFinished("completed", time.Since(start))

	timer := monitoring.NewTimer(metrics, "generate")
	// ... call the image service ...
	timer.Stop("success")
*/
package monitoring

// Package middleware provides the HTTP middleware of the builder API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing, download headers exposed
//   - RateLimit: Per-IP token bucket rate limiting with idle client sweep
//   - RequestLogger: zap logging of failed and slow requests
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.RequestLogger(logger))
package middleware

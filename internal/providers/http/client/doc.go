// Package client provides the outbound HTTP client shared by the image
// service and the site preview probe: resty on top of a retryablehttp
// transport, guarded by a token bucket limiter and a circuit breaker, with
// trace headers injected on every request.
package client

/*
Package resilience provides a circuit breaker for calls to external services.

The image service client wraps every upstream call in a Breaker so a dead or
throttling upstream fails fast instead of tying up request handlers.

	breaker := resilience.New("icon", resilience.Settings{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("breaker state changed", zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	image, err := resilience.Execute(breaker, func() (string, error) {
		return client.call(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open
*/
package resilience

/*
Package tracing provides lightweight request tracing.

Every HTTP request gets a span whose ids are echoed as X-Trace-ID and
X-Span-ID response headers. Outbound calls to the image service carry the
same headers so upstream logs can be correlated. Finished spans are logged
by a buffered collector goroutine.

	tracer := tracing.New("appcopro", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "icon.generate")
	defer tracer.Finish(span)
	tracing.Inject(ctx, req.Header)
*/
package tracing

/*
Package tracing provides lightweight request tracing for debugging production issues.

# Overview

This package implements minimal distributed tracing to follow a request
through the HTTP surface and down into storage. It borrows OpenTelemetry
concepts without the dependency weight.

# Features

- Trace context propagation via HTTP headers
- Span creation and management with parent-child relationships
- Automatic trace ID generation
- Gin middleware for automatic instrumentation
- Structured logging integration
- Low overhead with buffered span collection

# Usage

	// Create tracer
	tracer := tracing.New("webdesk", logger)

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("key", "value")
	span.Log("message", map[string]interface{}{"detail": "info"})

# Trace Format

Traces use standard HTTP headers for propagation:
- X-Trace-ID: Unique identifier for entire request flow
- X-Span-ID: Identifier for current operation

# Performance

The tracing system is designed for minimal overhead:
- Buffered span collection (1000 spans)
- Async span processing
- Structured logging integration
- No external dependencies
*/
package tracing

/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the WebDesk
backend, tracking HTTP requests, window lifecycle, state persistence, cache
effectiveness, and WebSocket sessions.

# Features

- HTTP request metrics (latency, throughput, size)
- Window lifecycle metrics (launched, closed, active)
- Desktop state metrics (saves, loads, version conflicts, resets)
- Snapshot cache metrics (hits, misses, swallowed errors)
- Storage call metrics (duration, errors)
- WebSocket connection metrics
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.WindowsCreated.Inc()
	metrics.SetWindowsActive(5)

	// Time operations
	timer := monitoring.NewTimer(metrics, "upsert_windows")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
*/
package monitoring

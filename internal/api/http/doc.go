// Package http provides HTTP handlers and routing for the WebDesk REST API.
//
// This package implements all HTTP endpoints using the Gin framework,
// covering desktop state persistence and window management.
//
// Endpoints:
//   - Health: / and /health
//   - State: GET/PUT /desktop/state, POST /desktop/reset
//   - Windows: GET/POST /desktop/windows, POST /desktop/windows/bulk,
//     POST /desktop/windows/:id/focus, DELETE /desktop/windows/:id,
//     DELETE /desktop/windows
//
// Error mapping:
//   - Validation failures: 400
//   - Missing resources: 404
//   - Stale version on save: 409
//   - Storage failures: 500
//
// Example Usage:
//
//	handlers := http.NewHandlers(desktopService)
//	router.GET("/desktop/state", handlers.GetState)
//	router.PUT("/desktop/state", handlers.SaveState)
package http

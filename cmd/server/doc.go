// Package main is the entry point for the WebDesk backend server.
//
// This application persists per-user desktop state for the browser-based
// WebDesk shell: window geometry, stacking, focus, and desktop settings.
//
// Architecture:
//
//	Frontend (browser shell) → Go Backend → SQLite
//	                                      → in-memory snapshot cache
//
// The server provides:
//   - REST API for desktop state and window persistence
//   - Optimistic locking on state saves
//   - WebSocket live sessions with server-side window management
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -db /var/lib/webdesk/state.db
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main

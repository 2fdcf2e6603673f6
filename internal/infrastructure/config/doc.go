// Package config provides 12-factor configuration management for the WebDesk backend.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Database: SQLite database path
//   - Cache: snapshot cache TTL and toggle
//   - Desktop: default viewport and taskbar dimensions
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, DB_PATH
//   - CACHE_TTL, CACHE_ENABLED
//   - VIEWPORT_WIDTH, VIEWPORT_HEIGHT, TASKBAR_HEIGHT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config

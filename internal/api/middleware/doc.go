// Package middleware provides production-ready HTTP middleware for the WebDesk backend.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//   - Identity: Acting-user resolution from the X-User-ID header
//
// CORS Configuration:
//   - AllowOrigins: Permitted origin domains
//   - AllowMethods: HTTP methods (GET, POST, etc.)
//   - AllowHeaders: Request headers
//   - AllowCredentials: Cookie/auth support
//   - MaxAge: Preflight cache duration
//
// Rate Limiting:
//   - Per-IP tracking
//   - Token bucket algorithm
//   - Configurable RPS and burst capacity
//   - Global rate limiting option
//
// Identity:
//   - Reads X-User-ID, falls back to the single-user default
//   - Rejects malformed ids before handlers run
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.Identity())
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware

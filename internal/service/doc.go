// Package service coordinates desktop state persistence and caching.
//
// The Desktop service sits between the HTTP/WebSocket surfaces and the
// storage layer. It validates input, applies optimistic locking on state
// saves, and keeps a best-effort snapshot cache in front of storage.
//
// Caching policy:
//   - Reads are cache-aside: hit returns the cached snapshot, miss loads
//     from storage and repopulates.
//   - Every successful write invalidates the user's cache entry; saves
//     then read back from storage so responses reflect durable state.
//   - Cache failures never fail a request. They are logged, counted, and
//     routed through a circuit breaker so a broken cache is skipped
//     rather than retried on every call.
package service

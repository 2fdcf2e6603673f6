// Package cache provides the cache-aside layer in front of desktop storage.
//
// Entries are keyed by user id and hold a serialized, compressed snapshot of
// the full desktop state with a short TTL. Writes touching a user's desktop
// or windows invalidate that user's entry explicitly; expiry self-heals any
// invalidation that was missed.
//
// Caching is an optimization, never a dependency for correctness: callers
// treat every cache error as a miss.
package cache

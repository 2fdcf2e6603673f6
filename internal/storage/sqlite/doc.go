// Package sqlite implements durable storage for desktop aggregates and
// window rows on SQLite.
//
// Concurrency control is optimistic: the aggregate carries a version column
// and full-state saves compare-and-swap on it. Bulk window writes are not
// individually version-checked; window churn is high-frequency/low-stakes
// while desktop settings are low-frequency/higher-stakes.
//
// Bulk upserts ride a single multi-row INSERT ... ON CONFLICT statement and
// every multi-step mutation runs inside one transaction, so a failing write
// leaves prior durable state untouched.
//
// All storage failures are wrapped as errs.DatabaseError; missing rows map
// to errs.NotFoundError; stale versions map to errs.ConflictError.
package sqlite

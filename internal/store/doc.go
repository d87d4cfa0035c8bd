// Package store provides SQLite-backed key-value slots.
//
// A slot is a single TEXT value under a fixed key. Writes replace the whole
// value with one upsert statement, so a failed write leaves the previous
// value in place. Values are opaque to the store; callers choose the
// encoding.
//
// # Database Configuration
//
//   - WAL mode: readers never block the single writer
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection: SQLite supports a single writer
//
// Schema changes are tracked with PRAGMA user_version.
package store

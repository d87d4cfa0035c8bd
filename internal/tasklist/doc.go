// Package tasklist is the single source of truth for the persisted to-do
// list.
//
// Store mediates every read and write of the task blob. Mutations take the
// caller's current list and return the new authoritative list; the caller
// replaces its copy with the result. Every mutation that changes the list
// saves the whole list before returning.
//
// Consistency model:
//   - Save happens after each changing mutation, never deferred to exit
//   - A failed save still returns the new list with a PersistenceError, so
//     in-memory and persisted state are eventually, not transactionally,
//     consistent
//   - Out-of-range indexes and blank adds never trigger a write
//
// One goroutine drives a Store at a time. It holds no list state of its own
// and needs no locking.
package tasklist

// Package handler provides the two dispatch strategies that carry rendered
// log lines to the console and the session log file.
//
// SyncHandler is the strict/interactive strategy: writes happen on the
// calling goroutine, and the first error-level line from each call site is
// followed by the configured AbortPolicy (process termination by default).
// Repeat errors from the same site are recorded once in the Registry and
// then silently skipped.
//
// AsyncHandler is the production/release strategy: a single worker
// goroutine drains an unbounded FIFO queue. Submission never blocks, writes
// are applied in submission order, and no line is ever dropped. Error
// deduplication and process termination are skipped entirely.
//
// Both strategies implement the same Handler contract, so the engine picks
// one at construction time without branching anywhere else.
package handler

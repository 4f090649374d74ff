// Package core defines the shared types used across the nyx logging
// facility.
//
// It provides the Level type for severity filtering, the Record type that
// represents a single log event, and the CallSite type identifying the
// source location a call originated from.
//
// Record objects are pooled via sync.Pool to keep the hot path
// allocation-free. The engine gets a Record with GetRecord and returns it
// with PutRecord once the formatter has rendered it. The pool pre-allocates
// the Items slice with capacity 8, which covers most log calls without
// triggering a slice growth.
package core

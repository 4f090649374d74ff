package handler

import (
	"io"
	"os"

	"github.com/nyxlog/nyx/store"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// AbortPolicy decides what happens after the first error-level line from a
// previously unseen call site in strict mode.
type AbortPolicy int8

const (
	// Abort terminates the process. This is the interactive-debugging
	// default: break on the first error from each site.
	Abort AbortPolicy = iota
	// LogOnly keeps the process running.
	LogOnly
)

// String returns the string representation of the policy
func (p AbortPolicy) String() string {
	switch p {
	case Abort:
		return "Abort"
	case LogOnly:
		return "LogOnly"
	default:
		return "Unknown"
	}
}

// SyncConfig holds configuration for the synchronous handler
type SyncConfig struct {
	// Console to write to (default: os.Stdout)
	Console io.Writer
	// Store for file persistence (nil disables the file)
	Store *store.Store
	// Registry of call sites that already reported an error
	// (default: a fresh registry)
	Registry *Registry
	// Policy applied on the first error from an unseen call site
	Policy AbortPolicy
	// OnFirstError, when set, replaces Policy with a custom reaction
	OnFirstError func(key string)
	// ErrorSink receives store append failures
	ErrorSink func(error)
}

// SyncHandler is the strict/interactive dispatch strategy: every line is
// written on the calling goroutine, and the first error-level line from
// each call site triggers the abort policy.
type SyncHandler struct {
	writeBase
	registry *Registry
	policy   AbortPolicy
	onFirst  func(string)
}

// NewSyncHandler creates a new synchronous handler.
func NewSyncHandler(cfg SyncConfig) *SyncHandler {
	h := &SyncHandler{
		registry: cfg.Registry,
		policy:   cfg.Policy,
		onFirst:  cfg.OnFirstError,
	}
	if h.registry == nil {
		h.registry = NewRegistry()
	}
	initWriteBase(&h.writeBase, cfg.Console, cfg.Store, cfg.ErrorSink)
	return h
}

// Registry returns the handler's dedup registry.
func (h *SyncHandler) Registry() *Registry {
	return h.registry
}

// Submit writes the line synchronously. Error lines are deduplicated by
// call-site key: a repeat key returns silently with no second write, while
// a first occurrence is written and then handed to the abort policy.
func (h *SyncHandler) Submit(line string, meta Meta) error {
	if !meta.IsError {
		h.write(line)
		return nil
	}

	// Insert-and-test is atomic, so only one caller per key ever reaches
	// the write and the policy below.
	if !h.registry.FirstOccurrence(meta.Key) {
		return nil
	}

	h.write(line)

	switch {
	case h.onFirst != nil:
		h.onFirst(meta.Key)
	case h.policy == Abort:
		osExit(1)
	}
	return nil
}

// Flush is a no-op: every write completed before Submit returned.
func (h *SyncHandler) Flush() {}

// Close is a no-op: the handler holds no resources across calls.
func (h *SyncHandler) Close() error {
	return nil
}

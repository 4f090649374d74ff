package handler

import "sync"

// Registry is the process-wide set of call-site keys that have already
// produced an error-level entry in strict mode. It grows monotonically
// within a run and shrinks only via Reset, which exists so tests can start
// from a clean slate.
type Registry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// FirstOccurrence inserts key and reports whether it was absent. Insert and
// test happen under one lock so concurrent first occurrences at the same
// call site resolve to exactly one winner.
func (r *Registry) FirstOccurrence(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Contains reports whether key has been recorded.
func (r *Registry) Contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[key]
	return ok
}

// Len returns the number of recorded keys.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

// Reset forgets all recorded keys.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = make(map[string]struct{})
}

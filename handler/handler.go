package handler

import (
	"io"
	"os"

	"go.uber.org/atomic"

	"github.com/nyxlog/nyx/store"
)

// Meta carries per-line dispatch information.
type Meta struct {
	// IsError marks lines produced by an error-level call.
	IsError bool
	// Key is the call-site key of the originating call, used to
	// deduplicate error-level entries in strict mode.
	Key string
}

// Handler dispatches rendered log lines to the console and the store.
type Handler interface {
	// Submit hands one rendered line to the handler for output.
	Submit(line string, meta Meta) error

	// Flush blocks until every previously submitted line has been written.
	Flush()

	// Close flushes the handler and releases resources.
	Close() error
}

// Stats tracks handler statistics
type Stats struct {
	processed atomic.Uint64
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// Processed returns the total number of lines written so far
func (s *Stats) Processed() uint64 {
	return s.processed.Load()
}

// writeBase contains the console/store write path shared by both dispatch
// strategies.
type writeBase struct {
	console io.Writer
	store   *store.Store
	errSink func(error)
	stats   Stats
}

func initWriteBase(b *writeBase, console io.Writer, st *store.Store, errSink func(error)) {
	if console == nil {
		console = os.Stdout
	}
	b.console = console
	b.store = st
	b.errSink = errSink
}

// write prints the line to the console and appends it to the store. A store
// failure is surfaced through errSink; the console print still happened, so
// output degrades rather than disappears.
func (b *writeBase) write(line string) {
	_, _ = io.WriteString(b.console, line)
	if b.store != nil {
		if err := b.store.Append(line); err != nil && b.errSink != nil {
			b.errSink(err)
		}
	}
	b.stats.IncrementProcessed()
}

// Stats returns the handler's counters.
func (b *writeBase) Stats() *Stats {
	return &b.stats
}

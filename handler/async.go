package handler

import (
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/nyxlog/nyx/store"
)

// ErrClosed is returned by Submit after the handler has been closed.
var ErrClosed = errors.New("handler closed")

// AsyncConfig holds configuration for the asynchronous handler
type AsyncConfig struct {
	// Console to write to (default: os.Stdout)
	Console io.Writer
	// Store for file persistence (nil disables the file)
	Store *store.Store
	// ErrorSink receives store append failures
	ErrorSink func(error)
}

// task is one queue element: either a line to write or a flush marker.
type task struct {
	line  string
	flush chan struct{}
}

// AsyncHandler is the production/release dispatch strategy: a single worker
// goroutine drains a FIFO queue, so lines are written in submission order
// and Submit never blocks the caller. The queue is unbounded; nothing is
// ever dropped or reordered.
type AsyncHandler struct {
	writeBase
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []task
	closed bool
	done   chan struct{}
}

// NewAsyncHandler creates a new asynchronous handler and starts its worker.
func NewAsyncHandler(cfg AsyncConfig) *AsyncHandler {
	h := &AsyncHandler{
		done: make(chan struct{}),
	}
	h.cond = sync.NewCond(&h.mu)
	initWriteBase(&h.writeBase, cfg.Console, cfg.Store, cfg.ErrorSink)

	go h.process()
	return h
}

// Submit enqueues the line and returns immediately. Error metadata is
// ignored: dedup and abort are strict-mode behavior only.
func (h *AsyncHandler) Submit(line string, meta Meta) error {
	return h.enqueue(task{line: line})
}

// Flush blocks until every line submitted before the call has been written.
func (h *AsyncHandler) Flush() {
	ch := make(chan struct{})
	if err := h.enqueue(task{flush: ch}); err != nil {
		return // closed handlers are already drained
	}
	<-ch
}

func (h *AsyncHandler) enqueue(t task) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.queue = append(h.queue, t)
	h.mu.Unlock()
	h.cond.Signal()
	return nil
}

// process handles async log processing
func (h *AsyncHandler) process() {
	for {
		h.mu.Lock()
		for len(h.queue) == 0 && !h.closed {
			h.cond.Wait()
		}
		if len(h.queue) == 0 && h.closed {
			h.mu.Unlock()
			close(h.done)
			return
		}
		// Batch drain: take the whole queue so writes happen outside
		// the lock and submissions never wait on I/O.
		batch := h.queue
		h.queue = nil
		h.mu.Unlock()

		for _, t := range batch {
			if t.flush != nil {
				close(t.flush)
				continue
			}
			h.write(t.line)
		}
	}
}

// Close drains the queue and stops the worker. It is safe to call Close
// multiple times.
func (h *AsyncHandler) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		<-h.done
		return nil
	}
	h.closed = true
	h.mu.Unlock()
	h.cond.Signal()
	<-h.done
	return nil
}

package formatter

import (
	"bytes"
	"sync"

	"github.com/nyxlog/nyx/core"
)

// Host is the narrow view of the owning engine a formatter may read while
// rendering. The engine attaches itself whenever a formatter is bound to it.
type Host interface {
	// Theme returns the engine's color theme, or nil when output is plain.
	Theme() *Theme
}

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format renders a record into one output line.
	Format(rec *core.Record) (string, error)

	// Filename extracts a file name from a path. With fullPath the whole
	// path is kept; otherwise only the base name. withExtension keeps or
	// strips the extension.
	Filename(path string, fullPath, withExtension bool) string

	// FormatMeasurement renders a microbenchmark result into one line.
	FormatMeasurement(m *core.Measurement) (string, error)

	// Attach binds the formatter to its owning engine. Rebinding the same
	// formatter to another engine overwrites the reference; an engine that
	// replaces its formatter does not clear the old one.
	Attach(h Host)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeSite enables [file:line] call-site information in log output
	IncludeSite bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

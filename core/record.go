package core

import (
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// CallSite identifies the source location a log call originated from.
type CallSite struct {
	File     string
	Line     int
	Column   int
	Function string
	Defined  bool
}

// Here captures the call site skip frames above its own caller.
// Here(0) is the caller itself; an exported logging entry point passes 1
// so the site reflects its caller, not the entry point.
//
// The Go runtime exposes no column information, so Column is 0 unless the
// caller constructs a CallSite explicitly.
func Here(skip int) CallSite {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallSite{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallSite{
		File:     file,
		Line:     line,
		Function: funcName,
		Defined:  true,
	}
}

// Key returns the "<file>:<line>:<column>" identifier used to deduplicate
// error-level entries from the same source location.
func (s CallSite) Key() string {
	return s.File + ":" + strconv.Itoa(s.Line) + ":" + strconv.Itoa(s.Column)
}

// Base returns the file name without its directory.
func (s CallSite) Base() string {
	return filepath.Base(s.File)
}

// Record represents a single log event with all its metadata. Records are
// ephemeral: the engine fills one in, hands it to the formatter and recycles
// it; only the rendered string travels further.
type Record struct {
	Time       time.Time
	Level      Level
	Items      []any
	Separator  string
	Terminator string
	Site       CallSite
}

// Measurement is the result of a microbenchmark run.
type Measurement struct {
	Description string
	Iterations  int
	Average     time.Duration
	// RelStdDev is the relative standard deviation in percent.
	RelStdDev float64
	Site      CallSite
	Time      time.Time
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Items: make([]any, 0, 8), // Pre-allocate for 8 items
		}
	},
}

// GetRecord retrieves a Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	r.Items = r.Items[:0]
	r.Site = CallSite{}
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	r.Items = r.Items[:0]
	r.Separator = ""
	r.Terminator = ""
	r.Site = CallSite{}
	recordPool.Put(r)
}

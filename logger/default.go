package logger

import (
	"sync"

	"github.com/nyxlog/nyx/core"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
	defaultOnce   sync.Once
)

// Default returns the default logger: release mode, everything enabled,
// text format to stdout and the per-process session log file. It is created
// lazily on first use so importing the package does not start a worker.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = NewBuilder().Build()
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger. Each one
// gates and captures the call site itself so the reported location is the
// caller's, not this file.

// Trace logs items at TraceLevel using the default logger
func Trace(items ...any) {
	l := Default()
	if !l.ok(core.TraceLevel) {
		return
	}
	l.emit(core.TraceLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Debug logs items at DebugLevel using the default logger
func Debug(items ...any) {
	l := Default()
	if !l.ok(core.DebugLevel) {
		return
	}
	l.emit(core.DebugLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Info logs items at InfoLevel using the default logger
func Info(items ...any) {
	l := Default()
	if !l.ok(core.InfoLevel) {
		return
	}
	l.emit(core.InfoLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Warning logs items at WarningLevel using the default logger
func Warning(items ...any) {
	l := Default()
	if !l.ok(core.WarningLevel) {
		return
	}
	l.emit(core.WarningLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Error logs items at ErrorLevel using the default logger
func Error(items ...any) {
	l := Default()
	if !l.ok(core.ErrorLevel) {
		return
	}
	l.emit(core.ErrorLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Expect checks got against want using the default logger
func Expect(got, want bool, items ...any) bool {
	l := Default()
	if got == want {
		return want
	}
	if !l.ok(core.ErrorLevel) {
		return got
	}
	l.failExpectation(core.ErrorLevel, core.Here(1), got, want, items)
	return got
}

// Measure benchmarks block using the default logger
func Measure(description string, iterations int, block func()) {
	l := Default()
	if !l.ok(core.DebugLevel) {
		return
	}
	l.measureAt(core.Here(1), description, iterations, block)
}

// SessionLog returns the default logger's session log content
func SessionLog() string {
	return Default().SessionLog()
}

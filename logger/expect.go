package logger

import (
	"fmt"

	"github.com/nyxlog/nyx/core"
)

// Expect compares got against want. When they match it returns want with no
// logging at all. On a mismatch it logs at ErrorLevel, reporting the column
// of this call site, and returns got so the caller can branch on the
// observed value.
func (l *Logger) Expect(got, want bool, items ...any) bool {
	if got == want {
		return want
	}
	if !l.ok(core.ErrorLevel) {
		return got
	}
	l.failExpectation(core.ErrorLevel, core.Here(1), got, want, items)
	return got
}

// ExpectWith is Expect with an explicit severity level for the failure log.
func (l *Logger) ExpectWith(level core.Level, got, want bool, items ...any) bool {
	if got == want {
		return want
	}
	if !l.ok(level) {
		return got
	}
	l.failExpectation(level, core.Here(1), got, want, items)
	return got
}

// ExpectNonNil logs at ErrorLevel when v is nil and returns v unchanged
// either way, so callers keep their own guard:
//
//	if v := logger.ExpectNonNil(log, lookup(id)); v == nil {
//	    return
//	}
func ExpectNonNil[T any](l *Logger, v *T, items ...any) *T {
	if v != nil {
		return v
	}
	if !l.ok(core.ErrorLevel) {
		return v
	}
	// A nil value is the expectation "has a value == true" observed false.
	l.failExpectation(core.ErrorLevel, core.Here(1), false, true, items)
	return v
}

// ExpectNonNilWith is ExpectNonNil with an explicit severity level.
func ExpectNonNilWith[T any](l *Logger, level core.Level, v *T, items ...any) *T {
	if v != nil {
		return v
	}
	if !l.ok(level) {
		return v
	}
	l.failExpectation(level, core.Here(1), false, true, items)
	return v
}

// failExpectation logs a violated expectation at the given site. With no
// custom message the default wording reports the observed and expected
// values; either way the call-site column is part of the message.
func (l *Logger) failExpectation(level core.Level, site core.CallSite, got, want bool, items []any) {
	var msg []any
	if len(items) == 0 {
		msg = []any{fmt.Sprintf("Expected %t expression was %t! Column: %d", got, want, site.Column)}
	} else {
		msg = make([]any, 0, len(items)+1)
		msg = append(msg, items...)
		msg = append(msg, fmt.Sprintf("Column: %d", site.Column))
	}
	l.emit(level, site, defaultSeparator, defaultTerminator, msg)
}

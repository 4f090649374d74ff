package logger

import (
	"io"
	"os"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/nyxlog/nyx/core"
	"github.com/nyxlog/nyx/formatter"
	"github.com/nyxlog/nyx/handler"
	"github.com/nyxlog/nyx/store"
)

// Mode selects the dispatch strategy, fixed at construction time.
type Mode int8

const (
	// Release dispatches writes on a single background queue and never
	// terminates the process.
	Release Mode = iota
	// Strict writes synchronously on the calling goroutine and applies the
	// abort policy after the first error from each unseen call site.
	Strict
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Release:
		return "Release"
	case Strict:
		return "Strict"
	default:
		return "Unknown"
	}
}

const (
	defaultSeparator  = " "
	defaultTerminator = "\n"
)

// Logger gates records by severity, renders them through the attached
// formatter and dispatches the result to the console and the session log.
//
// Enabled and the minimum level may be toggled at runtime from any
// goroutine. The formatter, theme and hooks must not be replaced while
// other goroutines are actively logging; configure them up front.
type Logger struct {
	enabled  atomic.Bool
	minLevel atomic.Int32

	fmtr  formatter.Formatter
	theme *formatter.Theme

	mode    Mode
	out     handler.Handler
	measure handler.Handler // always the async strategy
	store   *store.Store
	console io.Writer

	onLogAppended func(text string)
	onErrorLogged func(filename string, line int, text string)
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	mode          Mode
	enabled       bool
	level         core.Level
	fmtr          formatter.Formatter
	theme         *formatter.Theme
	st            *store.Store
	console       io.Writer
	registry      *handler.Registry
	policy        handler.AbortPolicy
	onFirstError  func(key string)
	onLogAppended func(string)
	onErrorLogged func(string, int, string)
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		mode:    Release,
		enabled: true,
		level:   core.TraceLevel, // Default: everything passes
	}
}

// WithMode selects the dispatch strategy
func (b *Builder) WithMode(m Mode) *Builder {
	b.mode = m
	return b
}

// WithEnabled sets the initial enabled state
func (b *Builder) WithEnabled(enabled bool) *Builder {
	b.enabled = enabled
	return b
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFormatter sets the formatter
func (b *Builder) WithFormatter(f formatter.Formatter) *Builder {
	b.fmtr = f
	return b
}

// WithTheme sets the color theme consulted by the formatter
func (b *Builder) WithTheme(t *formatter.Theme) *Builder {
	b.theme = t
	return b
}

// WithStore sets the persistence store
func (b *Builder) WithStore(s *store.Store) *Builder {
	b.st = s
	return b
}

// WithConsole sets the console writer (default: os.Stdout)
func (b *Builder) WithConsole(w io.Writer) *Builder {
	b.console = w
	return b
}

// WithRegistry injects the dedup registry used in strict mode
func (b *Builder) WithRegistry(r *handler.Registry) *Builder {
	b.registry = r
	return b
}

// WithAbortPolicy sets the strict-mode reaction to a first unseen error
func (b *Builder) WithAbortPolicy(p handler.AbortPolicy) *Builder {
	b.policy = p
	return b
}

// WithOnFirstError installs a custom strict-mode first-error reaction,
// replacing the abort policy
func (b *Builder) WithOnFirstError(fn func(key string)) *Builder {
	b.onFirstError = fn
	return b
}

// WithOnLogAppended installs the hook fired with every dispatched line
func (b *Builder) WithOnLogAppended(fn func(text string)) *Builder {
	b.onLogAppended = fn
	return b
}

// WithOnErrorLogged installs the hook fired on every gated error-level call
func (b *Builder) WithOnErrorLogged(fn func(filename string, line int, text string)) *Builder {
	b.onErrorLogged = fn
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	l := &Logger{
		mode:          b.mode,
		theme:         b.theme,
		onLogAppended: b.onLogAppended,
		onErrorLogged: b.onErrorLogged,
	}
	l.enabled.Store(b.enabled)
	l.minLevel.Store(int32(b.level))

	l.console = b.console
	if l.console == nil {
		l.console = os.Stdout
	}
	l.store = b.st
	if l.store == nil {
		l.store = store.New()
	}

	f := b.fmtr
	if f == nil {
		f = formatter.NewTextFormatter(formatter.Config{IncludeSite: true})
	}
	l.SetFormatter(f)

	sink := l.reportPersistFailure
	async := handler.NewAsyncHandler(handler.AsyncConfig{
		Console:   l.console,
		Store:     l.store,
		ErrorSink: sink,
	})
	if b.mode == Strict {
		l.out = handler.NewSyncHandler(handler.SyncConfig{
			Console:      l.console,
			Store:        l.store,
			Registry:     b.registry,
			Policy:       b.policy,
			OnFirstError: b.onFirstError,
			ErrorSink:    sink,
		})
		// Measurements still go through the background queue.
		l.measure = async
	} else {
		l.out = async
		l.measure = async
	}
	return l
}

// SetEnabled toggles all logging at runtime
func (l *Logger) SetEnabled(enabled bool) {
	l.enabled.Store(enabled)
}

// Enabled reports whether logging is on
func (l *Logger) Enabled() bool {
	return l.enabled.Load()
}

// SetMinLevel changes the minimum level at runtime
func (l *Logger) SetMinLevel(level core.Level) {
	l.minLevel.Store(int32(level))
}

// MinLevel returns the current minimum level
func (l *Logger) MinLevel() core.Level {
	return core.Level(l.minLevel.Load())
}

// SetFormatter rebinds the formatter and attaches this logger to it. The
// previous formatter keeps its stale back-reference; formatters are not
// shared across loggers.
func (l *Logger) SetFormatter(f formatter.Formatter) {
	if f == nil {
		return
	}
	f.Attach(l)
	l.fmtr = f
}

// Formatter returns the attached formatter
func (l *Logger) Formatter() formatter.Formatter {
	return l.fmtr
}

// SetTheme replaces the color theme
func (l *Logger) SetTheme(t *formatter.Theme) {
	l.theme = t
}

// Theme returns the color theme; it also satisfies formatter.Host so the
// attached formatter can read it while rendering.
func (l *Logger) Theme() *formatter.Theme {
	return l.theme
}

// Mode returns the dispatch strategy selected at construction
func (l *Logger) Mode() Mode {
	return l.mode
}

// Path returns the session log file path
func (l *Logger) Path() string {
	return l.store.Path()
}

// ok is the hard gate: a false result means the call must have zero side
// effects, not even a formatter invocation or time capture.
func (l *Logger) ok(level core.Level) bool {
	return l.enabled.Load() && int32(level) >= l.minLevel.Load()
}

// Trace logs items at TraceLevel
func (l *Logger) Trace(items ...any) {
	if !l.ok(core.TraceLevel) {
		return
	}
	l.emit(core.TraceLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Debug logs items at DebugLevel
func (l *Logger) Debug(items ...any) {
	if !l.ok(core.DebugLevel) {
		return
	}
	l.emit(core.DebugLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Info logs items at InfoLevel
func (l *Logger) Info(items ...any) {
	if !l.ok(core.InfoLevel) {
		return
	}
	l.emit(core.InfoLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Warning logs items at WarningLevel
func (l *Logger) Warning(items ...any) {
	if !l.ok(core.WarningLevel) {
		return
	}
	l.emit(core.WarningLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Error logs items at ErrorLevel
func (l *Logger) Error(items ...any) {
	if !l.ok(core.ErrorLevel) {
		return
	}
	l.emit(core.ErrorLevel, core.Here(1), defaultSeparator, defaultTerminator, items)
}

// Log logs items at the given level with explicit separator and terminator
func (l *Logger) Log(level core.Level, separator, terminator string, items ...any) {
	if !l.ok(level) {
		return
	}
	l.emit(level, core.Here(1), separator, terminator, items)
}

// LogAt is Log with an explicit call site, for callers that capture their
// own location (wrappers, assertion helpers).
func (l *Logger) LogAt(level core.Level, site core.CallSite, separator, terminator string, items ...any) {
	if !l.ok(level) {
		return
	}
	l.emit(level, site, separator, terminator, items)
}

// emit renders the record and dispatches the line. The gate has already
// passed when emit runs.
func (l *Logger) emit(level core.Level, site core.CallSite, separator, terminator string, items []any) {
	rec := core.GetRecord()
	rec.Time = time.Now()
	rec.Level = level
	rec.Items = append(rec.Items, items...)
	rec.Separator = separator
	rec.Terminator = terminator
	rec.Site = site

	line, err := l.fmtr.Format(rec)
	core.PutRecord(rec)
	if err != nil {
		// A formatter that cannot render leaves nothing to dispatch.
		return
	}

	if l.onLogAppended != nil {
		l.onLogAppended(line)
	}

	meta := handler.Meta{}
	if level == core.ErrorLevel {
		meta.IsError = true
		meta.Key = site.Key()
		if l.onErrorLogged != nil {
			l.onErrorLogged(l.fmtr.Filename(site.File, false, true), site.Line, line)
		}
	}

	_ = l.out.Submit(line, meta)
}

// reportPersistFailure surfaces a store failure through the error-level
// rendering path without touching the file again, so a failing append can
// never recurse into a second append.
func (l *Logger) reportPersistFailure(err error) {
	if !l.ok(core.ErrorLevel) {
		return
	}
	site := core.Here(1)

	rec := core.GetRecord()
	rec.Time = time.Now()
	rec.Level = core.ErrorLevel
	rec.Items = append(rec.Items, "log persistence failed:", err)
	rec.Separator = defaultSeparator
	rec.Terminator = defaultTerminator
	rec.Site = site

	line, ferr := l.fmtr.Format(rec)
	core.PutRecord(rec)
	if ferr != nil {
		return
	}

	if l.onLogAppended != nil {
		l.onLogAppended(line)
	}
	if l.onErrorLogged != nil {
		l.onErrorLogged(l.fmtr.Filename(site.File, false, true), site.Line, line)
	}
	_, _ = io.WriteString(l.console, line)
}

// SessionLog returns everything written to the session log file so far.
// The background queue is flushed first so the read sees all submitted
// lines. A read failure is reported through the error path and yields "".
func (l *Logger) SessionLog() string {
	l.Flush()
	text, err := l.store.ReadAll()
	if err != nil {
		l.reportPersistFailure(err)
		return ""
	}
	return text
}

// Flush blocks until every submitted line has been written.
func (l *Logger) Flush() {
	l.out.Flush()
	if l.measure != l.out {
		l.measure.Flush()
	}
}

// Close flushes and stops the dispatchers.
func (l *Logger) Close() error {
	if l.measure == l.out {
		return l.out.Close()
	}
	return multierr.Combine(l.out.Close(), l.measure.Close())
}

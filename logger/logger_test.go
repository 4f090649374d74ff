package logger

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlog/nyx/core"
	"github.com/nyxlog/nyx/formatter"
	"github.com/nyxlog/nyx/handler"
	"github.com/nyxlog/nyx/store"
)

// countingFormatter wraps the text formatter and counts Format invocations,
// so tests can assert that gated calls do zero rendering work.
type countingFormatter struct {
	*formatter.TextFormatter
	formats int
}

func newCountingFormatter() *countingFormatter {
	return &countingFormatter{TextFormatter: formatter.NewTextFormatter(formatter.Config{})}
}

func (f *countingFormatter) Format(rec *core.Record) (string, error) {
	f.formats++
	return f.TextFormatter.Format(rec)
}

type testSink struct {
	console  bytes.Buffer
	appended []string
	errored  []string
}

func newTestLogger(t *testing.T, opts ...func(*Builder)) (*Logger, *testSink) {
	t.Helper()
	sink := &testSink{}
	b := NewBuilder().
		WithConsole(&sink.console).
		WithStore(store.NewAt(filepath.Join(t.TempDir(), "session.log"))).
		WithOnLogAppended(func(text string) {
			sink.appended = append(sink.appended, text)
		}).
		WithOnErrorLogged(func(filename string, line int, text string) {
			sink.errored = append(sink.errored, fmt.Sprintf("%s:%d %s", filename, line, text))
		})
	for _, opt := range opts {
		opt(b)
	}
	l := b.Build()
	t.Cleanup(func() { _ = l.Close() })
	return l, sink
}

func TestLogger_LevelGate(t *testing.T) {
	levels := []core.Level{TraceLevel, DebugLevel, InfoLevel, WarningLevel, ErrorLevel}

	for _, min := range levels {
		for _, call := range levels {
			t.Run(fmt.Sprintf("min=%s call=%s", min, call), func(t *testing.T) {
				cf := newCountingFormatter()
				l, sink := newTestLogger(t,
					func(b *Builder) { b.WithLevel(min).WithFormatter(cf) })

				l.Log(call, " ", "\n", "message")
				l.Flush()

				if call >= min {
					assert.Equal(t, 1, cf.formats)
					assert.Len(t, sink.appended, 1)
					assert.Contains(t, sink.console.String(), "message")
				} else {
					assert.Zero(t, cf.formats)
					assert.Empty(t, sink.appended)
					assert.Empty(t, sink.console.String())
				}
			})
		}
	}
}

func TestLogger_DisabledSuppressesEverything(t *testing.T) {
	cf := newCountingFormatter()
	l, sink := newTestLogger(t, func(b *Builder) { b.WithEnabled(false).WithFormatter(cf) })

	l.Trace("t")
	l.Debug("d")
	l.Info("i")
	l.Warning("w")
	l.Error("e")
	l.Flush()

	assert.Zero(t, cf.formats)
	assert.Empty(t, sink.appended)
	assert.Empty(t, sink.errored)
	assert.Empty(t, sink.console.String())
}

func TestLogger_RuntimeToggles(t *testing.T) {
	l, sink := newTestLogger(t)

	l.SetEnabled(false)
	l.Info("dropped")
	l.SetEnabled(true)
	l.SetMinLevel(WarningLevel)
	l.Info("dropped too")
	l.Warning("kept")
	l.Flush()

	require.Len(t, sink.appended, 1)
	assert.Contains(t, sink.appended[0], "kept")
	assert.Equal(t, WarningLevel, l.MinLevel())
	assert.True(t, l.Enabled())
}

func TestLogger_CallSiteIsCaller(t *testing.T) {
	l, sink := newTestLogger(t)

	l.Info("where am I")
	l.Flush()

	require.Len(t, sink.appended, 1)
	assert.Contains(t, sink.appended[0], "logger_test.go:")
}

func TestLogger_ErrorCallbackFires(t *testing.T) {
	l, sink := newTestLogger(t)

	l.Error("broken pipe")
	l.Flush()

	require.Len(t, sink.errored, 1)
	assert.True(t, strings.HasPrefix(sink.errored[0], "logger_test.go:"))
	assert.Contains(t, sink.errored[0], "broken pipe")
}

func TestLogger_ErrorCallbackSkippedBelowGate(t *testing.T) {
	l, sink := newTestLogger(t, func(b *Builder) { b.WithEnabled(false) })

	l.Error("broken pipe")
	l.Flush()

	assert.Empty(t, sink.errored)
}

func TestLogger_SessionLogRoundTrip(t *testing.T) {
	l, _ := newTestLogger(t)

	l.Log(InfoLevel, " ", "\n", "a")
	l.Log(InfoLevel, " ", "\n", "b")

	got := l.SessionLog()
	aIdx := strings.Index(got, "a\n")
	bIdx := strings.Index(got, "b\n")
	require.GreaterOrEqual(t, aIdx, 0)
	require.GreaterOrEqual(t, bIdx, 0)
	assert.Less(t, aIdx, bIdx)
	assert.Equal(t, 2, strings.Count(got, "\n"))
}

func TestLogger_SessionLogMissingFile(t *testing.T) {
	l, sink := newTestLogger(t)

	got := l.SessionLog()

	assert.Equal(t, "", got)
	// Exactly one error-level report, through the no-recursion path.
	require.Len(t, sink.errored, 1)
	assert.Contains(t, sink.errored[0], "log persistence failed")
	assert.Contains(t, sink.console.String(), "read log file")
}

func TestLogger_PersistFailureStillPrintsToConsole(t *testing.T) {
	sink := &testSink{}
	bad := store.NewAt(filepath.Join(t.TempDir(), "missing", "session.log"))
	l := NewBuilder().
		WithConsole(&sink.console).
		WithStore(bad).
		Build()
	t.Cleanup(func() { _ = l.Close() })

	l.Info("still visible")
	l.Flush()

	out := sink.console.String()
	assert.Contains(t, out, "still visible")
	assert.Contains(t, out, "log persistence failed")
}

func TestLogger_StrictFirstErrorPolicy(t *testing.T) {
	var firsts []string
	reg := handler.NewRegistry()
	l, sink := newTestLogger(t, func(b *Builder) {
		b.WithMode(Strict).
			WithRegistry(reg).
			WithOnFirstError(func(key string) { firsts = append(firsts, key) })
	})

	for i := 0; i < 3; i++ {
		l.Error("same site, same line")
	}

	// One write and one policy invocation for the loop's single call site.
	require.Len(t, firsts, 1)
	assert.Equal(t, 1, reg.Len())
	assert.True(t, reg.Contains(firsts[0]))
	assert.Equal(t, 1, strings.Count(sink.console.String(), "same site, same line"))

	// The hooks still fired on every gated error call.
	assert.Len(t, sink.errored, 3)
}

func TestLogger_StrictDistinctSites(t *testing.T) {
	var firsts []string
	l, _ := newTestLogger(t, func(b *Builder) {
		b.WithMode(Strict).
			WithOnFirstError(func(key string) { firsts = append(firsts, key) })
	})

	l.Error("site one")
	l.Error("site two")

	assert.Len(t, firsts, 2)
	assert.NotEqual(t, firsts[0], firsts[1])
}

func TestLogger_ReleaseModeNeverDedups(t *testing.T) {
	l, sink := newTestLogger(t)

	for i := 0; i < 3; i++ {
		l.Error("repeated")
	}
	l.Flush()

	assert.Equal(t, 3, strings.Count(sink.console.String(), "repeated"))
}

func TestLogger_ConcurrentErrorsAllLand(t *testing.T) {
	st := store.NewAt(filepath.Join(t.TempDir(), "session.log"))
	l := NewBuilder().
		WithConsole(&bytes.Buffer{}).
		WithStore(st).
		WithFormatter(formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-"})).
		Build()
	t.Cleanup(func() { _ = l.Close() })

	const goroutines = 40
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Error("concurrent entry")
		}()
	}
	wg.Wait()

	got := l.SessionLog()
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, goroutines)
	total := 0
	for _, line := range lines {
		assert.Contains(t, line, "concurrent entry")
		total += len(line) + 1
	}
	assert.Equal(t, total, len(got))
}

func TestLogger_SetFormatterAttachesHost(t *testing.T) {
	l, sink := newTestLogger(t, func(b *Builder) {
		b.WithTheme(formatter.DefaultTheme())
	})

	l.Error("colored")
	l.Flush()

	// The default text formatter reads the theme through the back-reference.
	assert.Contains(t, sink.console.String(), "\x1b[31m")
	assert.Contains(t, sink.console.String(), "\x1b[0m")
}

func TestLogger_ThemeDescribeOpaque(t *testing.T) {
	l, _ := newTestLogger(t, func(b *Builder) {
		b.WithTheme(formatter.DefaultTheme())
	})
	assert.Contains(t, l.Theme().Describe(), "theme default:")

	l.SetTheme(nil)
	assert.Nil(t, l.Theme())
}

func TestLogger_LogAtUsesExplicitSite(t *testing.T) {
	var keys []string
	l, sink := newTestLogger(t, func(b *Builder) {
		b.WithMode(Strict).
			WithOnFirstError(func(key string) { keys = append(keys, key) })
	})

	site := core.CallSite{File: "/src/app/widget.go", Line: 3, Column: 7, Defined: true}
	l.LogAt(ErrorLevel, site, " ", "\n", "explicit")

	require.Len(t, keys, 1)
	assert.Equal(t, "/src/app/widget.go:3:7", keys[0])
	require.Len(t, sink.errored, 1)
	assert.True(t, strings.HasPrefix(sink.errored[0], "widget.go:3 "))
}

func TestLogger_Separators(t *testing.T) {
	l, sink := newTestLogger(t)

	l.Log(InfoLevel, " | ", " EOL\n", "a", "b", "c")
	l.Flush()

	assert.Contains(t, sink.console.String(), "a | b | c EOL\n")
}

func TestLogger_PathAndMode(t *testing.T) {
	l, _ := newTestLogger(t)
	assert.True(t, strings.HasSuffix(l.Path(), "session.log"))
	assert.Equal(t, Release, l.Mode())
	assert.Equal(t, "Release", l.Mode().String())
	assert.Equal(t, "Strict", Strict.String())
}

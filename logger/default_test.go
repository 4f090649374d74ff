package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlog/nyx/store"
)

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	appended := make([]string, 0, 4)
	l := NewBuilder().
		WithConsole(&buf).
		WithStore(store.NewAt(filepath.Join(t.TempDir(), "session.log"))).
		WithOnLogAppended(func(text string) { appended = append(appended, text) }).
		Build()

	prev := Default()
	SetDefault(l)
	t.Cleanup(func() {
		SetDefault(prev)
		_ = l.Close()
	})

	Info("package info")
	Warning("package warning")
	assert.False(t, Expect(false, true))
	Measure("package bench", 2, func() {})
	l.Flush()

	require.Len(t, appended, 4)
	// The reported call site is this test, not the package wrappers.
	assert.Contains(t, appended[0], "default_test.go:")
	assert.Contains(t, buf.String(), "package info")
	assert.Contains(t, buf.String(), "package warning")
	assert.Contains(t, buf.String(), "Expected false expression was true!")
	assert.Contains(t, buf.String(), "package bench")

	got := SessionLog()
	assert.Contains(t, got, "package info")
}

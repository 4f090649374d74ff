package formatter

import (
	"strings"

	"github.com/nyxlog/nyx/core"
)

// Theme is a per-level color table a formatter may consult while rendering.
// The engine stores it as an opaque describable value and never reads the
// codes itself.
type Theme struct {
	name   string
	colors [5]string
	reset  string
}

// ANSI escape codes used by the default theme.
const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

// NewTheme builds a theme from one color code per severity level, ordered
// trace to error. Empty codes leave that level uncolored.
func NewTheme(name string, trace, debug, info, warning, errColor string) *Theme {
	return &Theme{
		name:   name,
		colors: [5]string{trace, debug, info, warning, errColor},
		reset:  ansiReset,
	}
}

// DefaultTheme returns the built-in ANSI theme.
func DefaultTheme() *Theme {
	return NewTheme("default", ansiDim, ansiCyan, ansiGreen, ansiYellow, ansiRed)
}

// Name returns the theme's identifier.
func (t *Theme) Name() string {
	return t.name
}

// Color returns the escape code for a level, or "" when the level has none.
func (t *Theme) Color(l core.Level) string {
	if t == nil || l < core.TraceLevel || l > core.ErrorLevel {
		return ""
	}
	return t.colors[l]
}

// Reset returns the code that restores plain output after a colored span.
func (t *Theme) Reset() string {
	if t == nil {
		return ""
	}
	return t.reset
}

// Describe returns a textual description of the theme.
func (t *Theme) Describe() string {
	if t == nil {
		return "theme: none"
	}
	var b strings.Builder
	b.WriteString("theme ")
	b.WriteString(t.name)
	b.WriteString(":")
	for l := core.TraceLevel; l <= core.ErrorLevel; l++ {
		b.WriteString(" ")
		b.WriteString(strings.ToLower(l.String()))
		if t.colors[l] == "" {
			b.WriteString("=plain")
		} else {
			b.WriteString("=set")
		}
	}
	return b.String()
}

package formatter

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nyxlog/nyx/core"
)

// TextFormatter renders records as human-readable text. It is the default
// formatter used when the engine is built without an explicit one.
type TextFormatter struct {
	Config
	host Host
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Attach binds the formatter to its owning engine. Attach must not be
// called concurrently with rendering; engines bind formatters up front.
func (f *TextFormatter) Attach(h Host) {
	f.host = h
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.TraceLevel:   " [TRACE] ",
	core.DebugLevel:   " [DEBUG] ",
	core.InfoLevel:    " [INFO] ",
	core.WarningLevel: " [WARNING] ",
	core.ErrorLevel:   " [ERROR] ",
}

// Format renders a record as one line of text
func (f *TextFormatter) Format(rec *core.Record) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)
	return buf.String(), nil
}

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	// Timestamp - use AppendFormat to avoid string allocation
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	f.writeLevel(rec.Level, buf)

	// Call-site info if enabled
	if f.IncludeSite && rec.Site.Defined {
		buf.WriteByte('[')
		buf.WriteString(rec.Site.Base())
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(rec.Site.Line))
		buf.WriteString("] ")
	}

	for i, item := range rec.Items {
		if i > 0 {
			buf.WriteString(rec.Separator)
		}
		fmt.Fprint(buf, item)
	}

	if rec.Terminator != "" {
		buf.WriteString(rec.Terminator)
	} else {
		buf.WriteByte('\n')
	}
}

// writeLevel writes the bracketed level tag, colored when the attached
// engine carries a theme.
func (f *TextFormatter) writeLevel(level core.Level, buf *bytes.Buffer) {
	var tag string
	if int(level) < len(levelBrackets) && level >= 0 {
		tag = levelBrackets[level]
	} else {
		tag = " [UNKNOWN] "
	}

	var theme *Theme
	if f.host != nil {
		theme = f.host.Theme()
	}
	if theme == nil {
		buf.WriteString(tag)
		return
	}

	color := theme.Color(level)
	if color == "" {
		buf.WriteString(tag)
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(color)
	buf.WriteString(strings.TrimSpace(tag))
	buf.WriteString(theme.Reset())
	buf.WriteByte(' ')
}

// Filename extracts a file name from a path.
func (f *TextFormatter) Filename(path string, fullPath, withExtension bool) string {
	name := path
	if !fullPath {
		name = filepath.Base(path)
	}
	if !withExtension {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// FormatMeasurement renders a microbenchmark result as one line of text
func (f *TextFormatter) FormatMeasurement(m *core.Measurement) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.Write(m.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteString(" [MEASURE] ")

	if f.IncludeSite && m.Site.Defined {
		buf.WriteByte('[')
		buf.WriteString(m.Site.Base())
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(m.Site.Line))
		buf.WriteString("] ")
	}

	buf.WriteString(m.Description)
	buf.WriteString(": avg ")
	buf.WriteString(m.Average.String())
	buf.WriteString(" over ")
	buf.WriteString(strconv.Itoa(m.Iterations))
	buf.WriteString(" runs, rsd ")
	buf.WriteString(strconv.FormatFloat(m.RelStdDev, 'f', 2, 64))
	buf.WriteString("%\n")

	return buf.String(), nil
}

package logger

import (
	"time"

	"github.com/nyxlog/nyx/benchmark"
	"github.com/nyxlog/nyx/core"
	"github.com/nyxlog/nyx/handler"
)

// Measure runs block iterations times and logs the average duration and the
// relative standard deviation. It is gated like a DebugLevel call. The
// result is always dispatched on the background queue, in strict mode too:
// measurements never write synchronously and never touch the first-error
// policy.
func (l *Logger) Measure(description string, iterations int, block func()) {
	if !l.ok(core.DebugLevel) {
		return
	}
	l.measureAt(core.Here(1), description, iterations, block)
}

func (l *Logger) measureAt(site core.CallSite, description string, iterations int, block func()) {
	if iterations <= 0 || block == nil {
		return
	}

	avg, rsd := benchmark.Run(iterations, block)
	m := &core.Measurement{
		Description: description,
		Iterations:  iterations,
		Average:     avg,
		RelStdDev:   rsd,
		Site:        site,
		Time:        time.Now(),
	}

	line, err := l.fmtr.FormatMeasurement(m)
	if err != nil {
		return
	}
	if l.onLogAppended != nil {
		l.onLogAppended(line)
	}
	_ = l.measure.Submit(line, handler.Meta{})
}

package benchmark_test

import (
	"io"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nyxlog/nyx/formatter"
	"github.com/nyxlog/nyx/logger"
	"github.com/nyxlog/nyx/store"
)

// ---------------------------------------------------------------------------
// Helpers – identical sink for every framework (io.Discard)
// ---------------------------------------------------------------------------

// newNyxLogger returns a release-mode logger that writes text to io.Discard
// and a throwaway session file.
func newNyxLogger(b *testing.B) *logger.Logger {
	l := logger.NewBuilder().
		WithConsole(io.Discard).
		WithStore(store.NewAt(filepath.Join(b.TempDir(), "bench.log"))).
		WithFormatter(formatter.NewTextFormatter(formatter.Config{})).
		WithLevel(logger.InfoLevel).
		Build()
	b.Cleanup(func() { _ = l.Close() })
	return l
}

// newZapLogger returns a zap.Logger that writes to io.Discard.
func newZapLogger() *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.InfoLevel)
	return zap.New(core)
}

// ---------------------------------------------------------------------------
// Scenario 1 – Info message that passes the gate
// ---------------------------------------------------------------------------

func BenchmarkComparative_Info(b *testing.B) {
	b.Run("nyx", func(b *testing.B) {
		l := newNyxLogger(b)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		defer func() { _ = l.Sync() }()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 2 – message filtered out by the level gate
// ---------------------------------------------------------------------------

func BenchmarkComparative_Filtered(b *testing.B) {
	b.Run("nyx", func(b *testing.B) {
		l := newNyxLogger(b)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("filtered message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("filtered message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 3 – parallel submission
// ---------------------------------------------------------------------------

func BenchmarkComparative_InfoParallel(b *testing.B) {
	b.Run("nyx", func(b *testing.B) {
		l := newNyxLogger(b)
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel message")
			}
		})
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel message")
			}
		})
	})
}

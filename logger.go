package uikit

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/uikit/instance"
	"github.com/gogpu/uikit/layout"
	"github.com/gogpu/uikit/text"
	"github.com/gogpu/uikit/theme"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for uikit and all its sub-packages.
// By default, uikit produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by uikit:
//   - [slog.LevelDebug]: internal diagnostics (frame work, cache hits, missing glyphs)
//   - [slog.LevelInfo]: lifecycle events (theme reloaded)
//   - [slog.LevelWarn]: non-fatal issues (font load failed, unknown theme class)
//
// Example:
//
//	uikit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	text.SetLogger(l)
	layout.SetLogger(l)
	theme.SetLogger(l)
	instance.SetLogger(l)
}

// Logger returns the current logger used by uikit.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

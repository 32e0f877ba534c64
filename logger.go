// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package turtle

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a host loop is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for turtle and all its sub-packages
// (hosts, ggsurface). By default, turtle produces no log output.
// Pass nil to restore the default silent behavior.
//
// Log levels used by turtle:
//   - [slog.LevelDebug]: per-operation diagnostics (moves, strokes, frames)
//   - [slog.LevelInfo]: lifecycle events (surface bound, bridge init, close)
//   - [slog.LevelWarn]: non-fatal issues (bad stroke style, host draw errors)
//
// Example:
//
//	turtle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by turtle.
// Host and surface packages call this to share one logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

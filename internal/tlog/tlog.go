// Package tlog holds the process-wide logger shared by every internal
// pipeline package, without those packages importing the root vtrace
// package (which would create an import cycle, since vtrace imports them).
// The root package's SetLogger forwards here.
package tlog

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var ptr atomic.Pointer[slog.Logger]

func init() {
	ptr.Store(slog.New(nopHandler{}))
}

// Set stores the logger used by every internal/* package. Pass nil to
// restore the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	ptr.Store(l)
}

// Get returns the current shared logger.
func Get() *slog.Logger {
	return ptr.Load()
}

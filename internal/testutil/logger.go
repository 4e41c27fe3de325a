// Package testutil carries helpers shared by the package test suites.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns an slog.Logger routed through t.Log, so records are
// attached to the test that emitted them (shown on failure or under -v)
// instead of landing on stderr.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(&tbWriter{tb: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// tbWriter adapts a testing.TB to io.Writer.
type tbWriter struct {
	tb testing.TB
}

func (w *tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}

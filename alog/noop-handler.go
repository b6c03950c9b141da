package alog

import (
	"context"
	"log/slog"
)

// NewNoop returns a Logger that discards everything.
// Ideal as dependency in tests.
func NewNoop() *slog.Logger {
	return slog.New(discardHandler{})
}

type discardHandler struct{}

var _ slog.Handler = discardHandler{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h discardHandler) WithGroup(string) slog.Handler            { return h }

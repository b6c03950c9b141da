// Package alog is the structured logger of inventory.
//
// It builds on log/slog and fans every record out to one or more handlers,
// sharing a single level that can be changed at runtime.
package alog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/angoly-ara/inventory/ctx"
)

// Logger interface is a subset of slog.Logger, with the aim to
// encourage the use of the methods offering context.Context,
// so that attributes stored in the context end up in the log line.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
}

var _ Logger = (*slog.Logger)(nil)

const ctxAttrs ctx.CTXKey = "alog.attrs"

// AddAttr adds a single attribute to ctx. All attrs in ctx will be logged by the handlers of alog.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs adds multiple attributes to ctx. All attrs in ctx will be logged by the handlers of alog.
func AddAttrs(ctx context.Context, newAttrs ...slog.Attr) context.Context {
	attrs := FromContext(ctx)

	// copy, so a derived context does not change the attrs of its parent
	all := make([]slog.Attr, 0, len(attrs)+len(newAttrs))
	all = append(all, attrs...)
	all = append(all, newAttrs...)

	return context.WithValue(ctx, ctxAttrs, all)
}

// ClearAttrs removes all attributes added via AddAttr and AddAttrs.
func ClearAttrs(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAttrs, []slog.Attr{})
}

// FromContext returns all attributes stored in ctx. It never returns nil.
func FromContext(ctx context.Context) []slog.Attr {
	if attrs, ok := ctx.Value(ctxAttrs).([]slog.Attr); ok {
		return attrs
	}

	return []slog.Attr{}
}

// Error is a convenience function to log errors under a common key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "")
	}

	return slog.String("err", err.Error())
}

// ParseLevel converts a level name like "debug" or "WARN" into a slog.Level.
// Offsets as in "INFO+2" are supported, see slog.Level.UnmarshalText.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}

	return level, nil
}

package alog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(h *fanoutHandler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(l *fanoutHandler) {
		l.handlers = append(l.handlers, h)
	}
}

// WithLevel initialises the logger with a starting level.
// To change the level at runtime use Unwrap(logger).SetLevel(level).
func WithLevel(level slog.Level) LoggerOpt {
	return func(l *fanoutHandler) {
		l.level.Set(level)
	}
}

// New returns a production ready logger.
//
// If no options are given it creates a default handler, logging JSON to Stderr.
// Otherwise, use WithHandler to set your own handlers.
func New(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newFanoutHandler(opts...))
}

// NewFile returns a logger writing text lines to w at the given level.
// The console of the application stays free for the user this way.
func NewFile(w io.Writer, level slog.Level) *slog.Logger {
	return New(
		WithLevel(level),
		WithHandler(slog.NewTextHandler(w, getDefaultHandlerOptions())),
	)
}

// NewDevelopment returns a logger writing human-readable text to Stderr at debug level.
func NewDevelopment() *slog.Logger {
	return New(
		WithLevel(slog.LevelDebug),
		WithHandler(slog.NewTextHandler(os.Stderr, getDebugHandlerOptions())),
	)
}

func newFanoutHandler(opts ...LoggerOpt) *fanoutHandler {
	h := &fanoutHandler{
		level:    &slog.LevelVar{},
		handlers: []slog.Handler{},
	}
	h.level.Set(slog.LevelInfo)

	for _, opt := range opts {
		opt(h)
	}

	if len(h.handlers) == 0 {
		h.handlers = []slog.Handler{slog.NewJSONHandler(os.Stderr, getDefaultHandlerOptions())}
	}

	return h
}

// fanoutHandler does not output anything directly and relies on other slog.Handlers to do so.
// It adds the attributes stored in the context to every record.
type fanoutHandler struct {
	// level is shared by all handlers and all copies made via WithAttrs and WithGroup.
	// The level of individual handlers set via WithHandler is ignored.
	level *slog.LevelVar

	handlers []slog.Handler
}

var (
	_ slog.Handler = (*fanoutHandler)(nil)
	_ LevelLogger  = (*fanoutHandler)(nil)
)

func (l *fanoutHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= l.level.Level()
}

func (l *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs := FromContext(ctx); len(attrs) > 0 {
		record = record.Clone()
		record.AddAttrs(attrs...)
	}

	var retErr error

	for _, h := range l.handlers {
		retErr = errors.Join(retErr, h.Handle(ctx, record))
	}

	return retErr
}

func (l *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &fanoutHandler{level: l.level, handlers: handlers}
}

func (l *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &fanoutHandler{level: l.level, handlers: handlers}
}

// SetLevel changes the level for all handlers set with WithHandler.
// Even the ones "copied" via any WithX method.
func (l *fanoutHandler) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the log level of the handler.
func (l *fanoutHandler) Level() slog.Level {
	return l.level.Level()
}

// LevelLogger offers control over the level of a logger at run time.
// Unwrap a logger to get access to it.
type LevelLogger interface {
	SetLevel(level slog.Level)
	Level() slog.Level
}

// Unwrap returns the LevelLogger behind logger.
// In case logger was not created by alog, it returns nil.
func Unwrap(logger Logger) LevelLogger { //nolint:ireturn // TestLogger and fanoutHandler both unwrap
	switch l := logger.(type) {
	case *TestLogger:
		return l
	case *slog.Logger:
		if h, ok := l.Handler().(*fanoutHandler); ok {
			return h
		}
	}

	return nil
}

func getDefaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: true,
		Level:     nil, // ignored, the level of fanoutHandler is used for all handlers
	}
}

// getDebugHandlerOptions keeps the output readable, by removing not essential keys.
func getDebugHandlerOptions() *slog.HandlerOptions {
	opt := getDefaultHandlerOptions()
	opt.AddSource = false

	return opt
}

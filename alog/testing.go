package alog

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test returns a logger tuned for unit testing.
// It exposes log-specific assertions following stretchr/testify:
// every assertion returns a bool indicating whether it was successful.
func Test(t *testing.T) *TestLogger {
	if t == nil {
		panic("t is nil")
	}

	buf := &lineBuffer{}

	logger := New(
		WithLevel(slog.LevelDebug),
		WithHandler(slog.NewTextHandler(buf, getDebugHandlerOptions())),
	)

	return &TestLogger{
		Logger: logger,
		t:      t,
		buf:    buf,
	}
}

// TestLogger is a logger for unit testing.
// It can be injected as a Logger dependency and
// offers assertions on all the lines logged with it.
type TestLogger struct {
	*slog.Logger

	t   *testing.T
	buf *lineBuffer
}

var (
	_ Logger      = (*TestLogger)(nil)
	_ LevelLogger = (*TestLogger)(nil)
)

func (l *TestLogger) SetLevel(level slog.Level) {
	Unwrap(l.Logger).SetLevel(level)
}

func (l *TestLogger) Level() slog.Level {
	return Unwrap(l.Logger).Level()
}

// String returns the complete log output.
func (l *TestLogger) String() string {
	return strings.Join(l.Lines(), "")
}

func (l *TestLogger) Lines() []string {
	return l.buf.all()
}

// Empty asserts that the logger has no lines logged.
func (l *TestLogger) Empty(msgAndArgs ...any) bool {
	l.t.Helper()

	if n := len(l.Lines()); n > 0 {
		return assert.Fail(l.t, fmt.Sprintf("logger is not empty, it has %d line(s)", n), msgAndArgs...)
	}

	return true
}

// NotEmpty asserts that the logger has at least one line.
func (l *TestLogger) NotEmpty(msgAndArgs ...any) bool {
	l.t.Helper()

	if len(l.Lines()) == 0 {
		return assert.Fail(l.t, "logger is empty, should not be", msgAndArgs...)
	}

	return true
}

// Contains asserts that at least one line contains the given substring.
func (l *TestLogger) Contains(contains string, msgAndArgs ...any) bool {
	l.t.Helper()

	for _, line := range l.Lines() {
		if strings.Contains(line, contains) {
			return true
		}
	}

	return assert.Fail(l.t, "log output does not have a line which contains: "+contains, msgAndArgs...)
}

// NotContains asserts that no line of the log output contains the given substring.
func (l *TestLogger) NotContains(notContains string, msgAndArgs ...any) bool {
	l.t.Helper()

	for _, line := range l.Lines() {
		if strings.Contains(line, notContains) {
			return assert.Fail(l.t, "log output contains: "+notContains+", should not be", msgAndArgs...)
		}
	}

	return true
}

// Total asserts that the logger has exactly total number of lines logged.
func (l *TestLogger) Total(total int, msgAndArgs ...any) bool {
	l.t.Helper()

	if n := len(l.Lines()); n != total {
		return assert.Fail(l.t, fmt.Sprintf("logger does not have %d lines, it has: %d", total, n), msgAndArgs...)
	}

	return true
}

// lineBuffer keeps every Write as its own line. slog handlers write one record per call.
type lineBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, string(bytes.Clone(p)))

	return len(p), nil
}

func (b *lineBuffer) all() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string{}, b.lines...)
}

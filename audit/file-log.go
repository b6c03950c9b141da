package audit

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"

	"github.com/angoly-ara/inventory/alog"
)

var ErrReadLog = errors.New("could not read audit log")

const (
	retryInterval = 10 * time.Millisecond
	maxRetries    = 2
)

// FileLog appends one JSON document per line to a file.
// Failures to write are logged and otherwise ignored.
type FileLog struct {
	fs     afero.Fs
	path   string
	logger alog.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

var _ Log = (*FileLog)(nil)

type FileLogOption func(*FileLog)

// WithClock replaces time.Now, e.g. for deterministic tests.
func WithClock(now func() time.Time) FileLogOption {
	return func(l *FileLog) {
		l.now = now
	}
}

func NewFileLog(fs afero.Fs, path string, logger alog.Logger, opts ...FileLogOption) *FileLog {
	if logger == nil {
		logger = alog.NewNoop()
	}

	l := &FileLog{
		fs:      fs,
		path:    path,
		logger:  logger,
		mu:      sync.Mutex{},
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *FileLog) Path() string {
	return l.path
}

func (l *FileLog) Record(ctx context.Context, actor Actor, category string, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := newEntry(ctx, actor, category, message)
	entry.Time = l.now()
	entry.ID = ulid.MustNew(ulid.Timestamp(entry.Time), l.entropy).String()

	line, err := json.Marshal(entry)
	if err != nil {
		l.logger.InfoContext(ctx, "could not encode audit entry", alog.Error(err))

		return
	}

	line = append(line, '\n')

	op := func() error { return l.append(line) }
	if err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), maxRetries)); err != nil {
		l.logger.InfoContext(ctx, "could not write audit entry",
			slog.String("path", l.path),
			slog.String("category", category),
			alog.Error(err),
		)

		return
	}

	l.logger.DebugContext(ctx, "audit entry recorded", slog.String("id", entry.ID))
}

func (l *FileLog) append(line []byte) error {
	if err := l.fs.MkdirAll(filepath.Dir(l.path), os.ModePerm); err != nil {
		return fmt.Errorf("could not create audit directory: %w", err)
	}

	f, err := l.fs.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gomnd // file permission
	if err != nil {
		return fmt.Errorf("could not open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("could not append to audit log: %w", err)
	}

	return nil
}

// ReadEntries returns all entries of the audit log at path, oldest first.
// A missing file is an empty log.
func ReadEntries(fs afero.Fs, path string) ([]Entry, error) {
	f, err := fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadLog, err)
	}
	defer f.Close()

	entries := []Entry{}
	scanner := bufio.NewScanner(f)

	for n := 1; scanner.Scan(); n++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("%w: line %d: %w", ErrReadLog, n, err)
		}

		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("%w: %w", ErrReadLog, err)
	}

	return entries, nil
}

func newEntry(ctx context.Context, actor Actor, category string, message string) Entry {
	return Entry{
		ID:       "",
		Time:     time.Now(),
		User:     actorName(ctx, actor),
		Category: category,
		Message:  message,
	}
}

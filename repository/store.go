package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

var (
	ErrStore = errors.New("could not store repository data")
	ErrLoad  = errors.New("could not load repository data")
)

// Store is an interface to access the data of a MemoryRepository as a whole,
// so it can be persisted easily.
// Store receives the collection as a slice, Load a pointer to the slice to fill.
type Store interface {
	Store(fileName string, data any) error
	Load(fileName string, data any) error
}

var NoopStore Store = &noopStore{} //nolint:gochecknoglobals // pattern from std lib slog.DiscardHandler

type noopStore struct{}

func (n noopStore) Store(_ string, _ any) error {
	return nil
}

func (n noopStore) Load(_ string, _ any) error {
	return nil
}

// StoreOption configures one of the file based stores.
type StoreOption func(*fileStore)

// WithFs sets the file system a store writes to. Default is the OS file system.
func WithFs(fs afero.Fs) StoreOption {
	return func(s *fileStore) {
		s.fs = fs
	}
}

// fileStore holds what all file based stores share:
// every save truncates and rewrites the complete file.
// A crash in the middle of a write leaves a damaged file behind.
type fileStore struct {
	fs  afero.Fs
	dir string

	mu sync.Mutex
}

func (s *fileStore) init(dir string, opts []StoreOption) {
	s.fs = afero.NewOsFs()
	s.dir = dir

	for _, opt := range opts {
		opt(s)
	}
}

// Dir returns the directory the files are stored in.
func (s *fileStore) Dir() string {
	return s.dir
}

// create truncates or creates the file, the directory is created if missing.
func (s *fileStore) create(fileName string) (afero.File, error) {
	if err := s.fs.MkdirAll(s.dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	f, err := s.fs.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return f, nil
}

func (s *fileStore) open(fileName string) (afero.File, error) {
	f, err := s.fs.Open(filepath.Join(s.dir, fileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return f, nil
}

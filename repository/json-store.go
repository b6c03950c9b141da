package repository

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

var _ Store = (*JSONStore)(nil)

// JSONStore is a naive implementation of a Store.
// It persists the data as a human-readable JSON file on disc.
// JSONStore is not schema aware and uses the standard go marshalling.
// CAUTION: Be aware if you change your structs, this can lead to data loss!
type JSONStore struct {
	fileStore
}

func NewJSONStore(dir string, opts ...StoreOption) *JSONStore {
	s := &JSONStore{}
	s.init(dir, opts)

	return s
}

func (s *JSONStore) Store(fileName string, data any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	file, err := s.create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = file.Write(b); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

func (s *JSONStore) Load(fileName string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	// an empty file is an empty collection
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}

	if err = json.Unmarshal(b, data); err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}

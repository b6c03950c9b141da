package repository

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var _ Store = (*YAMLStore)(nil)

// YAMLStore persists the data as a YAML document.
// Like JSONStore it is meant for exporting and hand editing, not for large amounts of data.
type YAMLStore struct {
	fileStore
}

func NewYAMLStore(dir string, opts ...StoreOption) *YAMLStore {
	s := &YAMLStore{}
	s.init(dir, opts)

	return s
}

func (s *YAMLStore) Store(fileName string, data any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)

	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

func (s *YAMLStore) Load(fileName string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	// an empty document is an empty collection
	if err := yaml.NewDecoder(f).Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}

package repository

import (
	"fmt"

	"github.com/angoly-ara/inventory/codec"
)

var _ Store = (*BinaryStore)(nil)

// BinaryStore persists the data in the flat binary record format of package codec.
// Every exported string field of the entity is written, in the order of declaration.
// CAUTION: The format has no schema or version, if you change your structs old files can no longer be read!
type BinaryStore struct {
	fileStore

	codecOpts []codec.Option
}

func NewBinaryStore(dir string, opts ...StoreOption) *BinaryStore {
	s := &BinaryStore{}
	s.init(dir, opts)

	return s
}

// WithCodecOptions sets the options used to encode and decode the files.
func (s *BinaryStore) WithCodecOptions(opts ...codec.Option) *BinaryStore {
	s.codecOpts = opts

	return s
}

func (s *BinaryStore) Store(fileName string, data any) error {
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

	if err := codec.NewEncoder(file, s.codecOpts...).Encode(data); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	return nil
}

func (s *BinaryStore) Load(fileName string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := codec.NewDecoder(f, s.codecOpts...).Decode(data); err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return nil
}

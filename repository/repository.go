package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("exists already")
	ErrSaveFailed       = errors.New("save failed")
	ErrIDRangeExhausted = errors.New("no codes available")
	ErrOutOfRange       = errors.New("id out of range")
)

// Option configures a MemoryRepository.
type Option func(config *repoConfig)

// WithIDField set's the name of the field that is used as an id or primary key.
// If not set, it is assumed that the entity struct has a field with the name "ID".
func WithIDField(idFieldName string) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.idFieldName = idFieldName
	}
}

// WithIDRange limits the ids of the repository to the numbers from low to high, both inclusive.
// NextID hands out the lowest number that is not taken, Create rejects ids outside the range.
// For string ids the number is used in its decimal representation.
func WithIDRange(low, high int) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		r := NewIDRange(low, high)
		config.idRange = &r
	}
}

type repoConfig struct {
	idFieldName string
	store       Store
	filename    string
	idRange     *IDRange
}

// Repository is a general purpose interface documenting which methods are available by the generic MemoryRepository.
// ID is the primary key and needs to be of one of the underlying types.
// If your repository needs additional methods, you can extend your own repository easily to tune it to your use case.
// See the examples in the test files.
type Repository[E any, ID id] interface { //nolint:interfacebloat // showcase of all methods that are possible
	NextID(ctx context.Context) (ID, error)
	IsIDAvailable(ctx context.Context, id ID) bool
	IsIDValid(raw string) bool

	Create(ctx context.Context, entity E) error
	Read(ctx context.Context, id ID) (E, error)
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, entity E) error

	All(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id ID) (E, error)
	Exists(ctx context.Context, id ID) (bool, error)

	Save(ctx context.Context, entity E) error

	Count(ctx context.Context) (int, error)

	DeleteByID(ctx context.Context, id ID) error
	Clear(ctx context.Context) error

	Persist(ctx context.Context) error
	Load(ctx context.Context) error
}

// id are the types allowed as a primary key used in the generic Repository.
type id interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

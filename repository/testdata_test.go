package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"

	"github.com/angoly-ara/inventory/repository"
)

var errStoreFailed = errors.New("store failed")

var ctx = context.Background()

const (
	low  = 3107
	high = 3157
)

type (
	EntityID string
	Entity   struct {
		ID   EntityID
		Name string
	}
)

type EntityWithoutID struct {
	Name string
}

func testEntity(id EntityID) Entity {
	return Entity{
		ID:   id,
		Name: gofakeit.Name(),
	}
}

func newRangedRepository(opts ...repository.Option) *repository.MemoryRepository[Entity, EntityID] {
	return repository.NewMemoryRepository[Entity, EntityID](
		append([]repository.Option{repository.WithIDRange(low, high)}, opts...)...,
	)
}

type testStore struct {
	load  func(filename string, data any) error
	store func(filename string, data any) error
}

func (s testStore) Load(filename string, data any) error {
	return s.load(filename, data)
}

func (s testStore) Store(filename string, data any) error {
	return s.store(filename, data)
}

func testStoreLoadFails() testStore {
	return testStore{
		load: func(_ string, _ any) error {
			return errStoreFailed
		},
		store: func(_ string, _ any) error {
			return nil
		},
	}
}

func testStoreStoreFails() testStore {
	return testStore{
		load: func(_ string, _ any) error {
			return nil
		},
		store: func(_ string, _ any) error {
			return errStoreFailed
		},
	}
}

// testStoreCounting counts the calls to Store and checks that the repository hands over its collection.
func testStoreCounting(t *testing.T, calls *int) testStore {
	t.Helper()

	return testStore{
		load: func(filename string, data any) error {
			assert.Equal(t, "Entity.bin", filename)
			assert.IsType(t, &[]Entity{}, data)

			return nil
		},
		store: func(filename string, data any) error {
			assert.Equal(t, "Entity.bin", filename)
			assert.IsType(t, []Entity{}, data)

			*calls++

			return nil
		},
	}
}

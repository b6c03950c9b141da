package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// WithStore sets a Store used to persist the Repository.
//
// There are no transactions or any consistency guarantees at all! If a store fails,
// the collection is still changed in memory of the repository and the error wraps ErrStore.
func WithStore(store Store) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.store = store
	}
}

// WithStoreFilename overwrites the file name a Store should use to persist this Repository.
func WithStoreFilename(name string) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.filename = name
	}
}

// NewMemoryRepository returns an implementation of Repository for the given entity E.
// It is expected that E has a field called `ID`, that is used as the primary key and can
// be overwritten by WithIDField.
// The entities keep the order in which they were added.
//
// The repository starts empty, call Load to read the data from the Store.
// If your repository needs additional methods, you can embed this repo into our own implementation to extend
// your own repository easily to your use case. See the examples in the test files.
func NewMemoryRepository[E any, ID id](opts ...Option) *MemoryRepository[E, ID] {
	repo := &MemoryRepository[E, ID]{
		Mutex:        &sync.Mutex{},
		Data:         []E{},
		currentIntID: *new(ID),
		repoConfig: repoConfig{
			idFieldName: "ID",
			store:       NoopStore,
			filename:    defaultFileName(new(E)),
			idRange:     nil,
		},
	}

	for _, opt := range opts {
		opt(&repo.repoConfig)
	}

	return repo
}

// MemoryRepository implements Repository in a generic way, keeping all entities in an ordered list.
type MemoryRepository[E any, ID id] struct {
	// Mutex is embedded, so that repositories who extend MemoryRepository can lock the same mutex as other methods.
	*sync.Mutex

	// Data is the repository's collection. It is exposed in case you're extending the repository.
	// PREVENT using and accessing Data it directly, go through the repository methods.
	// If you write to Data, USE the Mutex to lock first.
	Data         []E
	currentIntID ID

	repoConfig
}

var _ Repository[struct{ ID string }, string] = (*MemoryRepository[struct{ ID string }, string])(nil)

const panicIDNotSupported = "type of ID is not supported: "

func defaultFileName(entity any) string {
	return reflect.TypeOf(entity).Elem().Name() + ".bin"
}

// Filename returns the name under which the Store persists the repository.
func (repo *MemoryRepository[E, ID]) Filename() string {
	return repo.filename
}

// IDRange returns the range of ids and false, if the repository is not limited to a range.
func (repo *MemoryRepository[E, ID]) IDRange() (IDRange, bool) {
	if repo.idRange == nil {
		return IDRange{}, false
	}

	return *repo.idRange, true
}

func (repo *MemoryRepository[E, ID]) getID(t any) ID { //nolint:dupl,ireturn,lll // needs access to the type ID and fp, as it is not recognised even with "generic" setting
	val := reflect.ValueOf(t)

	idField := val.FieldByName(repo.idFieldName)
	if !idField.IsValid() {
		panic("entity does not have the field with name: " + repo.idFieldName)
	}

	var id ID

	switch idField.Kind() {
	case reflect.String:
		reflect.ValueOf(&id).Elem().SetString(idField.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		reflect.ValueOf(&id).Elem().SetInt(idField.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		reflect.ValueOf(&id).Elem().SetUint(idField.Uint())
	default:
		panic(panicIDNotSupported + idField.Kind().String())
	}

	return id
}

// idFromInt converts a number of the id range into the type ID.
func idFromInt[ID id](n int) ID { //nolint:ireturn // valid use of generics
	var id ID

	switch reflect.TypeOf(id).Kind() {
	case reflect.String:
		reflect.ValueOf(&id).Elem().SetString(strconv.Itoa(n))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		reflect.ValueOf(&id).Elem().SetInt(int64(n))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		reflect.ValueOf(&id).Elem().SetUint(uint64(n))
	default:
		panic(panicIDNotSupported + reflect.TypeOf(id).Kind().String())
	}

	return id
}

// idToInt is the inverse of idFromInt. It returns false if id is not a number.
func idToInt[ID id](id ID) (int, bool) {
	val := reflect.ValueOf(id)

	switch val.Kind() {
	case reflect.String:
		n, err := strconv.Atoi(val.String())
		return n, err == nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(val.Uint()), true //nolint:gosec // ids are small numbers
	default:
		return 0, false
	}
}

// indexOf returns the position of the entity with the given id or -1.
// The caller has to hold the lock.
func (repo *MemoryRepository[E, ID]) indexOf(id ID) int {
	for i, e := range repo.Data {
		if repo.getID(e) == id {
			return i
		}
	}

	return -1
}

// persist writes the whole collection to the store.
// The caller has to hold the lock.
func (repo *MemoryRepository[E, ID]) persist() error {
	err := repo.store.Store(repo.filename, repo.Data)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrStore) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrStore, err)
}

// NextID returns a new ID. It can be of the underlying type of string or integer.
// If the repository has an IDRange, it is the lowest free id of the range or ErrIDRangeExhausted.
// Ids of deleted entities are handed out again.
func (repo *MemoryRepository[E, ID]) NextID(_ context.Context) (ID, error) { //nolint:ireturn,lll // fp, as it is not recognised even with "generic" setting
	repo.Lock()
	defer repo.Unlock()

	if repo.idRange != nil {
		n, ok := repo.idRange.First(func(n int) bool {
			return repo.indexOf(idFromInt[ID](n)) >= 0
		})
		if !ok {
			return *new(ID), fmt.Errorf("%w: all ids from %d to %d are in use",
				ErrIDRangeExhausted, repo.idRange.Low, repo.idRange.High)
		}

		return idFromInt[ID](n), nil
	}

	var id ID

	switch reflect.TypeOf(id).Kind() {
	case reflect.String:
		reflect.ValueOf(&id).Elem().SetString(uuid.New().String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// increment the ID: the value is stored in the repo, but it cannot be accessed because
		// the generic does not know which type it is, so that is why reflection is used.
		newID := reflect.ValueOf(&repo.currentIntID).Elem().Int() + 1
		reflect.ValueOf(&repo.currentIntID).Elem().SetInt(newID)
		reflect.ValueOf(&id).Elem().SetInt(newID)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		newID := reflect.ValueOf(&repo.currentIntID).Elem().Uint() + 1
		reflect.ValueOf(&repo.currentIntID).Elem().SetUint(newID)
		reflect.ValueOf(&id).Elem().SetUint(newID)
	default:
		panic(panicIDNotSupported + reflect.TypeOf(id).Kind().String())
	}

	return id, nil
}

// IsIDAvailable returns true if no entity has the given id.
func (repo *MemoryRepository[E, ID]) IsIDAvailable(_ context.Context, id ID) bool {
	repo.Lock()
	defer repo.Unlock()

	return repo.indexOf(id) < 0
}

// IsIDValid returns true if raw is a number inside the repository's IDRange.
// Without an IDRange every non-empty value is valid.
func (repo *MemoryRepository[E, ID]) IsIDValid(raw string) bool {
	if repo.idRange == nil {
		return raw != ""
	}

	return repo.idRange.Valid(raw)
}

func (repo *MemoryRepository[E, ID]) Create(_ context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	id := repo.getID(entity)
	if id == *new(ID) {
		return fmt.Errorf("missing ID: %w", ErrSaveFailed)
	}

	if repo.idRange != nil {
		if n, ok := idToInt(id); !ok || !repo.idRange.Contains(n) {
			return fmt.Errorf("%w: %v is not within %d and %d", ErrOutOfRange, id, repo.idRange.Low, repo.idRange.High)
		}
	}

	if repo.indexOf(id) >= 0 {
		return ErrAlreadyExists
	}

	repo.Data = append(repo.Data, entity)

	if err := repo.persist(); err != nil {
		return fmt.Errorf("could not save: %w", err)
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) Read(ctx context.Context, id ID) (E, error) { //nolint:ireturn,lll // valid use of generics
	return repo.FindByID(ctx, id)
}

// Update replaces the entity with the same id in place, so it keeps its position.
func (repo *MemoryRepository[E, ID]) Update(_ context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	id := repo.getID(entity)
	if id == *new(ID) {
		return fmt.Errorf("missing ID: %w", ErrSaveFailed)
	}

	i := repo.indexOf(id)
	if i < 0 {
		return fmt.Errorf("entity %v does not exist: %w", id, ErrNotFound)
	}

	repo.Data[i] = entity

	if err := repo.persist(); err != nil {
		return fmt.Errorf("could not save: %w", err)
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) Delete(ctx context.Context, entity E) error {
	return repo.DeleteByID(ctx, repo.getID(entity))
}

// All returns a copy of all entities in their order.
func (repo *MemoryRepository[E, ID]) All(_ context.Context) ([]E, error) {
	repo.Lock()
	defer repo.Unlock()

	result := make([]E, len(repo.Data))
	copy(result, repo.Data)

	return result, nil
}

func (repo *MemoryRepository[E, ID]) FindByID(_ context.Context, id ID) (E, error) { //nolint:ireturn,lll // valid use of generics
	repo.Lock()
	defer repo.Unlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.Data[i], nil
	}

	return *new(E), ErrNotFound
}

func (repo *MemoryRepository[E, ID]) Exists(_ context.Context, id ID) (bool, error) {
	repo.Lock()
	defer repo.Unlock()

	return repo.indexOf(id) >= 0, nil
}

// Save creates or updates the entity.
func (repo *MemoryRepository[E, ID]) Save(_ context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	id := repo.getID(entity)
	if id == *new(ID) {
		return fmt.Errorf("missing ID: %w", ErrSaveFailed)
	}

	if i := repo.indexOf(id); i >= 0 {
		repo.Data[i] = entity
	} else {
		repo.Data = append(repo.Data, entity)
	}

	if err := repo.persist(); err != nil {
		return fmt.Errorf("could not save: %w", err)
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) Count(_ context.Context) (int, error) {
	repo.Lock()
	defer repo.Unlock()

	return len(repo.Data), nil
}

// DeleteByID removes the entity with the given id.
// If no entity has the id, nothing is changed or persisted and ErrNotFound is returned.
func (repo *MemoryRepository[E, ID]) DeleteByID(_ context.Context, id ID) error {
	repo.Lock()
	defer repo.Unlock()

	i := repo.indexOf(id)
	if i < 0 {
		return fmt.Errorf("entity %v does not exist: %w", id, ErrNotFound)
	}

	repo.Data = append(repo.Data[:i], repo.Data[i+1:]...)

	if err := repo.persist(); err != nil {
		return fmt.Errorf("could not delete: %w", err)
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) Clear(_ context.Context) error {
	repo.Lock()
	defer repo.Unlock()

	repo.Data = []E{}

	if err := repo.persist(); err != nil {
		return fmt.Errorf("could not delete: %w", err)
	}

	return nil
}

// Persist overwrites the Store with the current collection.
func (repo *MemoryRepository[E, ID]) Persist(_ context.Context) error {
	repo.Lock()
	defer repo.Unlock()

	return repo.persist()
}

// Load replaces the collection with the data of the Store.
//
// If the Store has no data yet, the repository is empty and the error wraps os.ErrNotExist.
// If the data is damaged, the repository keeps what could be read and the error wraps ErrLoad.
func (repo *MemoryRepository[E, ID]) Load(_ context.Context) error {
	repo.Lock()
	defer repo.Unlock()

	data := []E{}

	err := repo.store.Load(repo.filename, &data)
	if data == nil {
		data = []E{}
	}

	repo.Data = data

	if err != nil {
		if errors.Is(err, ErrLoad) {
			return err
		}

		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return nil
}

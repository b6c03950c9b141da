// Package catalog manages the clients, warehouses and products of the business.
//
// Every kind of record lives in its own Catalog: an ordered list kept in
// memory, with ids from a fixed range, that is written to its file after
// every change. Each change is recorded in the audit log.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/angoly-ara/inventory/alog"
	"github.com/angoly-ara/inventory/app"
	"github.com/angoly-ara/inventory/audit"
	"github.com/angoly-ara/inventory/repository"
)

var (
	ErrNoCodesAvailable = repository.ErrIDRangeExhausted
	ErrNotFound         = repository.ErrNotFound
	ErrInvalidID        = errors.New("ID not valid")
	ErrNotPersisted     = errors.New("change kept but not persisted")
	ErrFieldCount       = errors.New("wrong number of values")
	// ErrNoData is returned by Load if the file of the catalog does not exist (yet).
	// The catalog is empty and can be used.
	ErrNoData           = errors.New("no data file")
)

type config struct {
	logger      alog.Logger
	audit       audit.Log
	validate    *validator.Validate
	keepOnEmpty bool
}

type Option func(*config)

func WithLogger(logger alog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithAudit sets the log every change is recorded in.
func WithAudit(log audit.Log) Option {
	return func(c *config) {
		c.audit = log
	}
}

func WithValidator(validate *validator.Validate) Option {
	return func(c *config) {
		c.validate = validate
	}
}

// WithKeepOnEmpty makes Modify keep the current value of a field, if the new value is empty.
// Without it, an empty value overwrites the field.
func WithKeepOnEmpty() Option {
	return func(c *config) {
		c.keepOnEmpty = true
	}
}

// Catalog is the record store of one Kind of entity.
type Catalog[E any] struct {
	kind   Kind[E]
	repo   *repository.MemoryRepository[E, string]
	logger alog.Logger
	audit  audit.Log

	add    app.Request[AddRecord, E]
	modify app.Request[ModifyRecord, E]
	remove app.Command[DeleteRecord]
	list   app.Query[ListRecords, []E]
	find   app.Query[FindRecord, E]
}

// New returns an empty Catalog of kind, persisted to store. Call Load to read the stored records.
func New[E any](kind Kind[E], store repository.Store, opts ...Option) *Catalog[E] {
	conf := &config{
		logger:      alog.NewNoop(),
		audit:       audit.NoopLog{},
		validate:    validator.New(),
		keepOnEmpty: false,
	}

	for _, opt := range opts {
		opt(conf)
	}

	if store == nil {
		store = repository.NoopStore
	}

	c := &Catalog[E]{
		kind: kind,
		repo: repository.NewMemoryRepository[E, string](
			repository.WithIDRange(kind.Range.Low, kind.Range.High),
			repository.WithStore(store),
			repository.WithStoreFilename(kind.File),
		),
		logger: conf.logger,
		audit:  conf.audit,
	}

	c.add = app.NewLoggedRequest(conf.logger,
		app.NewValidatedRequest(conf.validate, app.Request[AddRecord, E](addHandler[E]{c})))
	c.modify = app.NewLoggedRequest(conf.logger,
		app.NewValidatedRequest(conf.validate, app.Request[ModifyRecord, E](modifyHandler[E]{c, conf.keepOnEmpty})))
	c.remove = app.NewInstrumentedCommand(conf.logger, conf.validate, app.Command[DeleteRecord](deleteHandler[E]{c}))
	c.list = app.NewInstrumentedQuery(conf.logger, conf.validate, app.Query[ListRecords, []E](listHandler[E]{c}))
	c.find = app.NewInstrumentedQuery(conf.logger, conf.validate, app.Query[FindRecord, E](findHandler[E]{c}))

	return c
}

func (c *Catalog[E]) Kind() Kind[E] {
	return c.kind
}

func (c *Catalog[E]) Range() repository.IDRange {
	return c.kind.Range
}

// Load replaces the records in memory with the ones stored on disc.
// If the file is missing, the catalog is empty and the error wraps ErrNoData.
// Other errors keep the records read before the failure.
func (c *Catalog[E]) Load(ctx context.Context) error {
	err := c.repo.Load(ctx)

	n, _ := c.repo.Count(ctx)
	c.logger.DebugContext(ctx, "loaded records",
		slog.String("kind", c.kind.Plural),
		slog.Int("count", n),
	)

	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNoData, err)
	}

	return err //nolint:wrapcheck // error of the repository is already wrapped
}

// Persist writes all records to disc, replacing the file.
func (c *Catalog[E]) Persist(ctx context.Context) error {
	return c.repo.Persist(ctx) //nolint:wrapcheck // error of the repository is already wrapped
}

// List returns all records in their order of insertion.
func (c *Catalog[E]) List(ctx context.Context) []E {
	all, _ := c.list.H(ctx, ListRecords{})

	return all
}

// Find returns the record with id or ErrNotFound.
func (c *Catalog[E]) Find(ctx context.Context, id string) (E, error) {
	return c.find.H(ctx, FindRecord{ID: id}) //nolint:wrapcheck // use case errors are returned as is
}

// NextID returns the lowest free id of the range, or ErrNoCodesAvailable.
func (c *Catalog[E]) NextID(ctx context.Context) (string, error) {
	return c.repo.NextID(ctx) //nolint:wrapcheck // ErrNoCodesAvailable is part of the api
}

// ValidID reports whether raw is a number within the id range.
// It does not check if the id is in use.
func (c *Catalog[E]) ValidID(raw string) bool {
	return c.repo.IsIDValid(raw)
}

// Add stores a new record with the given id. values are all fields but the ID, in order.
func (c *Catalog[E]) Add(ctx context.Context, actor audit.Actor, id string, values []string) (E, error) {
	return c.add.H(ctx, AddRecord{Actor: actor, ID: id, Values: values}) //nolint:wrapcheck // use case errors are returned as is
}

// Modify replaces all fields but the ID of the record with id.
func (c *Catalog[E]) Modify(ctx context.Context, actor audit.Actor, id string, values []string) (E, error) {
	return c.modify.H(ctx, ModifyRecord{Actor: actor, ID: id, Values: values}) //nolint:wrapcheck // use case errors are returned as is
}

// Delete removes the record with id.
func (c *Catalog[E]) Delete(ctx context.Context, actor audit.Actor, id string) error {
	return c.remove.H(ctx, DeleteRecord{Actor: actor, ID: id}) //nolint:wrapcheck // use case errors are returned as is
}

// record adds the change to the audit log, if it happened in memory.
func (c *Catalog[E]) record(ctx context.Context, actor audit.Actor, verb string, id string, err error) error {
	if err != nil && !errors.Is(err, repository.ErrStore) {
		return err
	}

	c.audit.Record(ctx, actor, c.kind.Category, fmt.Sprintf("%s %s - ID: %s", c.kind.Singular, verb, id))

	if err != nil {
		c.logger.InfoContext(ctx, "change is not persisted",
			slog.String("kind", c.kind.Plural),
			slog.String("id", id),
			alog.Error(err),
		)

		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}

	return nil
}

func (c *Catalog[E]) checkID(id string) error {
	if !c.ValidID(id) {
		return fmt.Errorf("%w. Must be between %d and %d", ErrInvalidID, c.kind.Range.Low, c.kind.Range.High)
	}

	return nil
}

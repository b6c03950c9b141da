package catalog

import (
	"context"

	"github.com/angoly-ara/inventory/audit"
)

type (
	AddRecord struct {
		Actor  audit.Actor `validate:"-"`
		ID     string      `validate:"required,numeric"`
		Values []string
	}

	ModifyRecord struct {
		Actor  audit.Actor `validate:"-"`
		ID     string      `validate:"required,numeric"`
		Values []string
	}

	DeleteRecord struct {
		Actor audit.Actor `validate:"-"`
		ID    string      `validate:"required,numeric"`
	}

	ListRecords struct{}

	FindRecord struct {
		ID string `validate:"required"`
	}
)

type addHandler[E any] struct {
	c *Catalog[E]
}

func (h addHandler[E]) H(ctx context.Context, cmd AddRecord) (E, error) { //nolint:ireturn // valid use of generics
	if err := h.c.checkID(cmd.ID); err != nil {
		return *new(E), err
	}

	record, err := h.c.kind.build(cmd.ID, cmd.Values)
	if err != nil {
		return *new(E), err
	}

	err = h.c.repo.Create(ctx, record)

	return record, h.c.record(ctx, cmd.Actor, "added", cmd.ID, err)
}

type modifyHandler[E any] struct {
	c           *Catalog[E]
	keepOnEmpty bool
}

func (h modifyHandler[E]) H(ctx context.Context, cmd ModifyRecord) (E, error) { //nolint:ireturn // valid use of generics
	if err := h.c.checkID(cmd.ID); err != nil {
		return *new(E), err
	}

	current, err := h.c.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return *new(E), err //nolint:wrapcheck // ErrNotFound is part of the api
	}

	values := cmd.Values

	if h.keepOnEmpty {
		old := h.c.kind.Values(current)[1:]
		values = make([]string, len(cmd.Values))

		for i, v := range cmd.Values {
			values[i] = v
			if v == "" && i < len(old) {
				values[i] = old[i]
			}
		}
	}

	record, err := h.c.kind.build(cmd.ID, values)
	if err != nil {
		return *new(E), err
	}

	err = h.c.repo.Update(ctx, record)

	return record, h.c.record(ctx, cmd.Actor, "modified", cmd.ID, err)
}

type deleteHandler[E any] struct {
	c *Catalog[E]
}

func (h deleteHandler[E]) H(ctx context.Context, cmd DeleteRecord) error {
	if err := h.c.checkID(cmd.ID); err != nil {
		return err
	}

	err := h.c.repo.DeleteByID(ctx, cmd.ID)

	return h.c.record(ctx, cmd.Actor, "deleted", cmd.ID, err)
}

type listHandler[E any] struct {
	c *Catalog[E]
}

func (h listHandler[E]) H(ctx context.Context, _ ListRecords) ([]E, error) {
	return h.c.repo.All(ctx) //nolint:wrapcheck // the in memory repository does not fail
}

type findHandler[E any] struct {
	c *Catalog[E]
}

func (h findHandler[E]) H(ctx context.Context, q FindRecord) (E, error) { //nolint:ireturn // valid use of generics
	return h.c.repo.FindByID(ctx, q.ID) //nolint:wrapcheck // ErrNotFound is part of the api
}

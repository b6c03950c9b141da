package catalog_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angoly-ara/inventory/alog"
	"github.com/angoly-ara/inventory/app"
	"github.com/angoly-ara/inventory/audit"
	"github.com/angoly-ara/inventory/catalog"
	"github.com/angoly-ara/inventory/repository"
)

var (
	ctx = context.Background()
	ana = audit.User("ana")
)

func clientValues() []string {
	return []string{gofakeit.Name(), gofakeit.Street(), gofakeit.Phone(), gofakeit.Numerify("#######-#")}
}

func newClients(t *testing.T, opts ...catalog.Option) (*catalog.Catalog[catalog.Client], *audit.MemoryLog) {
	t.Helper()

	log := audit.NewMemoryLog()
	store := repository.NewBinaryStore("/data", repository.WithFs(afero.NewMemMapFs()))

	return catalog.New(catalog.ClientKind, store, append([]catalog.Option{catalog.WithAudit(log)}, opts...)...), log
}

func TestCatalog_Add(t *testing.T) {
	t.Parallel()

	t.Run("add with the next id", func(t *testing.T) {
		t.Parallel()

		clients, log := newClients(t)

		id, err := clients.NextID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "3107", id)

		values := clientValues()
		c, err := clients.Add(ctx, ana, id, values)
		assert.NoError(t, err)
		assert.Equal(t, catalog.Client{ID: "3107", Name: values[0], Address: values[1], Phone: values[2], TaxID: values[3]}, c)

		assert.Equal(t, []catalog.Client{c}, clients.List(ctx))
		assert.Equal(t, []string{"Client added - ID: 3107"}, log.Messages())
		assert.Equal(t, "ana", log.Entries()[0].User)
		assert.Equal(t, audit.CategoryClients, log.Entries()[0].Category)
	})

	t.Run("free ids are reused", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		for _, id := range []string{"3107", "3109"} {
			_, err := clients.Add(ctx, ana, id, clientValues())
			require.NoError(t, err)
		}

		id, err := clients.NextID(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "3108", id)
	})

	t.Run("no codes available", func(t *testing.T) {
		t.Parallel()

		kind := catalog.ClientKind.WithRange(repository.NewIDRange(3107, 3108))
		clients := catalog.New(kind, nil)

		for _, id := range []string{"3107", "3108"} {
			_, err := clients.Add(ctx, ana, id, clientValues())
			require.NoError(t, err)
		}

		_, err := clients.NextID(ctx)
		assert.ErrorIs(t, err, catalog.ErrNoCodesAvailable)
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		clients, log := newClients(t)

		_, err := clients.Add(ctx, ana, "3000", clientValues())
		assert.ErrorIs(t, err, catalog.ErrInvalidID)
		assert.EqualError(t, err, "ID not valid. Must be between 3107 and 3157")

		_, err = clients.Add(ctx, ana, "abc", clientValues())
		assert.ErrorIs(t, err, app.ErrInvalidInput)

		assert.Empty(t, clients.List(ctx))
		assert.Empty(t, log.Entries())
	})

	t.Run("id in use", func(t *testing.T) {
		t.Parallel()

		clients, log := newClients(t)

		_, err := clients.Add(ctx, ana, "3107", clientValues())
		require.NoError(t, err)

		_, err = clients.Add(ctx, ana, "3107", clientValues())
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
		assert.Len(t, log.Entries(), 1)
	})

	t.Run("wrong number of values", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		_, err := clients.Add(ctx, ana, "3107", []string{"only a name"})
		assert.ErrorIs(t, err, catalog.ErrFieldCount)
	})

	t.Run("store fails", func(t *testing.T) {
		t.Parallel()

		log := audit.NewMemoryLog()
		logger := alog.Test(t)
		store := repository.NewBinaryStore("/data", repository.WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())))
		clients := catalog.New(catalog.ClientKind, store, catalog.WithAudit(log), catalog.WithLogger(logger))

		_, err := clients.Add(ctx, ana, "3107", clientValues())
		assert.ErrorIs(t, err, catalog.ErrNotPersisted)
		assert.ErrorIs(t, err, repository.ErrStore)

		assert.Len(t, clients.List(ctx), 1, "change is kept in memory")
		assert.Equal(t, []string{"Client added - ID: 3107"}, log.Messages())
		logger.Contains("change is not persisted")
	})
}

func TestCatalog_Modify(t *testing.T) {
	t.Parallel()

	t.Run("modify in place", func(t *testing.T) {
		t.Parallel()

		clients, log := newClients(t)

		for _, id := range []string{"3107", "3108", "3109"} {
			_, err := clients.Add(ctx, ana, id, clientValues())
			require.NoError(t, err)
		}

		c, err := clients.Modify(ctx, ana, "3108", []string{"Ana", "Main St", "555", "1-1"})
		assert.NoError(t, err)

		list := clients.List(ctx)
		assert.Equal(t, c, list[1], "position is kept")
		assert.Equal(t, "Ana", list[1].Name)
		assert.Equal(t, "Client modified - ID: 3108", log.Messages()[3])
	})

	t.Run("empty input overwrites", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		_, err := clients.Add(ctx, ana, "3107", []string{"Ana", "Main St", "555", "1-1"})
		require.NoError(t, err)

		c, err := clients.Modify(ctx, ana, "3107", []string{"", "", "", ""})
		assert.NoError(t, err)
		assert.Equal(t, catalog.Client{ID: "3107"}, c)
	})

	t.Run("keep on empty", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t, catalog.WithKeepOnEmpty())

		_, err := clients.Add(ctx, ana, "3107", []string{"Ana", "Main St", "555", "1-1"})
		require.NoError(t, err)

		c, err := clients.Modify(ctx, ana, "3107", []string{"", "Side St", "", ""})
		assert.NoError(t, err)
		assert.Equal(t, catalog.Client{ID: "3107", Name: "Ana", Address: "Side St", Phone: "555", TaxID: "1-1"}, c)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		clients, log := newClients(t)

		_, err := clients.Add(ctx, ana, "3107", clientValues())
		require.NoError(t, err)

		before := clients.List(ctx)

		_, err = clients.Modify(ctx, ana, "3110", clientValues())
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.Equal(t, before, clients.List(ctx))
		assert.Len(t, log.Entries(), 1)
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		_, err := clients.Modify(ctx, ana, "9999", clientValues())
		assert.ErrorIs(t, err, catalog.ErrInvalidID)
	})
}

func TestCatalog_Delete(t *testing.T) {
	t.Parallel()

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		clients, log := newClients(t)

		for _, id := range []string{"3107", "3108", "3109"} {
			_, err := clients.Add(ctx, ana, id, clientValues())
			require.NoError(t, err)
		}

		err := clients.Delete(ctx, ana, "3108")
		assert.NoError(t, err)

		list := clients.List(ctx)
		require.Len(t, list, 2)
		assert.Equal(t, "3107", list[0].ID)
		assert.Equal(t, "3109", list[1].ID)
		assert.Equal(t, "Client deleted - ID: 3108", log.Messages()[3])

		id, _ := clients.NextID(ctx)
		assert.Equal(t, "3108", id)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		clients, log := newClients(t)

		err := clients.Delete(ctx, ana, "3107")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.Empty(t, log.Entries())
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		err := clients.Delete(ctx, ana, "3158")
		assert.True(t, errors.Is(err, catalog.ErrInvalidID))
	})
}

func TestCatalog_LoadPersist(t *testing.T) {
	t.Parallel()

	t.Run("missing file is reported", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		err := clients.Load(ctx)
		assert.ErrorIs(t, err, catalog.ErrNoData)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.ErrorIs(t, err, repository.ErrLoad)
		assert.Empty(t, clients.List(ctx), "the catalog is empty and usable")

		_, err = clients.Add(ctx, ana, "3107", clientValues())
		assert.NoError(t, err)
	})

	t.Run("records survive a restart", func(t *testing.T) {
		t.Parallel()

		store := repository.NewBinaryStore("/data", repository.WithFs(afero.NewMemMapFs()))
		products := catalog.New(catalog.ProductKind, store)

		p, err := products.Add(ctx, ana, "3209", []string{"Pencil", "Office", "1.50", "100"})
		require.NoError(t, err)
		require.NoError(t, products.Persist(ctx))

		restarted := catalog.New(catalog.ProductKind, store)
		require.NoError(t, restarted.Load(ctx))

		found, err := restarted.Find(ctx, "3209")
		assert.NoError(t, err)
		assert.Equal(t, p, found)
	})

	t.Run("load replaces the records in memory", func(t *testing.T) {
		t.Parallel()

		clients := catalog.New(catalog.ClientKind, nil)

		_, err := clients.Add(ctx, ana, "3120", clientValues())
		require.NoError(t, err)

		require.NoError(t, clients.Load(ctx))
		assert.Empty(t, clients.List(ctx), "noop store loads nothing")
	})
}

func TestCatalog_Find(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		clients, _ := newClients(t, catalog.WithLogger(logger))

		c, err := clients.Add(ctx, ana, "3107", clientValues())
		require.NoError(t, err)

		found, err := clients.Find(ctx, "3107")
		assert.NoError(t, err)
		assert.Equal(t, c, found)
		logger.Contains("executing query")
		logger.Contains("catalog.FindRecord")
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		_, err := clients.Find(ctx, "3107")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		t.Parallel()

		clients, _ := newClients(t)

		_, err := clients.Find(ctx, "")
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})
}

func TestCatalog_List(t *testing.T) {
	t.Parallel()

	logger := alog.Test(t)
	clients, _ := newClients(t, catalog.WithLogger(logger))

	assert.Empty(t, clients.List(ctx))
	logger.Contains("catalog.ListRecords")
}

func TestCatalog_ValidID(t *testing.T) {
	t.Parallel()

	warehouses := catalog.New(catalog.WarehouseKind, nil)

	assert.True(t, warehouses.ValidID("3158"))
	assert.True(t, warehouses.ValidID("3208"))
	assert.False(t, warehouses.ValidID("3157"))
	assert.False(t, warehouses.ValidID("3209"))
	assert.False(t, warehouses.ValidID("bodega"))
	assert.False(t, warehouses.ValidID(""))
	assert.Equal(t, repository.NewIDRange(3158, 3208), warehouses.Range())
}

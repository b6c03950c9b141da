package repository_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/angoly-ara/inventory/codec"
	"github.com/angoly-ara/inventory/repository"
)

const dataDir = "/data"

func TestStores(t *testing.T) {
	t.Parallel()

	stores := map[string]func(fs afero.Fs) repository.Store{
		"binary": func(fs afero.Fs) repository.Store {
			return repository.NewBinaryStore(dataDir, repository.WithFs(fs))
		},
		"json": func(fs afero.Fs) repository.Store {
			return repository.NewJSONStore(dataDir, repository.WithFs(fs))
		},
		"yaml": func(fs afero.Fs) repository.Store {
			return repository.NewYAMLStore(dataDir, repository.WithFs(fs))
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("load from empty folder", func(t *testing.T) {
				t.Parallel()

				repo := newRangedRepository(repository.WithStore(newStore(afero.NewMemMapFs())))

				err := repo.Load(ctx)
				assert.ErrorIs(t, err, os.ErrNotExist)
				assert.ErrorIs(t, err, repository.ErrLoad)

				c, _ := repo.Count(ctx)
				assert.Equal(t, 0, c)
			})

			t.Run("store and load", func(t *testing.T) {
				t.Parallel()

				fs := afero.NewMemMapFs()
				store := newStore(fs)

				repo := newRangedRepository(repository.WithStore(store))
				entities := []Entity{testEntity("3107"), testEntity("3108"), testEntity("3109")}

				for _, e := range entities {
					require.NoError(t, repo.Create(ctx, e))
				}

				ok, _ := afero.Exists(fs, filepath.Join(dataDir, "Entity.bin"))
				assert.True(t, ok)

				loaded := newRangedRepository(repository.WithStore(store))
				err := loaded.Load(ctx)
				assert.NoError(t, err)

				all, _ := loaded.All(ctx)
				assert.Equal(t, entities, all)
			})

			t.Run("store empty collection", func(t *testing.T) {
				t.Parallel()

				store := newStore(afero.NewMemMapFs())

				repo := newRangedRepository(repository.WithStore(store))
				require.NoError(t, repo.Persist(ctx))

				err := repo.Load(ctx)
				assert.NoError(t, err)

				c, _ := repo.Count(ctx)
				assert.Equal(t, 0, c)
			})

			t.Run("empty file", func(t *testing.T) {
				t.Parallel()

				fs := afero.NewMemMapFs()

				repo := newRangedRepository(repository.WithStore(newStore(fs)))
				require.NoError(t, repo.Create(ctx, testEntity("3107")))
				require.NoError(t, afero.WriteFile(fs, filepath.Join(dataDir, "Entity.bin"), nil, os.ModePerm))

				err := repo.Load(ctx)
				assert.NoError(t, err)

				c, _ := repo.Count(ctx)
				assert.Equal(t, 0, c)
			})

			t.Run("unwritable", func(t *testing.T) {
				t.Parallel()

				repo := newRangedRepository(repository.WithStore(newStore(afero.NewReadOnlyFs(afero.NewMemMapFs()))))

				err := repo.Create(ctx, testEntity("3107"))
				assert.ErrorIs(t, err, repository.ErrStore)

				c, _ := repo.Count(ctx)
				assert.Equal(t, 1, c, "in memory change is kept")
			})
		})
	}
}

func TestBinaryStore(t *testing.T) {
	t.Parallel()

	t.Run("file format", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		store := repository.NewBinaryStore(dataDir, repository.WithFs(fs)).
			WithCodecOptions(codec.WithByteOrder(binary.LittleEndian))

		err := store.Store("clientes.bin", []Entity{{ID: "3107", Name: "Ana"}})
		require.NoError(t, err)

		b, err := afero.ReadFile(fs, filepath.Join(dataDir, "clientes.bin"))
		require.NoError(t, err)

		expected := binary.LittleEndian.AppendUint64(nil, 4)
		expected = append(expected, "3107"...)
		expected = binary.LittleEndian.AppendUint64(expected, 3)
		expected = append(expected, "Ana"...)

		assert.Equal(t, expected, b)
	})

	t.Run("truncated file", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		store := repository.NewBinaryStore(dataDir, repository.WithFs(fs))
		entities := []Entity{testEntity("3107"), testEntity("3108")}

		require.NoError(t, store.Store("Entity.bin", entities))

		path := filepath.Join(dataDir, "Entity.bin")
		b, _ := afero.ReadFile(fs, path)
		require.NoError(t, afero.WriteFile(fs, path, b[:len(b)-2], os.ModePerm))

		repo := newRangedRepository(repository.WithStore(store))

		err := repo.Load(ctx)
		assert.ErrorIs(t, err, codec.ErrTruncated)
		assert.ErrorIs(t, err, repository.ErrLoad)

		all, _ := repo.All(ctx)
		assert.Equal(t, entities[:1], all, "complete records are kept")

		lenient := newRangedRepository(repository.WithStore(
			repository.NewBinaryStore(dataDir, repository.WithFs(fs)).WithCodecOptions(codec.Lenient()),
		))

		err = lenient.Load(ctx)
		assert.NoError(t, err)
	})

	t.Run("legacy charset", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		store := repository.NewBinaryStore(dataDir, repository.WithFs(fs)).
			WithCodecOptions(codec.WithCharmap(charmap.Windows1252))

		repo := newRangedRepository(repository.WithStore(store))
		require.NoError(t, repo.Create(ctx, Entity{ID: "3107", Name: "Peña"}))

		b, _ := afero.ReadFile(fs, filepath.Join(dataDir, "Entity.bin"))
		assert.Contains(t, string(b), "Pe\xf1a")

		require.NoError(t, repo.Load(ctx))

		got, err := repo.FindByID(ctx, "3107")
		assert.NoError(t, err)
		assert.Equal(t, "Peña", got.Name)
	})

	t.Run("creates the directory", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		store := repository.NewBinaryStore("/some/nested/dir", repository.WithFs(fs))

		err := store.Store("x.bin", []Entity{})
		assert.NoError(t, err)

		ok, _ := afero.DirExists(fs, "/some/nested/dir")
		assert.True(t, ok)
		assert.Equal(t, "/some/nested/dir", store.Dir())
	})
}

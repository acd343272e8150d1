package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

func openTemp(t *testing.T) *SaveRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "garden.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveRepository_GetPutOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	_, err := repo.Get(ctx, "save:main")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "save:main", []byte(`{"version":1}`)))
	require.NoError(t, repo.Put(ctx, "save:main", []byte(`{"version":2}`)))

	data, err := repo.Get(ctx, "save:main")
	require.NoError(t, err)
	assert.Equal(t, `{"version":2}`, string(data))
}

func TestSaveRepository_KeysAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	for _, k := range []string{"cache:b", "cache:a", "save:main", "cachet"} {
		require.NoError(t, repo.Put(ctx, k, []byte("{}")))
	}

	keys, err := repo.Keys(ctx, "cache:")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache:a", "cache:b"}, keys)

	require.NoError(t, repo.Delete(ctx, "cache:a"))
	require.NoError(t, repo.Delete(ctx, "missing"))

	keys, err = repo.Keys(ctx, "cache")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache:b", "cachet"}, keys)
}

func TestSaveRepository_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "garden.db")

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.Put(ctx, "save:main", []byte("persisted")))
	require.NoError(t, repo.Close())

	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()

	data, err := repo.Get(ctx, "save:main")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(data))
}

func TestIsFull(t *testing.T) {
	assert.True(t, isFull(errors.New("database or disk is full (13)")))
	assert.False(t, isFull(errors.New("constraint failed")))
}

package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localize/core/kvstore"
)

func TestFile(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a path", func(t *testing.T) {
		_, err := kvstore.NewFile("")
		assert.Error(t, err)
	})

	t.Run("starts empty when file does not exist", func(t *testing.T) {
		store, err := kvstore.NewFile(filepath.Join(t.TempDir(), "localize.json"))
		require.NoError(t, err)
		defer store.Close()

		_, found, err := store.Get(ctx, "bundle:en")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "localize.json")

		store, err := kvstore.NewFile(path)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, "bundle:en", []byte(`{"nav.home":"Home"}`)))
		require.NoError(t, store.Set(ctx, "version:en", []byte("v1")))
		require.NoError(t, store.Close())

		reopened, err := kvstore.NewFile(path)
		require.NoError(t, err)
		defer reopened.Close()

		value, found, err := reopened.Get(ctx, "bundle:en")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []byte(`{"nav.home":"Home"}`), value)

		keys, err := reopened.Keys(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"bundle:en", "version:en"}, keys)
	})

	t.Run("treats corrupted file as empty store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "localize.json")
		require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

		store, err := kvstore.NewFile(path)
		require.NoError(t, err)
		defer store.Close()

		_, found, err := store.Get(ctx, "bundle:en")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete persists removal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "localize.json")

		store, err := kvstore.NewFile(path)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, "bundle:en", []byte("v")))
		require.NoError(t, store.Delete(ctx, "bundle:en"))
		require.NoError(t, store.Close())

		reopened, err := kvstore.NewFile(path)
		require.NoError(t, err)
		defer reopened.Close()

		_, found, err := reopened.Get(ctx, "bundle:en")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store, err := kvstore.NewFile(filepath.Join(t.TempDir(), "localize.json"))
		require.NoError(t, err)
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}

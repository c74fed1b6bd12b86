package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localize/core/kvstore"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns miss for unknown key", func(t *testing.T) {
		store := kvstore.NewMemory()
		defer store.Close()

		value, found, err := store.Get(ctx, "bundle:en")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		store := kvstore.NewMemory()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "bundle:en", []byte(`{"a":"b"}`)))

		value, found, err := store.Get(ctx, "bundle:en")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(`{"a":"b"}`), value)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		store := kvstore.NewMemory()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", []byte("abc")))

		value, _, err := store.Get(ctx, "k")
		require.NoError(t, err)
		value[0] = 'z'

		again, _, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("delete removes key and tolerates missing key", func(t *testing.T) {
		store := kvstore.NewMemory()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))

		_, found, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("keys filters by prefix and sorts", func(t *testing.T) {
		store := kvstore.NewMemory()
		defer store.Close()

		require.NoError(t, store.Set(ctx, "bundle:pl", []byte("1")))
		require.NoError(t, store.Set(ctx, "bundle:en", []byte("2")))
		require.NoError(t, store.Set(ctx, "version:en", []byte("3")))

		keys, err := store.Keys(ctx, "bundle:")
		require.NoError(t, err)
		assert.Equal(t, []string{"bundle:en", "bundle:pl"}, keys)
	})

	t.Run("operations after close return ErrClosed", func(t *testing.T) {
		store := kvstore.NewMemory()
		require.NoError(t, store.Close())

		_, _, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, kvstore.ErrClosed)
		assert.ErrorIs(t, store.Set(ctx, "k", nil), kvstore.ErrClosed)
		assert.ErrorIs(t, store.Delete(ctx, "k"), kvstore.ErrClosed)
		_, err = store.Keys(ctx, "")
		assert.ErrorIs(t, err, kvstore.ErrClosed)
	})
}

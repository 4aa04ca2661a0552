package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	store := NewMemoryObjectStorage()
	ctx := context.Background()

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "designs/a/design.png", []byte("png-bytes"), "image/png"))

		data, contentType, ok := store.Get("designs/a/design.png")
		require.True(t, ok)
		assert.Equal(t, []byte("png-bytes"), data)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("stored data is a copy", func(t *testing.T) {
		original := []byte("mutable")
		require.NoError(t, store.Put(ctx, "k", original, "text/plain"))
		original[0] = 'X'

		data, _, ok := store.Get("k")
		require.True(t, ok)
		assert.Equal(t, byte('m'), data[0])
	})

	t.Run("url", func(t *testing.T) {
		url, err := store.URL(ctx, "designs/a/design.png")
		require.NoError(t, err)
		assert.Contains(t, url, "designs/a/design.png")
	})

	t.Run("rejects empty key", func(t *testing.T) {
		require.Error(t, store.Put(ctx, "", nil, ""))
		_, err := store.URL(ctx, "")
		require.Error(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		_, _, ok := store.Get("nope")
		assert.False(t, ok)
	})
}

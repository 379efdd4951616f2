package kvstore

import (
	"context"
	"testing"

	"dashboard-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every KeyValueStore backend shares.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) domain.KeyValueStore) {
	ctx := context.Background()

	t.Run("missing key is not an error", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(ctx, "ns", "nope")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "ns", "userId", "42"))
		require.NoError(t, s.Set(ctx, "ns", "userId", "43"))

		v, ok, err := s.Get(ctx, "ns", "userId")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "43", v)
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "a", "k", "1"))

		_, ok, err := s.Get(ctx, "b", "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete removes one key", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "ns", "a", "1"))
		require.NoError(t, s.Set(ctx, "ns", "b", "2"))
		require.NoError(t, s.Delete(ctx, "ns", "a"))
		require.NoError(t, s.Delete(ctx, "ns", "never-set"))

		keys, err := s.Keys(ctx, "ns")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, keys)
	})

	t.Run("keys are sorted", func(t *testing.T) {
		s := newStore(t)
		for _, k := range []string{"userId", "cartItems_42", "token"} {
			require.NoError(t, s.Set(ctx, "ns", k, "v"))
		}
		keys, err := s.Keys(ctx, "ns")
		require.NoError(t, err)
		assert.Equal(t, []string{"cartItems_42", "token", "userId"}, keys)
	})

	t.Run("clear empties only its namespace", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "ns", "a", "1"))
		require.NoError(t, s.Set(ctx, "other", "a", "1"))
		require.NoError(t, s.Clear(ctx, "ns"))

		keys, err := s.Keys(ctx, "ns")
		require.NoError(t, err)
		assert.Empty(t, keys)

		_, ok, err := s.Get(ctx, "other", "a")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

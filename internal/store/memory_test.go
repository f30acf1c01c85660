package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilegw/go-sync-gateway/models"
)

func TestMemoryStateStore_RoundTrip(t *testing.T) {
	s := NewMemoryStateStore()
	ctx := context.Background()

	_, err := s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 0)
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, s.SetState(ctx, "dev-1", models.ScopeContent, "f1", 1, []byte("one")))

	blob, err := s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), blob)

	// Scopes are isolated by device, type and key.
	_, err = s.GetState(ctx, "dev-2", models.ScopeContent, "f1", 1)
	assert.ErrorIs(t, err, ErrStateNotFound)
	_, err = s.GetState(ctx, "dev-1", models.ScopeHierarchy, "f1", 1)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

// Writing counter N keeps N-1 as a retransmission fallback and prunes
// everything older.
func TestMemoryStateStore_Prune(t *testing.T) {
	s := NewMemoryStateStore()
	ctx := context.Background()

	for c := 1; c <= 4; c++ {
		require.NoError(t, s.SetState(ctx, "dev-1", models.ScopeContent, "f1", c, []byte{byte(c)}))
	}

	_, err := s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 4)
	assert.NoError(t, err)
	_, err = s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 3)
	assert.NoError(t, err)
	_, err = s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 2)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStateStore_GetLatestState(t *testing.T) {
	s := NewMemoryStateStore()
	ctx := context.Background()

	_, _, err := s.GetLatestState(ctx, "dev-1", models.ScopeContent, "f1")
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, s.SetState(ctx, "dev-1", models.ScopeContent, "f1", 1, []byte("one")))
	require.NoError(t, s.SetState(ctx, "dev-1", models.ScopeContent, "f1", 2, []byte("two")))

	blob, counter, err := s.GetLatestState(ctx, "dev-1", models.ScopeContent, "f1")
	require.NoError(t, err)
	assert.Equal(t, 2, counter)
	assert.Equal(t, []byte("two"), blob)
}

func TestMemoryStateStore_DeleteState(t *testing.T) {
	s := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, s.SetState(ctx, "dev-1", models.ScopeContent, "f1", 1, []byte("one")))
	require.NoError(t, s.SetState(ctx, "dev-1", models.ScopeContent, "f2", 1, []byte("other")))

	require.NoError(t, s.DeleteState(ctx, "dev-1", models.ScopeContent, "f1"))

	_, err := s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 1)
	assert.ErrorIs(t, err, ErrStateNotFound)

	// Other keys are untouched.
	_, err = s.GetState(ctx, "dev-1", models.ScopeContent, "f2", 1)
	assert.NoError(t, err)
}

// The store hands out copies; callers mutating a returned blob must not
// corrupt the stored one.
func TestMemoryStateStore_CopyOnRead(t *testing.T) {
	s := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, s.SetState(ctx, "dev-1", models.ScopeContent, "f1", 1, []byte("abc")))

	blob, err := s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 1)
	require.NoError(t, err)
	blob[0] = 'x'

	again, err := s.GetState(ctx, "dev-1", models.ScopeContent, "f1", 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

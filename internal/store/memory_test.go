package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_MissingKeyReturnsNil(t *testing.T) {
	memory := NewMemoryStore()

	value, err := memory.Get(context.Background(), "absent")

	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStore_PutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryStore()

	require.NoError(t, memory.Put(ctx, "key", []byte("value")))

	value, err := memory.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestMemoryStore_OverwriteReplacesValue(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryStore()

	require.NoError(t, memory.Put(ctx, "key", []byte("one")))
	require.NoError(t, memory.Put(ctx, "key", []byte("two")))

	value, err := memory.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), value)
}

func TestMemoryStore_DefensiveCopies(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryStore()

	original := []byte("value")
	require.NoError(t, memory.Put(ctx, "key", original))

	// Mutating the caller's slice must not affect the stored value.
	original[0] = 'X'

	stored, err := memory.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), stored)

	// Mutating a returned slice must not affect later reads.
	stored[0] = 'Y'
	again, err := memory.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}

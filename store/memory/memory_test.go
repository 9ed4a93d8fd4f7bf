package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/inventory-engine/store/memory"
)

func TestGetMissingKey(t *testing.T) {
	s := memory.New()

	raw, ok, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestPutThenGet(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", []byte("v1")))
	raw, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), raw)

	// Overwrite
	require.NoError(t, s.Put(ctx, "k", []byte("v2")))
	raw, _, _ = s.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), raw)
}

func TestBlobsAreIsolatedCopies(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	src := []byte("original")
	require.NoError(t, s.Put(ctx, "k", src))
	src[0] = 'X'

	raw, _, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("original"), raw)

	raw[0] = 'Y'
	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("original"), again)
}

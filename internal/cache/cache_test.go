package cache

import (
	"context"
	"testing"
	"time"

	"github.com/quantmind-br/ymaps2gpx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// TestBadgerCache_SetGet tests basic set/get round trips
func TestBadgerCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "https://example.com/maps", []byte("page body"), time.Hour)
	require.NoError(t, err)

	got, err := c.Get(ctx, "https://example.com/maps")
	require.NoError(t, err)
	assert.Equal(t, []byte("page body"), got)
}

// TestBadgerCache_Miss tests cache miss classification
func TestBadgerCache_Miss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "https://example.com/nothing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

// TestBadgerCache_HasDelete tests existence checks and deletion
func TestBadgerCache_HasDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("v"), time.Hour))
	assert.True(t, c.Has(ctx, "key"))

	require.NoError(t, c.Delete(ctx, "key"))
	assert.False(t, c.Has(ctx, "key"))
}

// TestGenerateKey tests URL normalization for keys
func TestGenerateKey(t *testing.T) {
	t.Run("equivalent URLs share a key", func(t *testing.T) {
		a := GenerateKey("https://Example.com/maps/")
		b := GenerateKey("https://example.com/maps")
		assert.Equal(t, a, b)
	})

	t.Run("default port is dropped", func(t *testing.T) {
		a := GenerateKey("https://example.com:443/x")
		b := GenerateKey("https://example.com/x")
		assert.Equal(t, a, b)
	})

	t.Run("different queries differ", func(t *testing.T) {
		a := GenerateKey("https://example.com/x?a=1")
		b := GenerateKey("https://example.com/x?a=2")
		assert.NotEqual(t, a, b)
	})

	t.Run("prefixes separate namespaces", func(t *testing.T) {
		assert.NotEqual(t, PageKey("https://example.com"), GeoKey("https://example.com"))
	})
}

package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopFront/internal/kv"
)

var ctx = context.Background()

func newFileStore(t *testing.T) (*kv.FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.json")
	return kv.NewFileStore(path), path
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, _ := newFileStore(t)

	require.NoError(t, s.Set(ctx, "cart", `[{"id":"1","qty":2}]`))

	v, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1","qty":2}]`, v)
}

func TestFileStoreMissingKey(t *testing.T) {
	s, _ := newFileStore(t)

	require.NoError(t, s.Set(ctx, "cart", "x"))

	_, ok, err := s.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreMissingFile(t *testing.T) {
	s, _ := newFileStore(t)

	_, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreKeysAreIndependent(t *testing.T) {
	s, _ := newFileStore(t)

	require.NoError(t, s.Set(ctx, "cart", "a"))
	require.NoError(t, s.Set(ctx, "authored_products", "b"))
	require.NoError(t, s.Set(ctx, "cart", "a2"))

	v, ok, err := s.Get(ctx, "authored_products")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestFileStoreCorruptedFileReadsAsEmpty(t *testing.T) {
	s, path := newFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	// The next write replaces the corrupted bag.
	require.NoError(t, s.Set(ctx, "cart", "fresh"))
	v, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestFileStorePing(t *testing.T) {
	s, _ := newFileStore(t)
	assert.NoError(t, s.Ping(ctx))

	missing := kv.NewFileStore(filepath.Join(t.TempDir(), "gone", "store.json"))
	assert.Error(t, missing.Ping(ctx))
}

func TestMemStore(t *testing.T) {
	s := kv.NewMemStore()

	_, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "cart", "v1"))
	require.NoError(t, s.Set(ctx, "cart", "v2"))

	v, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", v)

	assert.NoError(t, s.Ping(ctx))
}

package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderCache_PutGet(t *testing.T) {
	cache, err := OpenCacheDir(filepath.Join(t.TempDir(), "c"))
	require.NoError(t, err)

	key := CacheKey(42, "a.h", 7)
	_, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.Put(key, &HeaderEntry{Header: "#ifndef A\n", Items: 3}))
	entry, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "#ifndef A\n", entry.Header)
	require.Equal(t, 3, entry.Items)

	require.NoError(t, cache.DropAll())
	_, ok, err = cache.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHeaderCache_Nil(t *testing.T) {
	var cache *HeaderCache
	require.NoError(t, cache.Put(1, &HeaderEntry{}))
	_, ok, err := cache.Get(1)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, cache.DropAll())
}

func TestCacheKey(t *testing.T) {
	base := CacheKey(1, "a.h", 2)
	require.Equal(t, base, CacheKey(1, "a.h", 2))
	require.NotEqual(t, base, CacheKey(3, "a.h", 2))
	require.NotEqual(t, base, CacheKey(1, "b.h", 2))
	require.NotEqual(t, base, CacheKey(1, "a.h", 4))
}

func TestOptions_Fingerprint(t *testing.T) {
	a := Options{Banner: "x"}
	b := Options{Banner: "y"}
	require.Equal(t, a.Fingerprint(), Options{Banner: "x", MaxDiagnostics: 5}.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), Options{Banner: "x", AttributeMacros: []string{"API"}}.Fingerprint())
}

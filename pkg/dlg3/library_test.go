package dlg3

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryViewport(t *testing.T) {
	lib, err := OpenLibrary(testRoot, DefaultLibraryOptions())
	require.NoError(t, err)

	o := zone19Offset
	east := Bounds{MinLat: o + 10, MaxLat: o + 20, MinLong: o + 150, MaxLong: o + 160}

	files, errs := lib.FilesForViewport(east, QueryOptions{})
	require.Empty(t, errs)
	require.Len(t, files, 1)
	assert.Equal(t, "1653472.HY.opt", filepath.Base(files[0].Path))
	assert.True(t, files[0].Indexed())

	// The second request is served from the cache
	again, errs := lib.FilesForViewport(east, QueryOptions{})
	require.Empty(t, errs)
	assert.Same(t, files[0], again[0])

	stats := lib.Stats()
	assert.Equal(t, 3, stats.IndexedFiles)
	assert.Equal(t, 1, stats.CachedFiles)
	assert.Equal(t, int64(2), stats.Loads)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.InDelta(t, 0.5, stats.HitRate(), 1e-9)
}

func TestLibraryGet(t *testing.T) {
	idx := buildTestIndex(t)
	lib, err := NewLibrary(idx, NewParser(), LibraryOptions{Load: DefaultLoadOptions()})
	require.NoError(t, err)
	assert.Same(t, idx, lib.Index())

	f, err := lib.Get(roadsF01)
	require.NoError(t, err)
	assert.Equal(t, "ROADS AND TRAILS", f.CategoryName())

	_, err = lib.Get(filepath.Join(t.TempDir(), "none.opt"))
	assert.Error(t, err)
	assert.Equal(t, int64(1), lib.Stats().Failed)
}

func TestLibraryStatsEmpty(t *testing.T) {
	assert.Zero(t, LibraryStats{}.HitRate())
}

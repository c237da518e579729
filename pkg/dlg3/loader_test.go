package dlg3

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sections(set *FileSet) []string {
	var r []string
	for _, f := range set.Files {
		r = append(r, f.Section()+" "+f.CategoryName())
	}
	return r
}

func TestLoadFilesParallel(t *testing.T) {
	paths := []string{roadsF01, hydroF02, hydroF01}
	want := []string{"F01 ROADS AND TRAILS", "F02 HYDROGRAPHY", "F01 HYDROGRAPHY"}

	for _, parallel := range []bool{true, false} {
		opts := DefaultLoadOptions()
		opts.Parallel = parallel
		opts.Workers = 2

		var calls, last int
		opts.Progress = func(loaded, total int) {
			calls++
			last = loaded
			assert.Equal(t, len(paths), total)
		}

		set, errs := LoadFilesParallel(paths, NewParser(), opts)
		require.Empty(t, errs)
		assert.Equal(t, want, sections(set), "parallel=%v", parallel)
		assert.Equal(t, len(paths), calls)
		assert.Equal(t, len(paths), last)
	}
}

func TestLoadFilesSkipErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "1653479.HY.opt.gz")
	paths := []string{hydroF01, missing, hydroF02}

	var log bytes.Buffer
	opts := DefaultLoadOptions()
	opts.ErrorLog = &log

	set, errs := LoadFilesParallel(paths, NewParser(), opts)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), missing)
	assert.Contains(t, log.String(), "Error loading file: ")
	assert.Contains(t, log.String(), missing)
	assert.Equal(t, []string{"F01 HYDROGRAPHY", "F02 HYDROGRAPHY"}, sections(set))

	opts.SkipErrors = false
	set, errs = LoadFilesParallel(paths, NewParser(), opts)
	assert.Nil(t, set)
	assert.Len(t, errs, 1)
}

func TestLoadFilesEmpty(t *testing.T) {
	set, errs := LoadFilesParallel(nil, NewParser(), DefaultLoadOptions())
	assert.Empty(t, errs)
	assert.Empty(t, set.Files)
}

func TestLoadFilesThroughCache(t *testing.T) {
	cache, err := NewFileCache(8)
	require.NoError(t, err)

	opts := DefaultLoadOptions()
	opts.Cache = cache
	opts.Parallel = false

	_, errs := LoadFilesParallel([]string{hydroF01, hydroF01}, NewParser(), opts)
	require.Empty(t, errs)
	assert.Equal(t, int64(1), cache.Stats().Hits)
}

func TestFileSetBounds(t *testing.T) {
	set, errs := LoadFilesParallel([]string{hydroF01, roadsF01}, NewParser(), DefaultLoadOptions())
	require.Empty(t, errs)

	want := Bounds{MinLat: 0, MaxLat: 100, MinLong: 0, MaxLong: 100}.Shift(zone19Offset)
	assert.Equal(t, want, set.Bounds())
}

func TestLoadErrorsNamePathOnce(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "0000000.HY.opt")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

	cache, err := NewFileCache(2)
	require.NoError(t, err)

	for _, c := range []*FileCache{nil, cache} {
		opts := DefaultLoadOptions()
		opts.Cache = c

		_, errs := LoadFilesParallel([]string{bad}, NewParser(), opts)
		require.Len(t, errs, 1)
		assert.Equal(t, 1, strings.Count(errs[0].Error(), bad), "cache=%v: %v", c != nil, errs[0])
	}
}

func TestLoadAllStopsAfterFirstError(t *testing.T) {
	paths := make([]string, 100)
	for i := range paths {
		paths[i] = fmt.Sprintf("p%d", i)
	}

	var calls atomic.Int64
	gate := make(chan struct{})
	load := func(path string) (int, error) {
		calls.Add(1)
		if path == "p0" {
			return 0, errors.New("bad file")
		}
		<-gate
		return 1, nil
	}

	opts := DefaultLoadOptions()
	opts.Workers = 1
	opts.SkipErrors = false

	values, errs := loadAll(paths, opts, load)
	assert.Nil(t, values)
	require.Len(t, errs, 1)

	// The worker may already hold one more job; it must not take another
	close(gate)
	assert.Never(t, func() bool { return calls.Load() > 2 }, 100*time.Millisecond, 10*time.Millisecond)
}

package dlg3

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryNames(entries []FileEntry) []string {
	var r []string
	for _, e := range entries {
		r = append(r, filepath.Base(e.Path))
	}
	return r
}

func buildTestIndex(t *testing.T) *FileIndex {
	t.Helper()
	idx, err := BuildIndexFromDir(testRoot, NewParser(), DefaultLoadOptions())
	require.NoError(t, err)
	return idx
}

func TestBuildIndexFromDir(t *testing.T) {
	idx := buildTestIndex(t)
	require.Equal(t, 3, idx.Count())

	want := Bounds{MinLat: 0, MaxLat: 100, MinLong: 0, MaxLong: 200}.Shift(zone19Offset)
	assert.Equal(t, want, idx.Bounds())

	for _, e := range idx.All() {
		assert.Equal(t, "BOSTON", e.DataCell)
		assert.Equal(t, 19, e.Zone)
	}
}

func TestIndexQuery(t *testing.T) {
	idx := buildTestIndex(t)
	o := zone19Offset

	tests := []struct {
		name string
		view Bounds
		opts QueryOptions
		want []string
	}{
		{
			name: "everything",
			view: Bounds{MinLat: o - 10, MaxLat: o + 110, MinLong: o - 10, MaxLong: o + 210},
			want: []string{"1653471.HY.opt.gz", "1653472.HY.opt", "1653481.RD.opt.gz"},
		},
		{
			name: "east section only",
			view: Bounds{MinLat: o + 10, MaxLat: o + 20, MinLong: o + 150, MaxLong: o + 160},
			want: []string{"1653472.HY.opt"},
		},
		{
			name: "category filter",
			view: Bounds{MinLat: o - 10, MaxLat: o + 110, MinLong: o - 10, MaxLong: o + 210},
			opts: QueryOptions{Categories: []string{"ROADS AND TRAILS"}},
			want: []string{"1653481.RD.opt.gz"},
		},
		{
			name: "section filter",
			view: Bounds{MinLat: o - 10, MaxLat: o + 110, MinLong: o - 10, MaxLong: o + 210},
			opts: QueryOptions{Sections: []string{"F01"}},
			want: []string{"1653471.HY.opt.gz", "1653481.RD.opt.gz"},
		},
		{
			name: "unshifted coordinates miss",
			view: Bounds{MinLat: 10, MaxLat: 20, MinLong: 10, MaxLong: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entryNames(idx.Query(tt.view, tt.opts)))
		})
	}
}

func TestBuildIndexFromDirErrors(t *testing.T) {
	_, err := BuildIndexFromDir(t.TempDir(), NewParser(), DefaultLoadOptions())
	assert.ErrorContains(t, err, "no DLG-3 files found")

	_, err = BuildIndexFromDir(filepath.Join(t.TempDir(), "missing"), NewParser(), DefaultLoadOptions())
	assert.Error(t, err)
}

func TestNewFileEntry(t *testing.T) {
	h, err := NewParser().ParseHeaders(hydroF02)
	require.NoError(t, err)

	e := NewFileEntry(hydroF02, h)
	assert.Equal(t, "F02", e.Section)
	assert.Equal(t, "HYDROGRAPHY", e.Category)
	assert.Equal(t, Bounds{MinLat: 0, MaxLat: 100, MinLong: 100, MaxLong: 200}.Shift(zone19Offset), e.Extent)
}

func TestFindFiles(t *testing.T) {
	paths, err := FindFiles(testRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(hydroDir, "1653471.HY.opt.gz"),
		filepath.Join(hydroDir, "1653472.HY.opt"),
		filepath.Join(roadsDir, "1653481.RD.opt.gz"),
	}, paths)
}

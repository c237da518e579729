package dlg3

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRoot     = "../../testdata/dlg"
	hydroDir     = testRoot + "/boston-e_MA/hydrography"
	roadsDir     = testRoot + "/boston-e_MA/transportation"
	hydroF01     = hydroDir + "/1653471.HY.opt.gz"
	hydroF02     = hydroDir + "/1653472.HY.opt"
	roadsF01     = roadsDir + "/1653481.RD.opt.gz"
	zone19Offset = 9 * 500_000.0
)

func parseTestFile(t *testing.T, path string) *File {
	t.Helper()
	f, err := NewParser().Parse(path)
	require.NoError(t, err)
	return f
}

// copyTestFile copies a fixture into a temp dir, optionally cutting it to n bytes
func copyTestFile(t *testing.T, src, dir string, n int) string {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	if n >= 0 && n < len(data) {
		data = data[:n]
	}
	dst := filepath.Join(dir, filepath.Base(src))
	require.NoError(t, os.WriteFile(dst, data, 0o644))
	return dst
}

func TestPublicAPI(t *testing.T) {
	f := parseTestFile(t, hydroF01)

	assert.Equal(t, "BOSTON", f.DataCell())
	assert.Equal(t, "MA-NH", f.States())
	assert.Equal(t, "F01", f.Section())
	assert.Equal(t, 19, f.Zone())
	assert.Equal(t, "HYDROGRAPHY", f.CategoryName())
	assert.Equal(t, "1653471.HY.opt.gz", f.Filename())
	assert.Equal(t, "BOSTON, MA-NH, F01", f.String())

	assert.Len(t, f.Nodes, 3)
	assert.Len(t, f.Areas, 6)
	assert.Len(t, f.Lines, 8)
	assert.True(t, f.Indexed())
}

func TestPlainAndGzipAgree(t *testing.T) {
	gz := parseTestFile(t, hydroF01)
	plain := parseTestFile(t, hydroF02)

	// Same entities, different section and control points
	assert.Equal(t, gz.Areas, plain.Areas)
	assert.Equal(t, gz.Lines, plain.Lines)
	assert.Equal(t, "F02", plain.Section())
	assert.NotEqual(t, gz.CtrlPointsBBox(), plain.CtrlPointsBBox())
}

func TestFileBounds(t *testing.T) {
	f := parseTestFile(t, hydroF01)
	assert.Equal(t, Bounds{MinLat: 0, MaxLat: 100, MinLong: 0, MaxLong: 100}, f.Bounds())
	assert.Equal(t, f.BoundingBox(), f.Bounds())
}

func TestTopologyThroughPublicAPI(t *testing.T) {
	f := parseTestFile(t, hydroF01)

	assert.Equal(t, "2\n    3\n        4\n    5\n    6\n3\n    4\n", f.IslandTree().Format())

	a, ok := f.Area(2)
	require.True(t, ok)
	require.Len(t, a.Islands, 1)
	assert.Equal(t, []int{3, 5, 6}, a.Islands[0].ToplevelInnerAreas)

	g, err := f.AreaGeometry(2)
	require.NoError(t, err)
	assert.Equal(t, GeometryTypePolygon, g.Type)
	assert.Equal(t, []Point{{Long: 0, Lat: 0}, {Long: 100, Lat: 0}, {Long: 100, Lat: 100}, {Long: 0, Lat: 100}, {Long: 0, Lat: 0}}, g.Coordinates)

	assert.Equal(t, [][]int{{-3, -4}}, BetweenZeroes(a.AdjLineIDs))
}

func TestParseHeaders(t *testing.T) {
	h, err := NewParser().ParseHeaders(roadsF01)
	require.NoError(t, err)

	assert.Equal(t, "ROADS AND TRAILS", h.Category.Name)
	assert.Equal(t, 8, h.Category.NbLines)
	assert.Len(t, h.CtrlPoints, 4)
	assert.Equal(t, "F01", h.Summary().Section)
}

func TestParseReader(t *testing.T) {
	data, err := os.ReadFile(hydroF02)
	require.NoError(t, err)

	f, err := NewParser().ParseReader(bytes.NewReader(data), DefaultParseOptions())
	require.NoError(t, err)
	assert.Empty(t, f.Path)
	assert.Equal(t, "F02", f.Section())
}

func TestParseErrors(t *testing.T) {
	t.Run("truncated file", func(t *testing.T) {
		// Header block plus the data category descriptor and the first node record
		path := copyTestFile(t, hydroF02, t.TempDir(), 16*80)
		_, err := NewParser().Parse(path)

		var tf *ErrTruncatedFile
		require.ErrorAs(t, err, &tf)
		assert.Equal(t, "node 1 linkage", tf.Section)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewParser().Parse(filepath.Join(t.TempDir(), "none.opt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("ids out of order", func(t *testing.T) {
		data, err := os.ReadFile(hydroF02)
		require.NoError(t, err)
		// Record 16 is node 1; renumber it 9
		copy(data[15*80+1:], "    9")

		_, err = NewParser().ParseReader(bytes.NewReader(data), DefaultParseOptions())
		var ir *ErrInvalidRecord
		require.ErrorAs(t, err, &ir)
		assert.Equal(t, "node", ir.Kind)
		assert.Equal(t, 9, ir.ID)
	})
}

func TestDumpRecords(t *testing.T) {
	data, err := os.ReadFile(hydroF02)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, DumpRecords(bytes.NewReader(data), &out))

	lines := bytes.Split(bytes.TrimRight(out.Bytes(), "\n"), []byte("\n"))
	assert.Len(t, lines, len(data)/80)
	assert.True(t, bytes.HasPrefix(lines[0], []byte("BOSTON, MA-NH  HYDROGRAPHY")))
}

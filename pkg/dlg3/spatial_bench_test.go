package dlg3

import (
	"testing"

	"github.com/beetlebugorg/dlg3/internal/parser"
)

// Viewport queries through the R-tree against a linear scan.

func BenchmarkEntitiesInBounds_Rtree(b *testing.B) {
	f := createLargeFile(10000, true)
	viewport := Bounds{MinLong: 1000, MaxLong: 2000, MinLat: 1000, MaxLat: 2000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.EntitiesInBounds(viewport)
	}
}

func BenchmarkEntitiesInBounds_Linear(b *testing.B) {
	f := createLargeFile(10000, false)
	viewport := Bounds{MinLong: 1000, MaxLong: 2000, MinLat: 1000, MaxLat: 2000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.EntitiesInBounds(viewport)
	}
}

func BenchmarkEntitiesInBounds_Rtree_LargeViewport(b *testing.B) {
	f := createLargeFile(10000, true)
	viewport := Bounds{MinLong: 0, MaxLong: 50000, MinLat: 0, MaxLat: 50000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.EntitiesInBounds(viewport)
	}
}

func BenchmarkBuildSpatialIndex(b *testing.B) {
	f := createLargeFile(10000, false)
	entities := f.indexedEntities()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.buildSpatialIndex(entities)
	}
}

// createLargeFile spreads nodes and lines in rows of 1000, 100 units apart.
// It has no areas, so no topology is needed.
func createLargeFile(n int, index bool) *File {
	pf := &parser.File{}
	for i := 0; i < n; i++ {
		long := float64(i%1000) * 100
		lat := float64(i/1000) * 1000
		if i%2 == 0 {
			x, y := long, lat
			pf.Nodes = append(pf.Nodes, parser.Node{Element: parser.Element{
				Type: "N", ID: len(pf.Nodes) + 1, Long: &x, Lat: &y,
			}})
			continue
		}
		pf.Lines = append(pf.Lines, parser.Line{
			Type: "L", ID: len(pf.Lines) + 1,
			Coords: []Point{{Long: long, Lat: lat}, {Long: long + 50, Lat: lat + 50}, {Long: long + 100, Lat: lat}},
		})
	}
	return newFile(pf, ParseOptions{BuildIndex: index})
}

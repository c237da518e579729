package dlg3

import (
	"sort"

	"github.com/beetlebugorg/dlg3/internal/parser"
	"github.com/dhconnelly/rtreego"
)

// Bounds is an axis-aligned box in map ground units. Latitude is the
// northing axis and longitude the easting axis, as in Point.
type Bounds = parser.BBox

// EntityKind tells which section of the file an indexed entity lives in.
type EntityKind int

const (
	KindNode EntityKind = iota
	KindArea
	KindLine
)

// String returns the section name of the kind.
func (k EntityKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindArea:
		return "area"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// EntityRef names one node, area or line of a file.
type EntityRef struct {
	Kind EntityKind
	ID   int
}

// spatialIndex provides O(log n) viewport queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedEntity wraps an entity for R-tree storage.
type indexedEntity struct {
	ref    EntityRef
	bounds Bounds
}

// Bounds implements rtreego.Spatial.
func (e *indexedEntity) Bounds() rtreego.Rect {
	return toRect(e.bounds)
}

// rectEpsilon is the least extent of an R-tree rectangle. Ground units are
// meters; a centimeter is below any DLG resolution.
const rectEpsilon = 0.01

// toRect converts b to an R-tree rectangle. The R-tree requires non-zero
// extents, so points and axis-parallel lines get a small thickness.
func toRect(b Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinLong, b.MinLat}

	const epsilon = rectEpsilon
	longLength := b.MaxLong - b.MinLong
	latLength := b.MaxLat - b.MinLat
	if longLength < epsilon {
		longLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{longLength, latLength})
	return rect
}

// indexedEntities lists every entity with coordinates along with its extent.
//
// Nodes contribute their position, lines their vertices and areas their
// outer boundary. Areas whose boundary cannot be assembled are left out.
func (f *File) indexedEntities() []*indexedEntity {
	entities := make([]*indexedEntity, 0, len(f.Nodes)+len(f.Areas)+len(f.Lines))

	for _, n := range f.Nodes {
		if n.Long == nil || n.Lat == nil {
			continue
		}
		p := parser.Point{Long: *n.Long, Lat: *n.Lat}
		entities = append(entities, &indexedEntity{
			ref:    EntityRef{Kind: KindNode, ID: n.ID},
			bounds: parser.PointsBBox([]parser.Point{p}),
		})
	}

	for _, a := range f.Areas {
		pts, err := f.AreaPoints(a.ID)
		if err != nil || len(pts) == 0 {
			continue
		}
		entities = append(entities, &indexedEntity{
			ref:    EntityRef{Kind: KindArea, ID: a.ID},
			bounds: parser.PointsBBox(pts),
		})
	}

	for _, l := range f.Lines {
		if len(l.Coords) == 0 {
			continue
		}
		entities = append(entities, &indexedEntity{
			ref:    EntityRef{Kind: KindLine, ID: l.ID},
			bounds: parser.PointsBBox(l.Coords),
		})
	}

	return entities
}

// buildSpatialIndex creates the R-tree over entities
func (f *File) buildSpatialIndex(entities []*indexedEntity) {
	if len(entities) == 0 {
		return
	}

	// 2D, min=25 children, max=50 children
	rtree := rtreego.NewTree(2, 25, 50)
	for _, e := range entities {
		rtree.Insert(e)
	}
	f.spatialIndex = &spatialIndex{rtree: rtree}
}

// EntitiesInBounds returns every node, area and line whose extent
// intersects bounds, ordered by kind then id.
func (f *File) EntitiesInBounds(bounds Bounds) []EntityRef {
	var refs []EntityRef
	if f.spatialIndex == nil {
		refs = f.entitiesInBoundsLinear(bounds)
	} else {
		// The R-tree treats touching rectangles as disjoint and pads thin
		// ones, so search a wider box and keep the exact matches
		spatials := f.spatialIndex.rtree.SearchIntersect(toRect(bounds.Expand(rectEpsilon)))
		for _, s := range spatials {
			e := s.(*indexedEntity)
			if bounds.Intersects(e.bounds) {
				refs = append(refs, e.ref)
			}
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind < refs[j].Kind
		}
		return refs[i].ID < refs[j].ID
	})
	return refs
}

// entitiesInBoundsLinear performs a linear scan when no spatial index exists.
func (f *File) entitiesInBoundsLinear(bounds Bounds) []EntityRef {
	var refs []EntityRef
	for _, e := range f.indexedEntities() {
		if bounds.Intersects(e.bounds) {
			refs = append(refs, e.ref)
		}
	}
	return refs
}

func (f *File) idsInBounds(bounds Bounds, kind EntityKind) []int {
	var ids []int
	for _, ref := range f.EntitiesInBounds(bounds) {
		if ref.Kind == kind {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

// NodesInBounds returns the nodes positioned inside bounds.
//
// Example:
//
//	viewport := dlg3.Bounds{MinLat: 4_680_000, MaxLat: 4_700_000, MinLong: 320_000, MaxLong: 340_000}
//	for _, n := range file.NodesInBounds(viewport) {
//	    draw(n)
//	}
func (f *File) NodesInBounds(bounds Bounds) []*Node {
	var r []*Node
	for _, id := range f.idsInBounds(bounds, KindNode) {
		if n, ok := f.Node(id); ok {
			r = append(r, n)
		}
	}
	return r
}

// AreasInBounds returns the areas whose outer boundary extent intersects bounds.
func (f *File) AreasInBounds(bounds Bounds) []*Area {
	var r []*Area
	for _, id := range f.idsInBounds(bounds, KindArea) {
		if a, ok := f.Area(id); ok {
			r = append(r, a)
		}
	}
	return r
}

// LinesInBounds returns the lines whose vertex extent intersects bounds.
func (f *File) LinesInBounds(bounds Bounds) []*Line {
	var r []*Line
	for _, id := range f.idsInBounds(bounds, KindLine) {
		if l, ok := f.Line(id); ok {
			r = append(r, l)
		}
	}
	return r
}

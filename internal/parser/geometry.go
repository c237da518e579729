package parser

// geometry.go - polygon and polyline assembly from line-coordinate lists

import "fmt"

// GeometryType is the shape of an entity's geometry
type GeometryType int

const (
	GeometryTypePoint GeometryType = iota
	GeometryTypeLineString
	GeometryTypePolygon
)

func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	default:
		return fmt.Sprintf("GeometryType(%d)", int(g))
	}
}

// Geometry is the coordinate sequence of a node, line or area.
// For areas it is the outer boundary only; islands are available through
// File.IslandPoints.
type Geometry struct {
	Type        GeometryType
	Coordinates []Point
}

// assemble concatenates the coordinates of a chain of signed line ids.
// A negative id walks the line tail to head. When a segment starts where the
// previous one ended, the shared vertex is kept once.
func (f *File) assemble(areaID int, ids []int) ([]Point, error) {
	t := topology{areas: f.Areas, lines: f.Lines}
	var points []Point
	for _, l := range ids {
		line, err := t.line(areaID, l)
		if err != nil {
			return nil, err
		}
		seg := line.Coords
		if l < 0 {
			seg = reversed(seg)
		}
		if len(points) > 0 && len(seg) > 0 && points[len(points)-1] == seg[0] {
			seg = seg[1:]
		}
		points = append(points, seg...)
	}
	return points, nil
}

func reversed(pts []Point) []Point {
	r := make([]Point, len(pts))
	for i, p := range pts {
		r[len(pts)-1-i] = p
	}
	return r
}

// AreaPoints returns the outer boundary polygon of an area.
// Island borders, which follow the first zero in the adjacency list, are not included.
func (f *File) AreaPoints(areaID int) ([]Point, error) {
	a, ok := f.Area(areaID)
	if !ok {
		return nil, &ErrTopologyInconsistency{AreaID: areaID, Reason: "no such area"}
	}
	return f.assemble(areaID, ZeroStop(a.AdjLineIDs))
}

// IslandPoints returns the border ring of an area's k-th island (0-based)
func (f *File) IslandPoints(areaID, k int) ([]Point, error) {
	a, ok := f.Area(areaID)
	if !ok {
		return nil, &ErrTopologyInconsistency{AreaID: areaID, Reason: "no such area"}
	}
	if k < 0 || k >= len(a.Islands) {
		return nil, fmt.Errorf("area %d has no island %d", areaID, k)
	}
	return f.assemble(areaID, a.Islands[k].Border)
}

// NodeGeometry returns a node's position; nodes without a position yield an empty point
func (f *File) NodeGeometry(id int) (Geometry, error) {
	n, ok := f.Node(id)
	if !ok {
		return Geometry{}, fmt.Errorf("no node %d", id)
	}
	g := Geometry{Type: GeometryTypePoint}
	if n.Long != nil && n.Lat != nil {
		g.Coordinates = []Point{{Long: *n.Long, Lat: *n.Lat}}
	}
	return g, nil
}

// LineGeometry returns a line's coordinates in stored order
func (f *File) LineGeometry(id int) (Geometry, error) {
	l, ok := f.Line(id)
	if !ok {
		return Geometry{}, fmt.Errorf("no line %d", id)
	}
	return Geometry{Type: GeometryTypeLineString, Coordinates: l.Coords}, nil
}

// AreaGeometry returns an area's outer boundary as a polygon
func (f *File) AreaGeometry(id int) (Geometry, error) {
	pts, err := f.AreaPoints(id)
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{Type: GeometryTypePolygon, Coordinates: pts}, nil
}

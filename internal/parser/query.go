package parser

// query.go - attribute statistics, bounding boxes and text renderings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Attributed is implemented by entities carrying attribute code pairs
type Attributed interface {
	Attributes() []Attr
}

// AttrsCounts counts occurrences of each "(major,minor)" pair across a
// homogeneous collection of nodes, areas or lines.
func AttrsCounts[T Attributed](items []T) map[string]int {
	d := make(map[string]int)
	for _, x := range items {
		for _, a := range x.Attributes() {
			d[a.Key()]++
		}
	}
	return d
}

// MergeAttrs returns the multiset union of two attribute counts.
// Neither input is modified.
func MergeAttrs(d1, d2 map[string]int) map[string]int {
	d3 := make(map[string]int, len(d1)+len(d2))
	for k, v := range d1 {
		d3[k] = v
	}
	for k, v := range d2 {
		d3[k] += v
	}
	return d3
}

// AttrMatches lists, per entity kind, the ids carrying a given attribute pair.
// An id appears once per matching pair.
type AttrMatches struct {
	Nodes []int `json:"nodes,omitempty"`
	Areas []int `json:"areas,omitempty"`
	Lines []int `json:"lines,omitempty"`
}

// Len returns the total number of matches
func (m AttrMatches) Len() int {
	return len(m.Nodes) + len(m.Areas) + len(m.Lines)
}

// matches compares codes numerically; codes that are not integers never match
func (a Attr) matches(major, minor int) bool {
	maj, err := strconv.Atoi(a.Major)
	if err != nil {
		return false
	}
	mnr, err := strconv.Atoi(a.Minor)
	if err != nil {
		return false
	}
	return maj == major && mnr == minor
}

func matchingIDs(attrs []Attr, id, major, minor int, ids []int) []int {
	for _, a := range attrs {
		if a.matches(major, minor) {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasAttribute returns the entities carrying the (major, minor) pair
func (f *File) HasAttribute(major, minor int) AttrMatches {
	var m AttrMatches
	for _, x := range f.Nodes {
		m.Nodes = matchingIDs(x.Attrs, x.ID, major, minor, m.Nodes)
	}
	for _, x := range f.Areas {
		m.Areas = matchingIDs(x.Attrs, x.ID, major, minor, m.Areas)
	}
	for _, x := range f.Lines {
		m.Lines = matchingIDs(x.Attrs, x.ID, major, minor, m.Lines)
	}
	return m
}

// bboxLimit seeds bounding-box extremes
const bboxLimit = 99_999_999.0

// BBox is a bounding box in map coordinates.
// Latitude is the y (northing) axis, longitude the x (easting) axis.
type BBox struct {
	MinLat  float64 `json:"min_lat"`
	MaxLat  float64 `json:"max_lat"`
	MinLong float64 `json:"min_long"`
	MaxLong float64 `json:"max_long"`
}

func emptyBBox() BBox {
	return BBox{MinLat: bboxLimit, MaxLat: -bboxLimit, MinLong: bboxLimit, MaxLong: -bboxLimit}
}

func (b *BBox) extend(long, lat float64) {
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	if long < b.MinLong {
		b.MinLong = long
	}
	if long > b.MaxLong {
		b.MaxLong = long
	}
}

// Contains reports whether p lies inside b, edges included
func (b BBox) Contains(p Point) bool {
	return b.MinLat <= p.Lat && p.Lat <= b.MaxLat && b.MinLong <= p.Long && p.Long <= b.MaxLong
}

// Shift translates all four extremes by t
func (b BBox) Shift(t float64) BBox {
	return BBox{MinLat: b.MinLat + t, MaxLat: b.MaxLat + t, MinLong: b.MinLong + t, MaxLong: b.MaxLong + t}
}

// Empty reports whether b holds no point at all
func (b BBox) Empty() bool {
	return b.MinLat > b.MaxLat || b.MinLong > b.MaxLong
}

// Intersects reports whether b and o overlap, edges included
func (b BBox) Intersects(o BBox) bool {
	return b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat && b.MinLong <= o.MaxLong && o.MinLong <= b.MaxLong
}

// Union returns the smallest box holding both b and o
func (b BBox) Union(o BBox) BBox {
	switch {
	case b.Empty():
		return o
	case o.Empty():
		return b
	}
	return BBox{
		MinLat:  min(b.MinLat, o.MinLat),
		MaxLat:  max(b.MaxLat, o.MaxLat),
		MinLong: min(b.MinLong, o.MinLong),
		MaxLong: max(b.MaxLong, o.MaxLong),
	}
}

// Expand returns b grown by margin on every side
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		MinLat:  b.MinLat - margin,
		MaxLat:  b.MaxLat + margin,
		MinLong: b.MinLong - margin,
		MaxLong: b.MaxLong + margin,
	}
}

// PointsBBox returns the extent of pts. It is Empty when pts is.
func PointsBBox(pts []Point) BBox {
	b := emptyBBox()
	for _, p := range pts {
		b.extend(p.Long, p.Lat)
	}
	return b
}

func (b BBox) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", b.MinLat, b.MaxLat, b.MinLong, b.MaxLong)
}

// BoundingBox returns the extent of the lines bordering the first area,
// islands included. In DLG-3 area 1 is the outside of the map, so its
// border is the neatline. Without areas the seed extremes are returned.
func (f *File) BoundingBox() BBox {
	b := emptyBBox()
	if len(f.Areas) == 0 {
		return b
	}
	for _, l := range f.Areas[0].AdjLineIDs {
		if l == 0 {
			continue
		}
		line, ok := f.Line(l)
		if !ok {
			continue
		}
		for _, p := range line.Coords {
			b.extend(p.Long, p.Lat)
		}
	}
	return b
}

// BoundingBoxAdjusted shifts BoundingBox by 500 km per UTM zone from zone 10,
// so files from different zones can share one drawing
func (f *File) BoundingBoxAdjusted() BBox {
	return f.BoundingBox().Shift(float64((f.Planimetric.Zone - 10) * 500_000))
}

// CtrlPointsBBox returns the extent of the header's control points
func (h *Headers) CtrlPointsBBox() BBox {
	b := emptyBBox()
	for _, cp := range h.CtrlPoints {
		b.extend(cp.X, cp.Y)
	}
	return b
}

// Target returns the sub-box of BoundingBox given as percentages of its
// latitude height and longitude width
func (f *File) Target(minLatPc, maxLatPc, minLongPc, maxLongPc float64) BBox {
	b := f.BoundingBox()
	height := b.MaxLat - b.MinLat
	width := b.MaxLong - b.MinLong
	return BBox{
		MinLat:  height*minLatPc/100 + b.MinLat,
		MaxLat:  height*maxLatPc/100 + b.MinLat,
		MinLong: width*minLongPc/100 + b.MinLong,
		MaxLong: width*maxLongPc/100 + b.MinLong,
	}
}

// AreasInside returns the areas whose representative point lies in box
func (f *File) AreasInside(box BBox) []*Area {
	var r []*Area
	for i := range f.Areas {
		a := &f.Areas[i]
		if a.Long == nil || a.Lat == nil {
			continue
		}
		if box.Contains(Point{Long: *a.Long, Lat: *a.Lat}) {
			r = append(r, a)
		}
	}
	return r
}

// RefPoint is the reference point stored in the first two projection parameters
type RefPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Summary is the identification data of a file, available from headers alone
type Summary struct {
	Banner     string         `json:"banner"`
	DataCell   string         `json:"data_cell"`
	States     string         `json:"states"`
	SrcDate    string         `json:"src_date"`
	Qualifier  string         `json:"qualifier"`
	Scale      string         `json:"scale"`
	Section    string         `json:"section"`
	Zone       int            `json:"zone"`
	RefPoint   RefPoint       `json:"ref_point"`
	CtrlPoints []ControlPoint `json:"ctrl_pts"`
	Category   string         `json:"category"`
	NbNodes    int            `json:"nb_nodes"`
	NbAreas    int            `json:"nb_areas"`
	NbLines    int            `json:"nb_lines"`
}

// Summary returns the identification data of the headers
func (h *Headers) Summary() Summary {
	return Summary{
		Banner:     h.Banner.Text,
		DataCell:   h.Cell.DataCell,
		States:     h.Cell.States,
		SrcDate:    h.Cell.SrcDate,
		Qualifier:  h.Cell.Qualifier,
		Scale:      h.Cell.Scale,
		Section:    h.Cell.Section,
		Zone:       h.Planimetric.Zone,
		RefPoint:   RefPoint{Lng: h.ProjParams[0], Lat: h.ProjParams[1]},
		CtrlPoints: h.CtrlPoints,
		Category:   h.Category.Name,
		NbNodes:    h.Category.NbNodes,
		NbAreas:    h.Category.NbAreas,
		NbLines:    h.Category.NbLines,
	}
}

// ShowHeaders renders the cell and planimetric records, the reference
// point, control points and category descriptor, one per line
func (h *Headers) ShowHeaders() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", h.Cell)
	fmt.Fprintf(&b, "%s\n", h.Planimetric)
	fmt.Fprintf(&b, "%1.8f, %1.8f\n", h.ProjParams[0], h.ProjParams[1])
	for _, cp := range h.CtrlPoints {
		fmt.Fprintf(&b, "%s\n", cp)
	}
	fmt.Fprintf(&b, "%s\n", h.Category)
	return b.String()
}

// ShowAll renders the headers followed by every node, area and line
func (f *File) ShowAll() string {
	var b strings.Builder
	b.WriteString(f.ShowHeaders())
	for _, x := range f.Nodes {
		fmt.Fprintf(&b, "%s\n", x)
	}
	for _, x := range f.Areas {
		fmt.Fprintf(&b, "%s\n", x)
	}
	for _, x := range f.Lines {
		fmt.Fprintf(&b, "%s\n", x)
	}
	return b.String()
}

func writeCounts(b *strings.Builder, title string, d map[string]int) {
	b.WriteString(title + ":\n")
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s\t%d\n", k, d[k])
	}
}

// ShowAttributes renders sorted attribute counts for nodes, areas and lines
func (f *File) ShowAttributes() string {
	var b strings.Builder
	writeCounts(&b, "Nodes", AttrsCounts(f.Nodes))
	writeCounts(&b, "Areas", AttrsCounts(f.Areas))
	writeCounts(&b, "Lines", AttrsCounts(f.Lines))
	return b.String()
}

// Presences renders the category descriptor's presence flags
func (h *Headers) Presences() string {
	c := h.Category
	var b strings.Builder
	fmt.Fprintf(&b, "Node-to-area linkage records: %t\n", c.NodeAreaLinks)
	fmt.Fprintf(&b, "Node-to-line linkage records: %t\n", c.NodeLineLinks)
	fmt.Fprintf(&b, "Area-to-node linkage records: %t\n", c.AreaNodeLinks)
	fmt.Fprintf(&b, "Area-to-line linkage records: %t\n", c.AreaLineLinks)
	fmt.Fprintf(&b, "Area-coordinate lists: %t\n", c.AreaLists)
	fmt.Fprintf(&b, "Line-coordinate lists: %t\n", c.LineLists)
	return b.String()
}

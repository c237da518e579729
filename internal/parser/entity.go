package parser

// entity.go - node, area and line identification records with their
// linkage, coordinate and attribute continuation records

import (
	"fmt"
	"strconv"
	"strings"
)

// Continuation record layouts (values per 80-character record)
const (
	linksPerRecord  = 12 // FORTRAN 12I6
	attrsPerRecord  = 6  // FORTRAN 6(2I6)
	coordsPerRecord = 3  // FORTRAN 6F12.2, three (x, y) pairs
)

// Point is a coordinate pair from a line-coordinate list.
// The format's x is the longitude axis and y the latitude axis.
type Point struct {
	Long float64
	Lat  float64
}

// Attr is a (major, minor) attribute code pair.
//
// Codes are kept as strings with surrounding blanks trimmed; they are never
// converted to integers so lookup tables can pad them as they need.
type Attr struct {
	Major string
	Minor string
}

// Key returns the canonical "(major,minor)" form used for counting
func (a Attr) Key() string {
	return "(" + a.Major + "," + a.Minor + ")"
}

// Element holds the identification fields shared by nodes and areas.
//
// Counts read from blank fields are nil, which is distinct from zero.
type Element struct {
	Type        string   // "N" or "A"
	ID          int      // 1-based, contiguous within its section
	Long        *float64 // Representative point
	Lat         *float64
	NbNALinks   *int  // Elements in node-to-area or area-to-node list
	NbLineLinks *int  // Elements in node-to-line or area-to-line list
	NbAttrPairs *int  // Number of attribute code pairs
	NbChars     *int  // Number of characters in text string
	AdjLineIDs  []int // Signed line ids; nil when no linkage section was present
	Attrs       []Attr
}

// Attributes returns the element's attribute code pairs
func (e Element) Attributes() []Attr {
	return e.Attrs
}

// Node is a node identification record and its continuation records
type Node struct {
	Element
}

// Area is an area identification record and its continuation records.
//
// Islands is derived after every line has been read; see buildTopology.
type Area struct {
	Element
	NbPoints  int // Points in area-coordinate list
	NbIslands int
	Islands   []Island
}

// Line is a line identification record and its continuation records
type Line struct {
	Type        string
	ID          int
	StartNode   int
	EndNode     int
	LeftArea    int
	RightArea   int
	NbXYPairs   int
	NbAttrPairs *int
	NbChars     *int
	Coords      []Point // nil when the file carries no line-coordinate lists
	Attrs       []Attr
}

// Attributes returns the line's attribute code pairs
func (l Line) Attributes() []Attr {
	return l.Attrs
}

func count(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func parseElement(d *fieldDecoder, r record) Element {
	return Element{
		Type:        r.raw(0, 1),
		ID:          d.Int("id", 1, 6),
		Long:        d.OptFloat("longitude", 6, 18),
		Lat:         d.OptFloat("latitude", 18, 30),
		NbNALinks:   d.OptInt("nb_na_links", 30, 36),
		NbLineLinks: d.OptInt("nb_line_links", 36, 42),
		NbAttrPairs: d.OptInt("nb_attr_pairs", 48, 54),
		NbChars:     d.OptInt("nb_chars", 54, 60),
	}
}

func parseNode(r record) (Node, error) {
	d := r.decoder()
	n := Node{Element: parseElement(d, r)}
	return n, d.Err()
}

func parseArea(r record) (Area, error) {
	d := r.decoder()
	a := Area{
		Element:   parseElement(d, r),
		NbPoints:  d.Int("nb_points", 42, 48),
		NbIslands: d.Int("nb_islands", 60, 66),
	}
	return a, d.Err()
}

func parseLine(r record) (Line, error) {
	d := r.decoder()
	l := Line{
		Type:        r.raw(0, 1),
		ID:          d.Int("id", 1, 6),
		StartNode:   d.Int("start_node", 6, 12),
		EndNode:     d.Int("end_node", 12, 18),
		LeftArea:    d.Int("left_area", 18, 24),
		RightArea:   d.Int("right_area", 24, 30),
		NbXYPairs:   d.Int("nb_xy_pairs", 42, 48),
		NbAttrPairs: d.OptInt("nb_attr_pairs", 48, 54),
		NbChars:     d.OptInt("nb_chars", 54, 60),
	}
	return l, d.Err()
}

// readBlock reads the ceil(n/per) continuation records holding n values.
// The last record always occupies a full 80 characters; slots past n in it
// are skipped without being decoded.
func readBlock(rr *recordReader, section string, n, per int, decode func(d *fieldDecoder, rec record, slot int)) error {
	for k := 0; k*per < n; k++ {
		rec, err := rr.next(section, k)
		if err != nil {
			return err
		}
		d := rec.decoder()
		for i := 0; i < per && k*per+i < n; i++ {
			decode(d, rec, i)
		}
		if err := d.Err(); err != nil {
			return err
		}
	}
	return nil
}

// maxPrealloc bounds the capacity reserved from a declared count. Counts
// come from the file, so larger sections grow as their records are read.
const maxPrealloc = 1024

func capHint(n int) int {
	return min(max(n, 0), maxPrealloc)
}

// readLinks reads a node-to-line or area-to-line linkage list (12I6)
func readLinks(rr *recordReader, owner string, n int) ([]int, error) {
	ids := make([]int, 0, capHint(n))
	err := readBlock(rr, owner+" linkage", n, linksPerRecord, func(d *fieldDecoder, _ record, i int) {
		ids = append(ids, d.Int("line id", 6*i, 6*(i+1)))
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// readAttrs reads attribute code pairs (6(2I6)); codes are kept as strings
func readAttrs(rr *recordReader, owner string, n int) ([]Attr, error) {
	attrs := make([]Attr, 0, capHint(n))
	err := readBlock(rr, owner+" attributes", n, attrsPerRecord, func(d *fieldDecoder, _ record, i int) {
		attrs = append(attrs, Attr{
			Major: d.String(12*i, 12*i+6),
			Minor: d.String(12*i+6, 12*i+12),
		})
	})
	if err != nil {
		return nil, err
	}
	return attrs, nil
}

// readCoords reads a line-coordinate list, three (x, y) pairs per record
func readCoords(rr *recordReader, owner string, n int) ([]Point, error) {
	coords := make([]Point, 0, capHint(n))
	err := readBlock(rr, owner+" coordinates", n, coordsPerRecord, func(d *fieldDecoder, _ record, i int) {
		coords = append(coords, Point{
			Long: d.Float("x", 24*i, 24*i+12),
			Lat:  d.Float("y", 24*i+12, 24*i+24),
		})
	})
	if err != nil {
		return nil, err
	}
	return coords, nil
}

// entities holds the three sections read in pass one
type entities struct {
	nodes []Node
	areas []Area
	lines []Line
}

// readEntities reads every node, area and line as declared by the category
// descriptor. Continuation records follow their identification record in
// fixed order: linkage or coordinates first, then attributes.
func readEntities(rr *recordReader, categ DataCategory, opts ParseOptions) (*entities, error) {
	e := &entities{
		nodes: make([]Node, 0, capHint(categ.NbNodes)),
		areas: make([]Area, 0, capHint(categ.NbAreas)),
		lines: make([]Line, 0, capHint(categ.NbLines)),
	}

	for i := 0; i < categ.NbNodes; i++ {
		rec, err := rr.next("node", i)
		if err != nil {
			return nil, err
		}
		n, err := parseNode(rec)
		if err != nil {
			return nil, err
		}
		if opts.ValidateIDs && n.ID != i+1 {
			return nil, &ErrInvalidRecord{Kind: "node", Index: i, ID: n.ID}
		}
		owner := fmt.Sprintf("node %d", n.ID)

		// Node-to-line linkage is only present for nodes that have links
		if categ.NodeLineLinks && count(n.NbLineLinks) > 0 {
			if n.AdjLineIDs, err = readLinks(rr, owner, count(n.NbLineLinks)); err != nil {
				return nil, err
			}
		}
		if count(n.NbAttrPairs) > 0 {
			if n.Attrs, err = readAttrs(rr, owner, count(n.NbAttrPairs)); err != nil {
				return nil, err
			}
		}
		e.nodes = append(e.nodes, n)
	}

	for i := 0; i < categ.NbAreas; i++ {
		rec, err := rr.next("area", i)
		if err != nil {
			return nil, err
		}
		a, err := parseArea(rec)
		if err != nil {
			return nil, err
		}
		if opts.ValidateIDs && a.ID != i+1 {
			return nil, &ErrInvalidRecord{Kind: "area", Index: i, ID: a.ID}
		}
		owner := fmt.Sprintf("area %d", a.ID)

		// Area-to-line linkage is read whenever the descriptor declares it,
		// even for a zero link count
		if categ.AreaLineLinks {
			if a.AdjLineIDs, err = readLinks(rr, owner, count(a.NbLineLinks)); err != nil {
				return nil, err
			}
		}
		if count(a.NbAttrPairs) > 0 {
			if a.Attrs, err = readAttrs(rr, owner, count(a.NbAttrPairs)); err != nil {
				return nil, err
			}
		}
		e.areas = append(e.areas, a)
	}

	for i := 0; i < categ.NbLines; i++ {
		rec, err := rr.next("line", i)
		if err != nil {
			return nil, err
		}
		l, err := parseLine(rec)
		if err != nil {
			return nil, err
		}
		if opts.ValidateIDs && l.ID != i+1 {
			return nil, &ErrInvalidRecord{Kind: "line", Index: i, ID: l.ID}
		}
		owner := fmt.Sprintf("line %d", l.ID)

		if categ.LineLists {
			if l.Coords, err = readCoords(rr, owner, l.NbXYPairs); err != nil {
				return nil, err
			}
		}
		if count(l.NbAttrPairs) > 0 {
			if l.Attrs, err = readAttrs(rr, owner, count(l.NbAttrPairs)); err != nil {
				return nil, err
			}
		}
		e.lines = append(e.lines, l)
	}

	return e, nil
}

func optString[T int | float64](p *T) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}

func joinIDs(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ", ")
}

func joinAttrs(attrs []Attr) string {
	s := make([]string, len(attrs))
	for i, a := range attrs {
		s[i] = a.Key()
	}
	return strings.Join(s, ", ")
}

func (e Element) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d, %s, %s, %s, %s", e.Type, e.ID, optString(e.Long), optString(e.Lat),
		optString(e.NbNALinks), optString(e.NbLineLinks))
	return b.String()
}

func (n Node) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s, %s", n.Element, optString(n.NbAttrPairs), optString(n.NbChars))
	if n.AdjLineIDs != nil {
		b.WriteString("\n" + joinIDs(n.AdjLineIDs))
	}
	if len(n.Attrs) > 0 {
		b.WriteString("\n" + joinAttrs(n.Attrs))
	}
	return b.String()
}

func (a Area) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d, %s, %s, %d", a.Element, a.NbPoints, optString(a.NbAttrPairs),
		optString(a.NbChars), a.NbIslands)
	if a.AdjLineIDs != nil {
		b.WriteString("\n" + joinIDs(a.AdjLineIDs))
	}
	if len(a.Attrs) > 0 {
		b.WriteString("\n" + joinAttrs(a.Attrs))
	}
	return b.String()
}

func (l Line) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d, %d, %d, %d, %d, %d, %s, %s", l.Type, l.ID, l.StartNode, l.EndNode,
		l.LeftArea, l.RightArea, l.NbXYPairs, optString(l.NbAttrPairs), optString(l.NbChars))
	if l.Coords != nil {
		s := make([]string, len(l.Coords))
		for i, p := range l.Coords {
			s[i] = fmt.Sprintf("(%v,%v)", p.Long, p.Lat)
		}
		b.WriteString("\n" + strings.Join(s, ", "))
	}
	if len(l.Attrs) > 0 {
		b.WriteString("\n" + joinAttrs(l.Attrs))
	}
	return b.String()
}

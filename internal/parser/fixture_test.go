package parser

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// rec is an 80-character record under construction
type rec []byte

func newRec() rec {
	return rec(bytes.Repeat([]byte{' '}, RecordSize))
}

// put writes s left-justified at start
func (r rec) put(start int, s string) rec {
	copy(r[start:], s)
	return r
}

// right writes s right-justified in [start,end)
func (r rec) right(start, end int, s string) rec {
	return r.put(end-len(s), s)
}

func (r rec) int(start, end, v int) rec {
	return r.right(start, end, fmt.Sprint(v))
}

func (r rec) float(start, end int, v float64) rec {
	return r.right(start, end, fmt.Sprintf("%.2f", v))
}

// fortran writes v in D-exponent notation, right-justified in [start,end)
func (r rec) fortran(start, end int, v float64) rec {
	s := strings.Replace(fmt.Sprintf("%.*E", end-start-8, v), "E", "D", 1)
	return r.right(start, end, s)
}

func (r rec) flag(pos int, on bool) rec {
	if on {
		r[pos] = '1'
	} else {
		r[pos] = '0'
	}
	return r
}

type testNode struct {
	id       int
	long     float64
	lat      float64
	links    []int
	attrs    []Attr
	noCoords bool
}

type testArea struct {
	id      int
	long    float64
	lat     float64
	links   []int
	islands int
	attrs   []Attr

	// blankLinks leaves nb_line_links blank
	blankLinks bool
}

type testLine struct {
	id                      int
	start, end, left, right int
	coords                  []Point
	attrs                   []Attr
}

// testDLG describes a synthetic DLG-3 optional file
type testDLG struct {
	zone          int
	ctrl          []ControlPoint
	nodeLineLinks bool
	areaLineLinks bool
	lineLists     bool
	nodes         []testNode
	areas         []testArea
	lines         []testLine

	// terminator is appended after every record, e.g. "\n" or "\r\n"
	terminator string
}

func (d testDLG) encode() []byte {
	var buf bytes.Buffer
	emit := func(r rec) {
		buf.Write(r)
		buf.WriteString(d.terminator)
	}

	emit(newRec().put(0, "BOSTON, MA-NH  HYDROGRAPHY"))
	emit(newRec().put(0, "BOSTON, MA-NH").put(41, "1985").put(51, "R").right(52, 60, "100000").put(63, "F01"))
	emit(newRec().right(41, 45, "10").put(64, "12345678"))
	emit(newRec().int(0, 6, 3).int(6, 12, 1).int(12, 18, d.zone).int(18, 24, 2).
		fortran(24, 42, 2.54).int(42, 48, 15).int(48, 54, 0).int(54, 60, len(d.ctrl)).int(60, 66, 1))

	for i := 0; i < 5; i++ {
		r := newRec()
		for j := 0; j < 3; j++ {
			r.fortran(24*j, 24*(j+1), float64(330000+100*(3*i+j)))
		}
		emit(r)
	}
	r := newRec()
	for i := 0; i < 4; i++ {
		r.fortran(18*i, 18*(i+1), float64(i)+0.5)
	}
	emit(r)

	for _, cp := range d.ctrl {
		emit(newRec().put(0, cp.Label).fortran(6, 18, cp.Lat).fortran(18, 30, cp.Long).
			fortran(36, 48, cp.X).fortran(48, 60, cp.Y))
	}

	emit(newRec().put(0, "HYDROGRAPHY").int(20, 24, 0).
		int(24, 30, len(d.nodes)).int(30, 36, len(d.nodes)).flag(36, false).flag(38, d.nodeLineLinks).
		int(40, 46, len(d.areas)).int(46, 52, len(d.areas)).flag(53, false).flag(54, d.areaLineLinks).flag(55, false).
		int(56, 62, len(d.lines)).int(62, 68, len(d.lines)).flag(71, d.lineLists))

	for _, n := range d.nodes {
		r := newRec().put(0, "N").int(1, 6, n.id).int(36, 42, len(n.links))
		if !n.noCoords {
			r.float(6, 18, n.long).float(18, 30, n.lat)
		}
		if len(n.attrs) > 0 {
			r.int(48, 54, len(n.attrs))
		}
		emit(r)
		if d.nodeLineLinks && len(n.links) > 0 {
			emitLinks(emit, n.links)
		}
		emitAttrs(emit, n.attrs)
	}

	for _, a := range d.areas {
		r := newRec().put(0, "A").int(1, 6, a.id).float(6, 18, a.long).float(18, 30, a.lat).
			int(42, 48, 0).int(60, 66, a.islands)
		if !a.blankLinks {
			r.int(36, 42, len(a.links))
		}
		if len(a.attrs) > 0 {
			r.int(48, 54, len(a.attrs))
		}
		emit(r)
		if d.areaLineLinks {
			emitLinks(emit, a.links)
		}
		emitAttrs(emit, a.attrs)
	}

	for _, l := range d.lines {
		r := newRec().put(0, "L").int(1, 6, l.id).int(6, 12, l.start).int(12, 18, l.end).
			int(18, 24, l.left).int(24, 30, l.right).int(42, 48, len(l.coords))
		if len(l.attrs) > 0 {
			r.int(48, 54, len(l.attrs))
		}
		emit(r)
		if d.lineLists {
			for k := 0; k < len(l.coords); k += coordsPerRecord {
				r := newRec()
				for i := 0; i < coordsPerRecord && k+i < len(l.coords); i++ {
					p := l.coords[k+i]
					r.float(24*i, 24*i+12, p.Long).float(24*i+12, 24*i+24, p.Lat)
				}
				emit(r)
			}
		}
		emitAttrs(emit, l.attrs)
	}

	return buf.Bytes()
}

func emitLinks(emit func(rec), links []int) {
	for k := 0; k < len(links); k += linksPerRecord {
		r := newRec()
		for i := 0; i < linksPerRecord && k+i < len(links); i++ {
			r.int(6*i, 6*(i+1), links[k+i])
		}
		emit(r)
	}
}

func emitAttrs(emit func(rec), attrs []Attr) {
	for k := 0; k < len(attrs); k += attrsPerRecord {
		r := newRec()
		for i := 0; i < attrsPerRecord && k+i < len(attrs); i++ {
			r.right(12*i, 12*i+6, attrs[k+i].Major).right(12*i+6, 12*i+12, attrs[k+i].Minor)
		}
		emit(r)
	}
}

// sampleDLG is a small hydrography file with nested islands.
//
// Area 1 is the outside of the map and area 2 fills the neatline. Area 2 has
// one island holding areas 3, 5 and 6; area 6 touches only 3 and 5. Area 3
// has an island holding area 4.
func sampleDLG() testDLG {
	return testDLG{
		zone: 19,
		ctrl: []ControlPoint{
			{Label: "SW", Lat: 42.25, Long: -71.25, X: 0, Y: 0},
			{Label: "NW", Lat: 42.5, Long: -71.25, X: 0, Y: 100},
			{Label: "NE", Lat: 42.5, Long: -71.0, X: 100, Y: 100},
			{Label: "SE", Lat: 42.25, Long: -71.0, X: 100, Y: 0},
		},
		nodeLineLinks: true,
		areaLineLinks: true,
		lineLists:     true,
		nodes: []testNode{
			{id: 1, long: 0, lat: 0, links: []int{1, -2, 3, 4, 5, 6, 7, 8, -1, -3, -4, -5, 2},
				attrs: []Attr{{"50", "1"}, {"50", "2"}, {"50", "3"}, {"50", "4"}, {"50", "5"}, {"50", "6"}, {"50", "7"}}},
			{id: 2, long: 100, lat: 100, links: []int{-1, 2}},
			{id: 3, long: 20, lat: 20},
		},
		areas: []testArea{
			{id: 1, long: -1, lat: -1, links: []int{-1, -2}},
			{id: 2, long: 10, lat: 10, links: []int{1, 2, 0, -3, -4}, islands: 1,
				attrs: []Attr{{"50", "421"}, {"50", "100"}}},
			{id: 3, long: 30, lat: 50, links: []int{3, -5, -6, 0, -7}, islands: 1,
				attrs: []Attr{{"50", "421"}}},
			{id: 4, long: 35, lat: 45, links: []int{7}},
			{id: 5, long: 70, lat: 50, links: []int{4, 5, -8}},
			{id: 6, long: 50, lat: 50, links: []int{6, 8}},
		},
		lines: []testLine{
			{id: 1, start: 1, end: 2, left: 1, right: 2,
				coords: []Point{{0, 0}, {100, 0}, {100, 100}}},
			{id: 2, start: 2, end: 1, left: 1, right: 2,
				coords: []Point{{100, 100}, {0, 100}, {0, 0}}},
			{id: 3, start: 3, end: 3, left: 2, right: 3,
				coords: []Point{{20, 20}, {20, 80}, {50, 80}, {50, 85}, {50, 90}},
				attrs:  []Attr{{"50", "421"}}},
			{id: 4, start: 3, end: 3, left: 2, right: 5,
				coords: []Point{{50, 80}, {80, 80}, {80, 20}, {20, 20}}},
			{id: 5, start: 3, end: 3, left: 3, right: 5,
				coords: []Point{{50, 80}, {50, 20}}},
			{id: 6, start: 3, end: 3, left: 3, right: 6,
				coords: []Point{{45, 45}, {55, 45}}},
			{id: 7, start: 3, end: 3, left: 3, right: 4,
				coords: []Point{{30, 40}, {40, 40}, {40, 50}, {30, 40}}},
			{id: 8, start: 3, end: 3, left: 5, right: 6,
				coords: []Point{{55, 45}, {55, 55}}},
		},
	}
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func parseSample(t *testing.T, d testDLG) *File {
	t.Helper()
	f, err := NewParser().ParseReader(bytes.NewReader(d.encode()), DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	return f
}

package parser

// header.go - file identification and description records
// DLG-3 optional format: records 1-10, control points, data category descriptor

import (
	"fmt"
	"regexp"
	"strings"
)

// cellPattern extracts the cell name and state list from the first 40 units of header record 2
var cellPattern = regexp.MustCompile(`([A-Z]+),\s+([A-Z-]+)`)

// Banner is header record 1: free-form identification text
type Banner struct {
	Text string
}

// CellHeader is header record 2: digital cartographic unit and source material
type CellHeader struct {
	DataCell  string // Name of the digital cartographic unit, e.g. "BOSTON"
	States    string // State codes, e.g. "MA" or "MA-NH"
	SrcDate   string // Date of original source material
	Qualifier string // Date qualifier
	Scale     string // Scale of original source material
	Section   string // Sectional indicator (100K files), e.g. "F01"
}

func (h CellHeader) String() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s", h.DataCell, h.States, h.SrcDate, h.Qualifier, h.Scale, h.Section)
}

// ContourHeader is header record 3: contour intervals and edge-match flags
type ContourHeader struct {
	LargeContourInt string
	LargeBathyInt   string
	SmallContourInt string
	SmallBathyInt   string
	Flags           string

	EdgeWS, EdgeWR string // West edge status / reason
	EdgeNS, EdgeNR string // North
	EdgeES, EdgeER string // East
	EdgeSS, EdgeSR string // South
}

func (h ContourHeader) String() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		h.LargeContourInt, h.LargeBathyInt, h.SmallContourInt, h.SmallBathyInt, h.Flags,
		h.EdgeWS, h.EdgeWR, h.EdgeNS, h.EdgeNR, h.EdgeES, h.EdgeER, h.EdgeSS, h.EdgeSR)
}

// PlanimetricHeader is header record 4: reference system, resolution and counts
type PlanimetricHeader struct {
	DLGLevel    int
	Planimetric int // Code for the planimetric reference system (1 = UTM)
	Zone        int // UTM zone
	Units       int
	Resolution  float64
	NbParams    int // Number of file-to-map transformation parameters
	AccurRecs   int // Number of accuracy/miscellaneous records
	NbCtrlPts   int
	NbCategs    int
}

func (h PlanimetricHeader) String() string {
	return fmt.Sprintf("%d, %d, %d, %d, %v, %d, %d, %d, %d", h.DLGLevel, h.Planimetric, h.Zone, h.Units,
		h.Resolution, h.NbParams, h.AccurRecs, h.NbCtrlPts, h.NbCategs)
}

// ControlPoint is one control point identification record.
//
// The format names the projected coordinates x and y, but x runs along the
// longitude axis (easting) and y along the latitude axis (northing). The
// naming is kept as the format defines it.
type ControlPoint struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Long  float64 `json:"long"`
	X     float64 `json:"x"` // Easting, longitude axis
	Y     float64 `json:"y"` // Northing, latitude axis
}

func (cp ControlPoint) String() string {
	return fmt.Sprintf("%s, %.2f, %.2f, %.2f, %.2f", cp.Label, cp.Lat, cp.Long, cp.X, cp.Y)
}

// DataCategory is the data category identification record.
//
// Its presence flags declare which optional linkage and coordinate sections
// physically follow each identification record.
type DataCategory struct {
	Name  string
	Codes int

	MaxNode       int
	NbNodes       int
	NodeAreaLinks bool
	NodeLineLinks bool

	MaxArea       int
	NbAreas       int
	AreaNodeLinks bool
	AreaLineLinks bool
	AreaLists     bool

	MaxLines  int
	NbLines   int
	LineLists bool
}

func (c DataCategory) String() string {
	return fmt.Sprintf("%s, %d, %d, %d, %t, %t, %d, %d, %t, %t, %t, %d, %d, %t",
		c.Name, c.Codes, c.MaxNode, c.NbNodes, c.NodeAreaLinks, c.NodeLineLinks,
		c.MaxArea, c.NbAreas, c.AreaNodeLinks, c.AreaLineLinks, c.AreaLists,
		c.MaxLines, c.NbLines, c.LineLists)
}

// Headers holds everything that precedes the node records
type Headers struct {
	Banner      Banner
	Cell        CellHeader
	Contour     ContourHeader
	Planimetric PlanimetricHeader
	ProjParams  [15]float64 // 5 records of 3 projection parameters
	FileToMap   [4]float64  // Internal file-to-map transformation parameters
	CtrlPoints  []ControlPoint
	Category    DataCategory
}

func parseBanner(r record) Banner {
	return Banner{Text: strings.TrimRight(r.raw(0, 72), " ")}
}

func parseCellHeader(r record) CellHeader {
	d := r.decoder()
	h := CellHeader{
		SrcDate:   d.String(41, 51),
		Qualifier: d.String(51, 52),
		Scale:     d.String(52, 60),
		Section:   d.String(63, 66),
	}
	if m := cellPattern.FindStringSubmatch(r.raw(0, 40)); m != nil {
		h.DataCell = m[1]
		h.States = m[2]
	}
	return h
}

func parseContourHeader(r record) ContourHeader {
	return ContourHeader{
		LargeContourInt: r.raw(41, 45),
		LargeBathyInt:   r.raw(46, 50),
		SmallContourInt: r.raw(51, 55),
		SmallBathyInt:   r.raw(56, 60),
		Flags:           strings.ReplaceAll(r.raw(60, 64), "\x00\x00\x00", "   "),
		EdgeWS:          r.raw(64, 65),
		EdgeWR:          r.raw(65, 66),
		EdgeNS:          r.raw(66, 67),
		EdgeNR:          r.raw(67, 68),
		EdgeES:          r.raw(68, 69),
		EdgeER:          r.raw(69, 70),
		EdgeSS:          r.raw(70, 71),
		EdgeSR:          r.raw(71, 72),
	}
}

func parsePlanimetricHeader(r record) (PlanimetricHeader, error) {
	d := r.decoder()
	h := PlanimetricHeader{
		DLGLevel:    d.Int("dlg_level", 0, 6),
		Planimetric: d.Int("planimetric", 6, 12),
		Zone:        d.Int("zone", 12, 18),
		Units:       d.Int("units", 18, 24),
		Resolution:  d.Float("resolution", 24, 42),
		NbParams:    d.Int("nb_params", 42, 48),
		AccurRecs:   d.Int("accur_recs", 48, 54),
		NbCtrlPts:   d.Int("nb_ctrl_pts", 54, 60),
		NbCategs:    d.Int("nb_categs", 60, 66),
	}
	return h, d.Err()
}

func parseControlPoint(r record) (ControlPoint, error) {
	d := r.decoder()
	cp := ControlPoint{
		Label: strings.TrimRight(r.raw(0, 6), " "),
		Lat:   d.Float("latitude", 6, 18),
		Long:  d.Float("longitude", 18, 30),
		X:     d.Float("x", 36, 48),
		Y:     d.Float("y", 48, 60),
	}
	return cp, d.Err()
}

func parseDataCategory(r record) (DataCategory, error) {
	d := r.decoder()
	c := DataCategory{
		Name:          strings.TrimRight(r.raw(0, 20), " "),
		Codes:         d.Int("codes", 20, 24),
		MaxNode:       d.Int("max_node", 24, 30),
		NbNodes:       d.Int("nb_nodes", 30, 36),
		NodeAreaLinks: r.flag(36),
		NodeLineLinks: r.flag(38),
		MaxArea:       d.Int("max_area", 40, 46),
		NbAreas:       d.Int("nb_areas", 46, 52),
		AreaNodeLinks: r.flag(53),
		AreaLineLinks: r.flag(54),
		AreaLists:     r.flag(55),
		MaxLines:      d.Int("max_lines", 56, 62),
		NbLines:       d.Int("nb_lines", 62, 68),
		LineLists:     r.flag(71),
	}
	return c, d.Err()
}

// readHeaders reads, in order: banner, cell, contour and planimetric records,
// projection parameters, file-to-map parameters, control points and the
// data category descriptor.
func readHeaders(rr *recordReader) (*Headers, error) {
	h := &Headers{}

	rec, err := rr.next("header", 0)
	if err != nil {
		return nil, err
	}
	h.Banner = parseBanner(rec)

	if rec, err = rr.next("header", 1); err != nil {
		return nil, err
	}
	h.Cell = parseCellHeader(rec)

	if rec, err = rr.next("header", 2); err != nil {
		return nil, err
	}
	h.Contour = parseContourHeader(rec)

	if rec, err = rr.next("header", 3); err != nil {
		return nil, err
	}
	if h.Planimetric, err = parsePlanimetricHeader(rec); err != nil {
		return nil, err
	}

	// Projection parameters for map transformation (headers 5-9), 3 x D24.15
	for i := 0; i < 5; i++ {
		if rec, err = rr.next("projection parameters", i); err != nil {
			return nil, err
		}
		d := rec.decoder()
		for j := 0; j < 3; j++ {
			h.ProjParams[3*i+j] = d.Float(fmt.Sprintf("param %d", 3*i+j+1), 24*j, 24*(j+1))
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
	}

	// Internal file-to-map projection transformation parameters (header 10), 4 x D18.11
	if rec, err = rr.next("file-to-map parameters", 0); err != nil {
		return nil, err
	}
	d := rec.decoder()
	for i := 0; i < 4; i++ {
		h.FileToMap[i] = d.Float(fmt.Sprintf("param %d", i+1), 18*i, 18*(i+1))
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	h.CtrlPoints = make([]ControlPoint, 0, capHint(h.Planimetric.NbCtrlPts))
	for i := 0; i < h.Planimetric.NbCtrlPts; i++ {
		if rec, err = rr.next("control point", i); err != nil {
			return nil, err
		}
		cp, err := parseControlPoint(rec)
		if err != nil {
			return nil, err
		}
		h.CtrlPoints = append(h.CtrlPoints, cp)
	}

	if rec, err = rr.next("data category", 0); err != nil {
		return nil, err
	}
	if h.Category, err = parseDataCategory(rec); err != nil {
		return nil, err
	}

	return h, nil
}

package parser

import (
	"fmt"
	"path/filepath"
)

// File represents a complete DLG-3 optional file.
// This is the top-level structure returned by the parser.
//
// Sections are stored as flat arrays; every cross-reference (line to area,
// area to line, island to area) is a 1-based id resolved through File.
// A File is immutable once parsed.
type File struct {
	Headers
	Nodes []Node
	Areas []Area
	Lines []Line

	// Path is the file the data was read from, empty for streams
	Path string

	tree *IslandTree
}

// Filename returns the base name of the source path
func (f *File) Filename() string {
	if f.Path == "" {
		return ""
	}
	return filepath.Base(f.Path)
}

// DataCell returns the name of the digital cartographic unit
func (f *File) DataCell() string {
	return f.Cell.DataCell
}

// States returns the state codes of the cell
func (f *File) States() string {
	return f.Cell.States
}

// Section returns the sectional indicator, e.g. "F01"
func (f *File) Section() string {
	return f.Cell.Section
}

// Zone returns the UTM zone of the planimetric reference system
func (f *File) Zone() int {
	return f.Planimetric.Zone
}

// CategoryName returns the data category, e.g. "HYDROGRAPHY"
func (f *File) CategoryName() string {
	return f.Category.Name
}

func (f *File) String() string {
	return fmt.Sprintf("%s, %s, %s", f.Cell.DataCell, f.Cell.States, f.Cell.Section)
}

// Node returns the node with the given 1-based id
func (f *File) Node(id int) (*Node, bool) {
	if id < 1 || id > len(f.Nodes) {
		return nil, false
	}
	return &f.Nodes[id-1], true
}

// Area returns the area with the given 1-based id
func (f *File) Area(id int) (*Area, bool) {
	if id < 1 || id > len(f.Areas) {
		return nil, false
	}
	return &f.Areas[id-1], true
}

// Line returns the line with the given id; the sign of a linkage id is ignored
func (f *File) Line(id int) (*Line, bool) {
	if id < 0 {
		id = -id
	}
	if id < 1 || id > len(f.Lines) {
		return nil, false
	}
	return &f.Lines[id-1], true
}

// IslandTree returns the containment tree computed at parse time
func (f *File) IslandTree() *IslandTree {
	return f.tree
}

// AreasWithIslands returns the areas declaring at least one island
func (f *File) AreasWithIslands() []*Area {
	var r []*Area
	for i := range f.Areas {
		if f.Areas[i].NbIslands > 0 {
			r = append(r, &f.Areas[i])
		}
	}
	return r
}

// Beyond returns the distinct areas across the given border lines from areaID
func (f *File) Beyond(areaID int, border []int) ([]int, error) {
	return topology{areas: f.Areas, lines: f.Lines}.beyond(areaID, border)
}

// OutsideAreas returns the neighbors across an area's outer border, as
// opposed to the areas inside its islands
func (f *File) OutsideAreas(areaID int) ([]int, error) {
	if _, ok := f.Area(areaID); !ok {
		return nil, &ErrTopologyInconsistency{AreaID: areaID, Reason: "no such area"}
	}
	return topology{areas: f.Areas, lines: f.Lines}.outsideAreas(areaID)
}

// InnerAreas returns the toplevel inner areas of every island of an area
func (f *File) InnerAreas(areaID int) []int {
	a, ok := f.Area(areaID)
	if !ok {
		return nil
	}
	var r []int
	for _, isle := range a.Islands {
		r = append(r, isle.ToplevelInnerAreas...)
	}
	return r
}

package dlg3

import (
	"io"

	"github.com/beetlebugorg/dlg3/internal/parser"
)

// Parser parses DLG-3 optional format files.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read files.
type Parser interface {
	// Parse reads a DLG-3 file, plain or gzip-compressed, and returns the
	// parsed File with its spatial index built.
	Parse(filename string) (*File, error)

	// ParseWithOptions parses a DLG-3 file with custom options.
	//
	// Use ParseOptions to control id and linkage validation and indexing.
	ParseWithOptions(filename string, opts ParseOptions) (*File, error)

	// ParseReader parses a DLG-3 stream. The returned File has no Path.
	ParseReader(r io.Reader, opts ParseOptions) (*File, error)

	// ParseHeaders reads only the header block of a file, through the data
	// category descriptor. It is much cheaper than Parse and is what catalog
	// scans use.
	ParseHeaders(filename string) (*Headers, error)
}

// NewParser creates a new DLG-3 parser with default settings.
//
// Example:
//
//	parser := dlg3.NewParser()
//	file, err := parser.Parse("boston-e_MA/hydrography/1653471.HY.opt.gz")
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and attaches the spatial index
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) Parse(filename string) (*File, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*File, error) {
	f, err := p.internal.ParseWithOptions(filename, opts.internal())
	if err != nil {
		return nil, err
	}
	return newFile(f, opts), nil
}

func (p *parserWrapper) ParseReader(r io.Reader, opts ParseOptions) (*File, error) {
	f, err := p.internal.ParseReader(r, opts.internal())
	if err != nil {
		return nil, err
	}
	return newFile(f, opts), nil
}

func (p *parserWrapper) ParseHeaders(filename string) (*Headers, error) {
	return p.internal.ParseHeaders(filename)
}

// File is a parsed DLG-3 optional file.
//
// The embedded parser File gives direct access to the headers and to the
// Nodes, Areas and Lines sections, along with the topology, geometry and
// attribute queries. File adds geographic coverage and an R-tree over
// every node, line and area for viewport queries.
//
// A File is immutable once parsed and safe for concurrent readers.
type File struct {
	*parser.File

	bounds       Bounds        // Coverage of all entities
	spatialIndex *spatialIndex // nil when indexing was disabled
}

func newFile(f *parser.File, opts ParseOptions) *File {
	file := &File{File: f}
	entities := file.indexedEntities()
	file.bounds = parser.PointsBBox(nil)
	for _, e := range entities {
		file.bounds = file.bounds.Union(e.bounds)
	}
	if opts.BuildIndex {
		file.buildSpatialIndex(entities)
	}
	return file
}

// Bounds returns the smallest box holding every node position, line
// vertex and area boundary in the file. It is Empty for a file without
// coordinates.
func (f *File) Bounds() Bounds {
	return f.bounds
}

// Indexed reports whether viewport queries go through the R-tree
func (f *File) Indexed() bool {
	return f.spatialIndex != nil
}

// Public names for the parsed model.
type (
	Headers           = parser.Headers
	Banner            = parser.Banner
	CellHeader        = parser.CellHeader
	ContourHeader     = parser.ContourHeader
	PlanimetricHeader = parser.PlanimetricHeader
	ControlPoint      = parser.ControlPoint
	DataCategory      = parser.DataCategory

	Element = parser.Element
	Node    = parser.Node
	Area    = parser.Area
	Line    = parser.Line
	Attr    = parser.Attr
	Point   = parser.Point

	Island     = parser.Island
	IslandTree = parser.IslandTree
	TreeNode   = parser.TreeNode

	Geometry     = parser.Geometry
	GeometryType = parser.GeometryType

	AttrMatches = parser.AttrMatches
	Summary     = parser.Summary
	RefPoint    = parser.RefPoint
)

// Geometry types.
const (
	GeometryTypePoint      = parser.GeometryTypePoint
	GeometryTypeLineString = parser.GeometryTypeLineString
	GeometryTypePolygon    = parser.GeometryTypePolygon
)

// Errors returned while parsing. Match them with errors.As.
type (
	ErrMalformedField        = parser.ErrMalformedField
	ErrTruncatedFile         = parser.ErrTruncatedFile
	ErrTopologyInconsistency = parser.ErrTopologyInconsistency
	ErrInvalidRecord         = parser.ErrInvalidRecord
)

// Attributed is any entity carrying attribute pairs
type Attributed = parser.Attributed

// AttrsCounts counts attribute occurrences over items, keyed by Attr.Key
func AttrsCounts[T Attributed](items []T) map[string]int {
	return parser.AttrsCounts(items)
}

// MergeAttrs sums two attribute count maps key by key
func MergeAttrs(d1, d2 map[string]int) map[string]int {
	return parser.MergeAttrs(d1, d2)
}

// BetweenZeroes splits an adjacency list into its island borders
func BetweenZeroes(ids []int) [][]int {
	return parser.BetweenZeroes(ids)
}

// DumpRecords writes a DLG-3 stream as one 80-character record per line
func DumpRecords(r io.Reader, w io.Writer) error {
	return parser.DumpRecords(r, w)
}

package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Parser parses DLG-3 optional format files.
//
// A file is a sequence of 80-character logical records: identification and
// description headers, a data category descriptor, then node, area and line
// records, each followed by its continuation records. Gzip-compressed input
// is detected by its magic bytes and decoded transparently.
type Parser interface {
	// Parse reads a DLG-3 file and returns the complete File
	// Returns error if the file cannot be read or parsed
	Parse(filename string) (*File, error)

	// ParseWithOptions parses with custom options
	ParseWithOptions(filename string, opts ParseOptions) (*File, error)

	// ParseReader parses a DLG-3 stream, plain or gzip-compressed
	ParseReader(r io.Reader, opts ParseOptions) (*File, error)

	// ParseHeaders reads only the header block, up to the data category descriptor
	ParseHeaders(filename string) (*Headers, error)
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// ValidateIDs: if true, require node, area and line ids to be 1..n in order
	// Default: true
	ValidateIDs bool

	// ValidateLinkage: if true, check that every line id in area-to-line
	// linkage and every area id on a line resolve to existing records
	// Default: true
	ValidateLinkage bool
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ValidateIDs:     true,
		ValidateLinkage: true,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new DLG-3 parser
func NewParser() Parser {
	return &defaultParser{}
}

// Parse reads a DLG-3 file and returns the complete File
func (p *defaultParser) Parse(filename string) (*File, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

// ParseWithOptions parses with custom options
func (p *defaultParser) ParseWithOptions(filename string, opts ParseOptions) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	file, err := p.ParseReader(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	file.Path = filename
	return file, nil
}

// ParseHeaders reads only the header block
func (p *defaultParser) ParseHeaders(filename string) (*Headers, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r, closeFn, err := decompress(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	defer closeFn()

	h, err := readHeaders(newRecordReader(r))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return h, nil
}

// ParseReader parses a stream in two passes. Pass one reads headers and all
// entities; pass two derives islands and the containment tree, which need
// random access to every line.
func (p *defaultParser) ParseReader(r io.Reader, opts ParseOptions) (*File, error) {
	r, closeFn, err := decompress(r)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	rr := newRecordReader(r)
	h, err := readHeaders(rr)
	if err != nil {
		return nil, err
	}
	e, err := readEntities(rr, h.Category, opts)
	if err != nil {
		return nil, err
	}

	if opts.ValidateLinkage {
		if err := validateLinkage(e); err != nil {
			return nil, err
		}
	}
	if err := buildIslands(e.areas, e.lines); err != nil {
		return nil, err
	}
	tree, err := buildTree(e.areas)
	if err != nil {
		return nil, err
	}

	return &File{
		Headers: *h,
		Nodes:   e.nodes,
		Areas:   e.areas,
		Lines:   e.lines,
		tree:    tree,
	}, nil
}

// decompress wraps r in a gzip reader when the stream starts with the gzip magic bytes
func decompress(r io.Reader) (io.Reader, func() error, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		// Short streams fall through and fail as truncated records
		return br, func() error { return nil }, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	return zr, zr.Close, nil
}

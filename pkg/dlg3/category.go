package dlg3

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Categories are the directory names under which USGS distributes the
// files of one quadrangle half, one directory per data category.
var Categories = []string{
	"boundaries",
	"hydrography",
	"hypsography",
	"public_lands",
	"transportation",
}

// categoryCodes maps the two-letter code of a file name to its category
// directory. Railroads, pipelines and roads all live under transportation.
var categoryCodes = map[string]string{
	"BO": "boundaries",
	"HY": "hydrography",
	"HP": "hypsography",
	"PL": "public_lands",
	"RR": "transportation",
	"MT": "transportation",
	"RD": "transportation",
}

// CategoryForCode returns the category directory of a file name code such as "HY".
func CategoryForCode(code string) (string, bool) {
	c, ok := categoryCodes[strings.ToUpper(code)]
	return c, ok
}

// ErrUnknownCategory is returned for a directory whose name is not one of Categories.
type ErrUnknownCategory struct {
	Dir string
}

func (e *ErrUnknownCategory) Error() string {
	return fmt.Sprintf("unknown category %q", filepath.Base(e.Dir))
}

// IsDataFile reports whether name looks like a DLG-3 optional file
func IsDataFile(name string) bool {
	return strings.HasSuffix(name, ".opt") || strings.HasSuffix(name, ".opt.gz")
}

// DiscoverFiles returns the DLG-3 files directly inside dir, sorted by name.
func DiscoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsDataFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// categoryFiles checks that dir is a category directory and lists its files
func categoryFiles(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	if !slices.Contains(Categories, filepath.Base(dir)) {
		return nil, &ErrUnknownCategory{Dir: dir}
	}
	return DiscoverFiles(dir)
}

// AttrCounts holds attribute occurrence counts per section, keyed by Attr.Key.
type AttrCounts struct {
	Nodes map[string]int `json:"nodes"`
	Areas map[string]int `json:"areas"`
	Lines map[string]int `json:"lines"`
}

// FileAttrCounts counts the attributes of one file
func FileAttrCounts(f *File) AttrCounts {
	return AttrCounts{
		Nodes: AttrsCounts(f.Nodes),
		Areas: AttrsCounts(f.Areas),
		Lines: AttrsCounts(f.Lines),
	}
}

// Merge returns the key-by-key sum of c and o
func (c AttrCounts) Merge(o AttrCounts) AttrCounts {
	return AttrCounts{
		Nodes: MergeAttrs(c.Nodes, o.Nodes),
		Areas: MergeAttrs(c.Areas, o.Areas),
		Lines: MergeAttrs(c.Lines, o.Lines),
	}
}

// CategoryAttrCounts parses every file of a category directory and sums
// their attribute counts. Files that fail to load are reported through
// opts and skipped when opts.SkipErrors is set.
func CategoryAttrCounts(dir string, parser Parser, opts LoadOptions) (AttrCounts, []error) {
	total := AttrCounts{Nodes: map[string]int{}, Areas: map[string]int{}, Lines: map[string]int{}}

	paths, err := categoryFiles(dir)
	if err != nil {
		return total, []error{err}
	}

	counts, errs := loadAll(paths, opts, func(path string) (AttrCounts, error) {
		f, err := LoadFile(path, parser, opts)
		if err != nil {
			return AttrCounts{}, err
		}
		return FileAttrCounts(f), nil
	})
	for _, c := range counts {
		total = total.Merge(c)
	}
	return total, errs
}

// FileMatches is the outcome of an attribute search in one file.
type FileMatches struct {
	Path    string      `json:"path"`
	Matches AttrMatches `json:"matches"`
}

// FindAttribute searches every file of a category directory for the
// attribute pair (major, minor). Every readable file gets an entry, even
// when it holds no match.
func FindAttribute(dir string, major, minor int, parser Parser, opts LoadOptions) ([]FileMatches, []error) {
	paths, err := categoryFiles(dir)
	if err != nil {
		return nil, []error{err}
	}

	return loadAll(paths, opts, func(path string) (FileMatches, error) {
		f, err := LoadFile(path, parser, opts)
		if err != nil {
			return FileMatches{}, err
		}
		return FileMatches{Path: path, Matches: f.HasAttribute(major, minor)}, nil
	})
}

package dlg3

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// FileIndex provides fast spatial queries over a collection of files.
//
// The index stores header metadata for each file and an R-tree over the
// control point extents. Extents are shifted into the zone 10 frame, as
// BoundingBoxAdjusted does, so files from several UTM zones share one
// coordinate space. Building the index reads headers only.
//
// Example:
//
//	idx, err := dlg3.BuildIndexFromDir("/data/DLG/100K/B", dlg3.NewParser(), dlg3.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range idx.Query(view, dlg3.QueryOptions{Categories: []string{"HYDROGRAPHY"}}) {
//	    fmt.Println(e.Path)
//	}
type FileIndex struct {
	files []FileEntry
	rtree *rtreego.Rtree
}

// FileEntry contains indexed metadata for a single file.
type FileEntry struct {
	Path     string `json:"path"`
	DataCell string `json:"data_cell"`
	States   string `json:"states"`
	Section  string `json:"section"`
	Category string `json:"category"` // Data category name, e.g. "HYDROGRAPHY"
	Zone     int    `json:"zone"`
	Extent   Bounds `json:"extent"` // Control point extent in the zone 10 frame
}

// Bounds implements rtreego.Spatial.
func (e FileEntry) Bounds() rtreego.Rect {
	return toRect(e.Extent)
}

// NewFileEntry builds the index entry of a file from its headers
func NewFileEntry(path string, h *Headers) FileEntry {
	return FileEntry{
		Path:     path,
		DataCell: h.Cell.DataCell,
		States:   h.Cell.States,
		Section:  h.Cell.Section,
		Category: h.Category.Name,
		Zone:     h.Planimetric.Zone,
		Extent:   h.CtrlPointsBBox().Shift(float64((h.Planimetric.Zone - 10) * 500_000)),
	}
}

// QueryOptions controls spatial query behavior.
type QueryOptions struct {
	// Categories filters by data category name. Empty means all.
	Categories []string

	// Sections filters by section code such as "F01". Empty means all.
	Sections []string
}

func (o QueryOptions) accept(e FileEntry) bool {
	if len(o.Categories) > 0 && !slices.Contains(o.Categories, e.Category) {
		return false
	}
	if len(o.Sections) > 0 && !slices.Contains(o.Sections, e.Section) {
		return false
	}
	return true
}

// FindFiles returns every DLG-3 file under root, recursively, sorted by path.
func FindFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsDataFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// BuildIndexFromDir builds a file index by scanning a directory tree.
//
// The USGS layout is one directory per quadrangle half, then one per
// category:
//
//	boston-e_MA/
//	  hydrography/
//	    1653471.HY.opt.gz
//	  transportation/
//	    ...
//
// Headers are read in parallel per opts; unreadable files are skipped
// when opts.SkipErrors is set.
func BuildIndexFromDir(root string, parser Parser, opts LoadOptions) (*FileIndex, error) {
	paths, err := FindFiles(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no DLG-3 files found in %s", root)
	}

	entries, errs := loadAll(paths, opts, func(path string) (FileEntry, error) {
		h, err := parser.ParseHeaders(path)
		if err != nil {
			return FileEntry{}, err
		}
		return NewFileEntry(path, h), nil
	})
	if len(entries) == 0 {
		return nil, fmt.Errorf("no files could be indexed (%d errors)", len(errs))
	}

	return BuildIndex(entries), nil
}

// BuildIndex creates an index from entries.
func BuildIndex(entries []FileEntry) *FileIndex {
	// 2D, min=25 children, max=50 children
	rtree := rtreego.NewTree(2, 25, 50)
	for _, e := range entries {
		rtree.Insert(e)
	}
	return &FileIndex{files: entries, rtree: rtree}
}

// Query returns the files whose extent intersects bounds, sorted by
// data cell, category and section.
func (idx *FileIndex) Query(bounds Bounds, opts QueryOptions) []FileEntry {
	var result []FileEntry
	for _, spatial := range idx.rtree.SearchIntersect(toRect(bounds)) {
		entry := spatial.(FileEntry)
		if opts.accept(entry) {
			result = append(result, entry)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.DataCell != b.DataCell {
			return a.DataCell < b.DataCell
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		return a.Path < b.Path
	})
	return result
}

// Count returns the total number of files in the index.
func (idx *FileIndex) Count() int {
	return len(idx.files)
}

// Bounds returns the union of all file extents in the index.
func (idx *FileIndex) Bounds() Bounds {
	if len(idx.files) == 0 {
		return Bounds{}
	}
	bounds := idx.files[0].Extent
	for _, e := range idx.files[1:] {
		bounds = bounds.Union(e.Extent)
	}
	return bounds
}

// All returns all file entries in the index.
func (idx *FileIndex) All() []FileEntry {
	return idx.files
}

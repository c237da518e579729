package dlg3

import (
	"sync/atomic"
)

// Library provides lazy loading of indexed files with caching.
//
// It combines a FileIndex (for finding the files under a viewport from
// their headers alone) with a FileCache (for keeping recently used files
// parsed). Files are parsed on demand when a viewport query first needs
// them and evicted when the cache is full.
//
// Example:
//
//	lib, err := dlg3.OpenLibrary("/data/DLG/100K", dlg3.DefaultLibraryOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	files, errs := lib.FilesForViewport(view, dlg3.QueryOptions{Categories: []string{"HYDROGRAPHY"}})
type Library struct {
	index  *FileIndex
	cache  *FileCache
	parser Parser
	opts   LoadOptions

	loads  atomic.Int64
	failed atomic.Int64
}

// LibraryOptions configures a Library.
type LibraryOptions struct {
	// CacheEntries is the number of parsed files kept in memory.
	// Default: 64
	CacheEntries int

	// Load controls how the index is built and how files are parsed.
	Load LoadOptions
}

// DefaultLibraryOptions returns library options with defaults.
func DefaultLibraryOptions() LibraryOptions {
	return LibraryOptions{
		CacheEntries: 64,
		Load:         DefaultLoadOptions(),
	}
}

// OpenLibrary indexes every DLG-3 file under root.
func OpenLibrary(root string, opts LibraryOptions) (*Library, error) {
	parser := NewParser()
	index, err := BuildIndexFromDir(root, parser, opts.Load)
	if err != nil {
		return nil, err
	}
	return NewLibrary(index, parser, opts)
}

// NewLibrary creates a library over an existing index.
func NewLibrary(index *FileIndex, parser Parser, opts LibraryOptions) (*Library, error) {
	entries := opts.CacheEntries
	if entries <= 0 {
		entries = DefaultLibraryOptions().CacheEntries
	}
	cache, err := NewFileCache(entries)
	if err != nil {
		return nil, err
	}
	load := opts.Load
	load.Cache = cache
	return &Library{index: index, cache: cache, parser: parser, opts: load}, nil
}

// FilesForViewport returns the parsed files whose extent intersects
// viewport, in index query order. The viewport is in the zone 10 frame
// of FileEntry.Extent. Files that fail to parse are left out and their
// errors returned.
func (l *Library) FilesForViewport(viewport Bounds, q QueryOptions) ([]*File, []error) {
	entries := l.index.Query(viewport, q)
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	opts := l.opts
	opts.SkipErrors = true
	set, errs := LoadFilesParallel(paths, l.parser, opts)
	l.loads.Add(int64(len(paths)))
	l.failed.Add(int64(len(errs)))
	return set.Files, errs
}

// Get returns the parsed file at path through the library cache.
func (l *Library) Get(path string) (*File, error) {
	l.loads.Add(1)
	f, err := LoadFile(path, l.parser, l.opts)
	if err != nil {
		l.failed.Add(1)
	}
	return f, err
}

// Index returns the file index.
func (l *Library) Index() *FileIndex {
	return l.index
}

// Stats returns library statistics.
func (l *Library) Stats() LibraryStats {
	cs := l.cache.Stats()
	return LibraryStats{
		IndexedFiles: l.index.Count(),
		CachedFiles:  cs.FileCount,
		Loads:        l.loads.Load(),
		Failed:       l.failed.Load(),
		CacheHits:    cs.Hits,
		CacheMisses:  cs.Misses,
	}
}

// HitRate returns the share of cache lookups served from memory, 0 to 1.
func (s LibraryStats) HitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// LibraryStats holds library performance metrics.
type LibraryStats struct {
	IndexedFiles int   // Total files in index
	CachedFiles  int   // Files currently parsed in memory
	Loads        int64 // File requests served
	Failed       int64 // Requests that ended in an error
	CacheHits    int64
	CacheMisses  int64
}

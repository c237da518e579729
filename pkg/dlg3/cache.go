package dlg3

import (
	"bytes"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

// FileCache keeps parsed files in memory with LRU eviction.
//
// Entries are keyed by the xxh3 hash of the raw file bytes together with
// the parse options, so an edited file is never served stale and two
// copies of one file share an entry. The cache lives for the process only.
//
// Example:
//
//	cache, err := dlg3.NewFileCache(64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	file, err := cache.Get(path, dlg3.NewParser(), dlg3.DefaultParseOptions())
type FileCache struct {
	files  *lru.Cache[cacheKey, *File]
	size   int
	hits   atomic.Int64
	misses atomic.Int64
}

type cacheKey struct {
	sum  uint64
	opts ParseOptions
}

// NewFileCache creates a cache holding at most entries parsed files.
func NewFileCache(entries int) (*FileCache, error) {
	files, err := lru.New[cacheKey, *File](entries)
	if err != nil {
		return nil, fmt.Errorf("file cache: %w", err)
	}
	return &FileCache{files: files, size: entries}, nil
}

// Get returns the parsed file at path, parsing it only on a cache miss.
//
// The file is always read so its content hash can be checked; only the
// decoding is saved on a hit.
func (c *FileCache) Get(path string, parser Parser, opts ParseOptions) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key := cacheKey{sum: xxh3.Hash(data), opts: opts}

	if f, ok := c.files.Get(key); ok {
		c.hits.Add(1)
		return withPath(f, path), nil
	}
	c.misses.Add(1)

	f, err := parser.ParseReader(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	c.files.Add(key, f)
	return f, nil
}

// withPath returns f as read from path. Files are immutable, so a copy
// differing only in Path can share every section with f.
func withPath(f *File, path string) *File {
	if f.Path == path {
		return f
	}
	inner := *f.File
	inner.Path = path
	return &File{File: &inner, bounds: f.bounds, spatialIndex: f.spatialIndex}
}

// Len returns the number of cached files.
func (c *FileCache) Len() int {
	return c.files.Len()
}

// Clear removes all files from the cache.
func (c *FileCache) Clear() {
	c.files.Purge()
}

// Stats returns cache statistics.
func (c *FileCache) Stats() CacheStats {
	return CacheStats{
		FileCount:  c.files.Len(),
		MaxEntries: c.size,
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	FileCount  int   // Number of files currently cached
	MaxEntries int   // Capacity
	Hits       int64 // Lookups served from memory
	Misses     int64 // Lookups that had to parse
}

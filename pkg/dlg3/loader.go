package dlg3

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Parallel enables concurrent file loading.
	// When true, files are loaded using multiple worker goroutines.
	Parallel bool

	// Workers specifies the number of parallel loader goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes loading to continue even when individual files fail.
	// Failed files are skipped and errors are collected.
	// When false, the first error stops loading and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback for tracking loading progress.
	// Called after each file is loaded (successfully or with error).
	Progress func(loaded, total int)

	// ErrorLog is an optional writer for detailed error reporting.
	// Each loading error is written here with the file path.
	ErrorLog io.Writer

	// Parse is passed to the parser for every file.
	Parse ParseOptions

	// Cache, when set, is consulted before parsing and filled after.
	Cache *FileCache
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Parse:      DefaultParseOptions(),
	}
}

// FileSet is an ordered collection of loaded files.
type FileSet struct {
	Files []*File
}

// Bounds returns the union of the adjusted bounding boxes of the files,
// which places files of different UTM zones in one frame.
func (s *FileSet) Bounds() Bounds {
	b := Bounds{}
	for i, f := range s.Files {
		if i == 0 {
			b = f.BoundingBoxAdjusted()
			continue
		}
		b = b.Union(f.BoundingBoxAdjusted())
	}
	return b
}

// LoadFile parses one file, going through the cache when opts has one.
func LoadFile(path string, parser Parser, opts LoadOptions) (*File, error) {
	if opts.Cache != nil {
		return opts.Cache.Get(path, parser, opts.Parse)
	}
	return parser.ParseWithOptions(path, opts.Parse)
}

// LoadFilesParallel loads multiple DLG-3 files with progress reporting.
//
// Files come back in the order of paths, minus those that failed when
// SkipErrors is set. Every error names its file.
//
// Example:
//
//	parser := dlg3.NewParser()
//	set, errs := dlg3.LoadFilesParallel(paths, parser, dlg3.LoadOptions{
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    ErrorLog:   os.Stderr,
//	    Parse:      dlg3.DefaultParseOptions(),
//	})
//	fmt.Printf("loaded %d files, skipped %d\n", len(set.Files), len(errs))
func LoadFilesParallel(paths []string, parser Parser, opts LoadOptions) (*FileSet, []error) {
	files, errs := loadAll(paths, opts, func(path string) (*File, error) {
		return LoadFile(path, parser, opts)
	})
	if files == nil {
		return nil, errs
	}
	return &FileSet{Files: files}, errs
}

// loadAll runs load over paths on a worker pool, or one at a time when
// Parallel is off. It returns nil results when SkipErrors is off and a
// load failed.
func loadAll[T any](paths []string, opts LoadOptions, load func(path string) (T, error)) ([]T, []error) {
	if len(paths) == 0 {
		return []T{}, nil
	}
	if !opts.Parallel {
		return loadSerial(paths, opts, load)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type loadResult struct {
		index int
		value T
		err   error
	}

	jobs := make(chan int, len(paths))
	results := make(chan loadResult, len(paths))

	// Closed on return; workers stop taking jobs after an early exit
	done := make(chan struct{})
	defer close(done)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				select {
				case <-done:
					return
				default:
				}
				value, err := load(paths[index])
				results <- loadResult{index: index, value: value, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	loadedByIndex := make(map[int]T)
	var errs []error
	loaded := 0

	for result := range results {
		loaded++
		if opts.Progress != nil {
			opts.Progress(loaded, len(paths))
		}

		if err := result.err; err != nil {
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading file: %v\n", err)
			}
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}

		loadedByIndex[result.index] = result.value
	}

	values := make([]T, 0, len(loadedByIndex))
	for i := range paths {
		if v, ok := loadedByIndex[i]; ok {
			values = append(values, v)
		}
	}
	return values, errs
}

// loadSerial loads files one at a time (fallback when Parallel=false).
func loadSerial[T any](paths []string, opts LoadOptions, load func(path string) (T, error)) ([]T, []error) {
	values := make([]T, 0, len(paths))
	var errs []error

	for i, path := range paths {
		value, err := load(path)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
		if err != nil {
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading file: %v\n", err)
			}
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		values = append(values, value)
	}

	return values, errs
}

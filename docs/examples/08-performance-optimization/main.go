package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

// Headers only, for fast catalog scans
func readSummary(path string) (dlg3.Summary, error) {
	h, err := dlg3.NewParser().ParseHeaders(path)
	if err != nil {
		return dlg3.Summary{}, err
	}
	return h.Summary(), nil
}

// Skip validation and the spatial index when only counts are needed
func parseLightweight(path string) (*dlg3.File, error) {
	opts := dlg3.ParseOptions{
		ValidateIDs:     false,
		ValidateLinkage: false,
		BuildIndex:      false,
	}
	return dlg3.NewParser().ParseWithOptions(path, opts)
}

func main() {
	fmt.Println("=== Headers only ===")
	s, err := readSummary("testdata/dlg/boston-e_MA/transportation/1653481.RD.opt.gz")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s %s: %d nodes, %d areas, %d lines\n", s.DataCell, s.Category, s.NbNodes, s.NbAreas, s.NbLines)

	fmt.Println("\n=== Lightweight parse ===")
	f, err := parseLightweight("testdata/dlg/boston-e_MA/hydrography/1653472.HY.opt")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Indexed: %v\n", f.Indexed())

	fmt.Println("\n=== Parallel load through a cache ===")
	paths, err := dlg3.FindFiles("testdata/dlg")
	if err != nil {
		log.Fatal(err)
	}
	cache, err := dlg3.NewFileCache(16)
	if err != nil {
		log.Fatal(err)
	}
	opts := dlg3.DefaultLoadOptions()
	opts.Cache = cache
	opts.ErrorLog = os.Stderr
	opts.Progress = func(loaded, total int) {
		fmt.Printf("  %d/%d\n", loaded, total)
	}

	for pass := 0; pass < 2; pass++ {
		set, _ := dlg3.LoadFilesParallel(paths, dlg3.NewParser(), opts)
		fmt.Printf("Loaded %d files, extent %s\n", len(set.Files), set.Bounds())
	}
	st := cache.Stats()
	fmt.Printf("Cache: %d files, %d hits, %d misses\n", st.FileCount, st.Hits, st.Misses)
}

package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

func main() {
	// Create parser
	parser := dlg3.NewParser()

	// Parse a file; .gz files are decompressed transparently
	file, err := parser.Parse("testdata/dlg/boston-e_MA/hydrography/1653471.HY.opt.gz")
	if err != nil {
		log.Fatal(err)
	}

	// Print file info
	fmt.Printf("File: %s\n", file)
	fmt.Printf("Category: %s\n", file.CategoryName())
	fmt.Printf("Nodes: %d, areas: %d, lines: %d\n", len(file.Nodes), len(file.Areas), len(file.Lines))

	// Map extent in ground units
	bounds := file.BoundingBox()
	fmt.Printf("Bounds: [%.2f,%.2f] to [%.2f,%.2f]\n",
		bounds.MinLong, bounds.MinLat,
		bounds.MaxLong, bounds.MaxLat)
}

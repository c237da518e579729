package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

func main() {
	// Index every file under a directory from its headers alone
	index, err := dlg3.BuildIndexFromDir("testdata/dlg", dlg3.NewParser(), dlg3.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Indexed %d files, extent %s\n", index.Count(), index.Bounds())

	// Extents are shifted into a common frame, (zone-10)*500000 ground units
	viewport := dlg3.Bounds{
		MinLat: 4_500_010, MaxLat: 4_500_020,
		MinLong: 4_500_150, MaxLong: 4_500_160,
	}
	for _, e := range index.Query(viewport, dlg3.QueryOptions{Categories: []string{"HYDROGRAPHY"}}) {
		fmt.Printf("  %s: %s %s %s\n", e.Path, e.DataCell, e.Section, e.Category)
	}
}

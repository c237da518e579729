package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

func printAreaDetails(a dlg3.Area) {
	fmt.Printf("Area %d\n", a.ID)
	for _, attr := range a.Attrs {
		fmt.Printf("  %s\n", attr.Key())
	}
}

func main() {
	parser := dlg3.NewParser()
	file, err := parser.Parse("testdata/dlg/boston-e_MA/hydrography/1653471.HY.opt.gz")
	if err != nil {
		log.Fatal(err)
	}

	for _, a := range file.Areas {
		if len(a.Attrs) > 0 {
			printAreaDetails(a)
		}
	}

	// Attribute pair frequencies
	fmt.Print(file.ShowAttributes())

	// Entities carrying major 50, minor 421
	m := file.HasAttribute(50, 421)
	fmt.Printf("(50,421): areas %v, lines %v\n", m.Areas, m.Lines)

	// Counts across a whole category directory
	counts, errs := dlg3.CategoryAttrCounts("testdata/dlg/boston-e_MA/hydrography",
		parser, dlg3.DefaultLoadOptions())
	for _, err := range errs {
		log.Printf("skipped: %v", err)
	}
	fmt.Printf("Category area pairs: %v\n", counts.Areas)
}

package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

func main() {
	parser := dlg3.NewParser()
	file, err := parser.Parse("testdata/dlg/boston-e_MA/hydrography/1653472.HY.opt")
	if err != nil {
		log.Fatal(err)
	}

	// Viewport in the file's own ground units
	viewport := dlg3.Bounds{
		MinLong: 30, MaxLong: 60,
		MinLat: 40, MaxLat: 60,
	}

	// Query the R-tree index for visible entities
	for _, ref := range file.EntitiesInBounds(viewport) {
		fmt.Printf("  %s %d\n", ref.Kind, ref.ID)
	}

	for _, a := range file.AreasInBounds(viewport) {
		geom, err := file.AreaGeometry(a.ID)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Area %d: %s with %d points\n", a.ID, geom.Type, len(geom.Coordinates))
	}
}

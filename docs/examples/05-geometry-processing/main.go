package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

func main() {
	parser := dlg3.NewParser()
	file, err := parser.Parse("testdata/dlg/boston-e_MA/hydrography/1653471.HY.opt.gz")
	if err != nil {
		log.Fatal(err)
	}

	// Containment tree of islands
	fmt.Print(file.IslandTree().Format())

	// Outer boundary plus island rings of every area with islands
	for _, a := range file.AreasWithIslands() {
		outer, err := file.AreaPoints(a.ID)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Area %d: %d boundary points\n", a.ID, len(outer))

		for k, isle := range a.Islands {
			ring, err := file.IslandPoints(a.ID, k)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("  island %d: %d points, top-level areas %v\n", k, len(ring), isle.ToplevelInnerAreas)
		}
	}

	// Areas neighbouring area 3 from outside
	outside, err := file.OutsideAreas(3)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Outside area 3: %v\n", outside)
}

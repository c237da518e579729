// Package dlg3 provides a parser for USGS Digital Line Graph files in the
// DLG-3 "Optional" format, the 80-column distribution of the 1:100,000
// series.
//
// A file holds one data category (hydrography, transportation, ...) of one
// section of a quadrangle: header records, then nodes, areas and lines with
// their attribute codes and coordinates. Files are read plain or
// gzip-compressed; the parser detects compression from the first bytes.
//
// # Basic Usage
//
//	parser := dlg3.NewParser()
//	file, err := parser.Parse("boston-e_MA/hydrography/1653471.HY.opt.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %d nodes, %d areas, %d lines\n",
//	    file, len(file.Nodes), len(file.Areas), len(file.Lines))
//
// # Topology
//
// Areas list their bounding lines as signed ids; a negative id means the
// line runs the other way around the area, and a zero starts the border of
// an island. The parser resolves every island into the areas directly
// inside it and builds the containment tree:
//
//	fmt.Print(file.IslandTree().Format())
//
//	outer, _ := file.AreaPoints(2)   // outer boundary polygon
//	isle, _ := file.IslandPoints(2, 0)
//
// # Spatial Queries
//
// Coordinates are map ground units (UTM meters) of the file's zone. Each
// File carries an R-tree over its entities:
//
//	view := dlg3.Bounds{MinLat: 4_690_000, MaxLat: 4_700_000, MinLong: 320_000, MaxLong: 330_000}
//	for _, l := range file.LinesInBounds(view) {
//	    draw(l.Coords)
//	}
//
// # Attributes
//
// Attributes are (major, minor) code pairs. Count them per file or over a
// whole category directory, or search for one pair:
//
//	counts := dlg3.FileAttrCounts(file)
//	matches := file.HasAttribute(50, 421)
//	total, errs := dlg3.CategoryAttrCounts(dir, parser, dlg3.DefaultLoadOptions())
//
// # Collections
//
// LoadFilesParallel parses many files on a worker pool. FileIndex indexes
// a directory tree from headers alone, and Library adds an LRU FileCache
// on top of it to parse only the files under a viewport.
package dlg3

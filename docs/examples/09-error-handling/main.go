package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

func safeParseFile(path string) (*dlg3.File, error) {
	parser := dlg3.NewParser()

	file, err := parser.Parse(path)
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s", path)
		}

		var truncated *dlg3.ErrTruncatedFile
		if errors.As(err, &truncated) {
			log.Printf("%s ends inside %s", path, truncated.Section)
		}

		var malformed *dlg3.ErrMalformedField
		if errors.As(err, &malformed) {
			log.Printf("%s: bad %s in %s", path, malformed.Field, malformed.Record)
		}

		var topo *dlg3.ErrTopologyInconsistency
		if errors.As(err, &topo) {
			log.Printf("%s: area %d: %s", path, topo.AreaID, topo.Reason)
		}
		return nil, err
	}

	if len(file.Areas) == 0 {
		log.Printf("Warning: %s contains no areas", path)
	}

	return file, nil
}

func main() {
	file, err := safeParseFile("testdata/dlg/boston-e_MA/hydrography/1653472.HY.opt")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Successfully loaded: %s\n", file)

	// Try to parse a non-existent file
	_, err = safeParseFile("testdata/dlg/missing.opt")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}

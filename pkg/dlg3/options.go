package dlg3

import "github.com/beetlebugorg/dlg3/internal/parser"

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// ValidateIDs requires node, area and line ids to run 1..n in file order.
	ValidateIDs bool

	// ValidateLinkage checks that every line id in area linkage and every
	// area id on a line resolve to an existing record.
	ValidateLinkage bool

	// BuildIndex builds the R-tree behind NodesInBounds, AreasInBounds and
	// LinesInBounds. Without it those queries scan every entity.
	// Default is true.
	BuildIndex bool
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ValidateIDs:     true,
		ValidateLinkage: true,
		BuildIndex:      true,
	}
}

func (o ParseOptions) internal() parser.ParseOptions {
	return parser.ParseOptions{
		ValidateIDs:     o.ValidateIDs,
		ValidateLinkage: o.ValidateLinkage,
	}
}

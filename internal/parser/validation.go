package parser

import (
	"fmt"
)

// validateLinkage checks cross-references before topology is derived.
// Every nonzero id in area-to-line linkage must name a line, and every
// nonzero area id on a line must name an area.
func validateLinkage(e *entities) error {
	for _, a := range e.areas {
		for _, l := range a.AdjLineIDs {
			if l == 0 {
				continue
			}
			if l < -len(e.lines) || l > len(e.lines) {
				return &ErrTopologyInconsistency{AreaID: a.ID, LineID: l, Reason: "line id out of range"}
			}
		}
	}
	for _, l := range e.lines {
		if err := ValidateAreaRef(l.LeftArea, len(e.areas)); err != nil {
			return fmt.Errorf("line %d left area: %w", l.ID, err)
		}
		if err := ValidateAreaRef(l.RightArea, len(e.areas)); err != nil {
			return fmt.Errorf("line %d right area: %w", l.ID, err)
		}
	}
	return nil
}

// ValidateAreaRef validates an area id found on a line.
// Zero means no area, as in categories without area records.
func ValidateAreaRef(id, nbAreas int) error {
	if id < 0 || id > nbAreas {
		return &ErrTopologyInconsistency{AreaID: id, Reason: fmt.Sprintf("area id outside 0..%d", nbAreas)}
	}
	return nil
}

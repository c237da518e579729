package parser

import (
	"fmt"
)

// ErrMalformedField indicates a numeric field holding non-numeric, non-blank content
type ErrMalformedField struct {
	Record string // Record kind (e.g. "header 4", "line 17")
	Field  string // Field name
	Start  int    // 0-indexed start offset within the record
	End    int    // Exclusive end offset
	Value  string // Raw field content
}

func (e *ErrMalformedField) Error() string {
	return fmt.Sprintf("malformed field %s [%d,%d) in %s: %q", e.Field, e.Start, e.End, e.Record, e.Value)
}

// ErrTruncatedFile indicates the stream ended before a declared number of records was read
type ErrTruncatedFile struct {
	Section string // What was being read when the stream ended
	Index   int    // Zero-based record index within the section
	Err     error  // Underlying read error (io.EOF or io.ErrUnexpectedEOF)
}

func (e *ErrTruncatedFile) Error() string {
	return fmt.Sprintf("truncated file: %s record %d: %v", e.Section, e.Index, e.Err)
}

func (e *ErrTruncatedFile) Unwrap() error {
	return e.Err
}

// ErrTopologyInconsistency indicates linkage that cannot be resolved to a neighboring area
type ErrTopologyInconsistency struct {
	AreaID int
	LineID int
	Reason string
}

func (e *ErrTopologyInconsistency) Error() string {
	if e.LineID != 0 {
		return fmt.Sprintf("topology inconsistency at area %d, line %d: %s", e.AreaID, e.LineID, e.Reason)
	}
	return fmt.Sprintf("topology inconsistency at area %d: %s", e.AreaID, e.Reason)
}

// ErrInvalidRecord indicates an identification record whose id breaks the 1-based contiguous numbering
type ErrInvalidRecord struct {
	Kind  string // "node", "area" or "line"
	Index int    // Zero-based position in the section
	ID    int    // Id found in the record
}

func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("invalid %s record at position %d: id %d, expected %d", e.Kind, e.Index, e.ID, e.Index+1)
}

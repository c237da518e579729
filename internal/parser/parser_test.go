package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeSample(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// TestParserIntegration parses the same file in every supported encoding
func TestParserIntegration(t *testing.T) {
	plain := sampleDLG().encode()

	crlf := sampleDLG()
	crlf.terminator = "\r\n"

	tests := []struct {
		name string
		data []byte
	}{
		{"plain", plain},
		{"gzip", gzipBytes(t, plain)},
		{"crlf terminated", crlf.encode()},
		{"gzip crlf terminated", gzipBytes(t, crlf.encode())},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSample(t, "boston.opt", tt.data)
			f, err := parser.Parse(path)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if f.Path != path || f.Filename() != "boston.opt" {
				t.Errorf("Path = %q, Filename() = %q", f.Path, f.Filename())
			}

			// Declared counts match the materialized sections
			c := f.Category
			if len(f.Nodes) != c.NbNodes || len(f.Areas) != c.NbAreas || len(f.Lines) != c.NbLines {
				t.Errorf("sections %d/%d/%d, category declares %d/%d/%d",
					len(f.Nodes), len(f.Areas), len(f.Lines), c.NbNodes, c.NbAreas, c.NbLines)
			}

			for i, l := range f.Lines {
				if l.ID != i+1 {
					t.Errorf("Lines[%d].ID = %d", i, l.ID)
				}
			}
			if f.DataCell() != "BOSTON" || f.States() != "MA-NH" || f.Section() != "F01" ||
				f.Zone() != 19 || f.CategoryName() != "HYDROGRAPHY" {
				t.Errorf("accessors = %s %s %s %d %s", f.DataCell(), f.States(), f.Section(), f.Zone(), f.CategoryName())
			}
			if f.IslandTree().Size() != 7 {
				t.Errorf("IslandTree().Size() = %d, want 7", f.IslandTree().Size())
			}
		})
	}
}

func TestParseReaderMatchesParse(t *testing.T) {
	data := sampleDLG().encode()
	path := writeSample(t, "boston.opt.gz", gzipBytes(t, data))

	fromFile, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fromReader, err := NewParser().ParseReader(bytes.NewReader(data), DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}

	if !reflect.DeepEqual(fromFile.Areas, fromReader.Areas) || !reflect.DeepEqual(fromFile.Lines, fromReader.Lines) {
		t.Error("gzip file and plain stream parse differently")
	}
	if fromReader.Path != "" || fromReader.Filename() != "" {
		t.Errorf("stream parse has path %q", fromReader.Path)
	}
}

func TestParseHeaders(t *testing.T) {
	data := sampleDLG().encode()

	// Only the header block is present; entity records are never read
	headerOnly := data[:RecordSize*15]
	path := writeSample(t, "headers.opt.gz", gzipBytes(t, headerOnly))

	h, err := NewParser().ParseHeaders(path)
	if err != nil {
		t.Fatalf("ParseHeaders() error = %v", err)
	}
	if h.Cell.DataCell != "BOSTON" || h.Category.NbLines != 8 || len(h.CtrlPoints) != 4 {
		t.Errorf("ParseHeaders() = %+v", h)
	}

	if _, err := NewParser().Parse(path); !errors.As(err, new(*ErrTruncatedFile)) {
		t.Errorf("Parse() of headers-only file error = %v, want *ErrTruncatedFile", err)
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewParser().Parse(filepath.Join(t.TempDir(), "none.opt"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Parse() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("empty stream", func(t *testing.T) {
		_, err := NewParser().ParseReader(bytes.NewReader(nil), DefaultParseOptions())
		var tf *ErrTruncatedFile
		if !errors.As(err, &tf) || tf.Section != "header" || tf.Index != 0 {
			t.Errorf("ParseReader() error = %v, want truncation at header 0", err)
		}
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		_, err := NewParser().ParseReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}), DefaultParseOptions())
		if err == nil {
			t.Error("ParseReader() of a corrupt gzip header succeeded")
		}
	})

	t.Run("area id on line out of range", func(t *testing.T) {
		d := sampleDLG()
		d.lines[0].left = 7
		_, err := NewParser().ParseReader(bytes.NewReader(d.encode()), DefaultParseOptions())
		var ti *ErrTopologyInconsistency
		if !errors.As(err, &ti) || ti.AreaID != 7 {
			t.Errorf("ParseReader() error = %v, want topology inconsistency on area 7", err)
		}
	})
}

package parser

// record.go - fixed-width logical record access and field decoding
// DLG-3 optional format: every record is 80 ASCII characters, fields at fixed offsets

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RecordSize is the width of every logical record in a DLG-3 optional file.
const RecordSize = 80

// fortranExponent maps FORTRAN D-exponent markers to the standard E marker
var fortranExponent = strings.NewReplacer("D", "E", "d", "E")

// record is one 80-character logical record
type record struct {
	data []byte
	name string // Used in error messages, e.g. "area 12"
}

// raw returns the untrimmed content of [start,end), clamped to the record width
func (r record) raw(start, end int) string {
	if start > len(r.data) {
		return ""
	}
	if end > len(r.data) {
		end = len(r.data)
	}
	return string(r.data[start:end])
}

// flag reports whether the single unit at pos holds '1'
func (r record) flag(pos int) bool {
	return pos < len(r.data) && r.data[pos] == '1'
}

// decoder returns a field decoder bound to this record
func (r record) decoder() *fieldDecoder {
	return &fieldDecoder{rec: r}
}

// fieldDecoder decodes fields from one record with a sticky error.
// After the first failure every later call is a no-op returning a zero value,
// so callers decode a whole record and check Err once.
type fieldDecoder struct {
	rec record
	err error
}

func (d *fieldDecoder) fail(field string, start, end int) {
	d.err = &ErrMalformedField{
		Record: d.rec.name,
		Field:  field,
		Start:  start,
		End:    end,
		Value:  d.rec.raw(start, end),
	}
}

// Err returns the first decoding error, if any
func (d *fieldDecoder) Err() error {
	return d.err
}

// String returns the field with surrounding whitespace removed
func (d *fieldDecoder) String(start, end int) string {
	return strings.TrimSpace(d.rec.raw(start, end))
}

// Int decodes a required integer; a blank field is malformed
func (d *fieldDecoder) Int(field string, start, end int) int {
	if d.err != nil {
		return 0
	}
	v, err := parseInt(d.rec.raw(start, end))
	if err != nil {
		d.fail(field, start, end)
		return 0
	}
	return v
}

// OptInt decodes an integer where a blank field means absent
func (d *fieldDecoder) OptInt(field string, start, end int) *int {
	if d.err != nil {
		return nil
	}
	s := d.rec.raw(start, end)
	if isBlank(s) {
		return nil
	}
	v, err := parseInt(s)
	if err != nil {
		d.fail(field, start, end)
		return nil
	}
	return &v
}

// Float decodes a required float in FORTRAN D-exponent or plain notation
func (d *fieldDecoder) Float(field string, start, end int) float64 {
	if d.err != nil {
		return 0
	}
	v, err := parseFortran(d.rec.raw(start, end))
	if err != nil {
		d.fail(field, start, end)
		return 0
	}
	return v
}

// OptFloat decodes a float where a blank field means absent
func (d *fieldDecoder) OptFloat(field string, start, end int) *float64 {
	if d.err != nil {
		return nil
	}
	s := d.rec.raw(start, end)
	if isBlank(s) {
		return nil
	}
	v, err := parseFortran(s)
	if err != nil {
		d.fail(field, start, end)
		return nil
	}
	return &v
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseFortran parses numbers in D-scientific notation, e.g. "0.12345678D+06"
func parseFortran(s string) (float64, error) {
	return strconv.ParseFloat(fortranExponent.Replace(strings.TrimSpace(s)), 64)
}

// recordReader yields consecutive 80-character records from a stream.
// Line terminators between records are tolerated and skipped.
type recordReader struct {
	r *bufio.Reader
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{r: bufio.NewReaderSize(r, 64*RecordSize)}
}

// next reads one record. section and index describe the record for error reporting.
func (rr *recordReader) next(section string, index int) (record, error) {
	if err := rr.skipTerminators(); err != nil && !errors.Is(err, io.EOF) {
		return record{}, fmt.Errorf("read %s record %d: %w", section, index, err)
	}

	buf := make([]byte, RecordSize)
	if _, err := io.ReadFull(rr.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return record{}, &ErrTruncatedFile{Section: section, Index: index, Err: err}
		}
		return record{}, fmt.Errorf("read %s record %d: %w", section, index, err)
	}

	return record{data: buf, name: fmt.Sprintf("%s %d", section, index+1)}, nil
}

func (rr *recordReader) skipTerminators() error {
	for {
		b, err := rr.r.Peek(1)
		if err != nil {
			return err
		}
		if b[0] != '\n' && b[0] != '\r' {
			return nil
		}
		if _, err := rr.r.Discard(1); err != nil {
			return err
		}
	}
}

// DumpRecords copies a DLG-3 stream to w as one 80-character row per line.
//
// NUL triplets, which some producers use as padding, are rendered as blanks
// so the output stays readable in text editors. Gzip streams are
// decompressed first.
func DumpRecords(r io.Reader, w io.Writer) error {
	r, closeFn, err := decompress(r)
	if err != nil {
		return err
	}
	defer closeFn()

	rr := newRecordReader(r)
	bw := bufio.NewWriter(w)
	buf := make([]byte, RecordSize)
	for {
		if err := rr.skipTerminators(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		n, err := io.ReadFull(rr.r, buf)
		if n > 0 {
			row := bytes.ReplaceAll(buf[:n], []byte("\x00\x00\x00"), []byte("   "))
			bw.Write(row)
			bw.WriteByte('\n')
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return err
		}
	}
	return bw.Flush()
}

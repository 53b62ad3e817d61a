// Package source reads sentence records from input files.
//
// A Source yields records in file order. Next returns io.EOF at the end of
// the stream, a *RowError for a record that could not be read (the caller
// may skip it and continue), and any other error when the stream itself
// failed.
package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	bom            = "\ufeff"
	scannerBufSize = 1 << 20 // longest accepted line
)

// DefaultColumns are the header names accepted for the sentence column,
// in order of preference.
var DefaultColumns = []string{"번역", "translation"}

// ErrNoColumn is returned when no header cell names the sentence column.
var ErrNoColumn = errors.New("source: sentence column not found")

// Record is one input sentence. Row is its 1-based position in the input:
// the record number after the header for CSV, the line number for text.
type Record struct {
	Row  int
	Text string
}

// Source yields sentence records in order.
type Source interface {
	Next() (Record, error)
}

// RowError reports a single record that could not be read.
type RowError struct {
	Row  int
	Line int // line in the input where the record starts, 0 if unknown
	Err  error
}

func (e *RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row %d (line %d): %v", e.Row, e.Line, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// CSVSource reads the sentence column of a CSV file with a header row.
type CSVSource struct {
	r      *csv.Reader
	column int
	row    int
}

// NewCSV reads the header from r and selects the first column whose name
// matches one of columns (DefaultColumns when none are given). Header
// cells are compared after trimming spaces and a leading byte order mark.
func NewCSV(r io.Reader, columns ...string) (*CSVSource, error) {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrNoColumn, "empty input")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], bom))
	}

	for _, want := range columns {
		for i, name := range header {
			if name == want {
				return &CSVSource{r: cr, column: i}, nil
			}
		}
	}
	return nil, errors.Wrapf(ErrNoColumn, "want one of %q, header has %q", columns, header)
}

// Next returns the next record.
func (s *CSVSource) Next() (Record, error) {
	fields, err := s.r.Read()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	s.row++
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return Record{}, &RowError{Row: s.row, Line: pe.StartLine, Err: pe.Err}
		}
		return Record{}, errors.Wrap(err, "read csv")
	}
	if s.column >= len(fields) {
		line, _ := s.r.FieldPos(0)
		return Record{}, &RowError{
			Row:  s.row,
			Line: line,
			Err:  fmt.Errorf("record has %d fields, sentence column is %d", len(fields), s.column+1),
		}
	}
	return Record{Row: s.row, Text: fields[s.column]}, nil
}

// LineSource reads one sentence per line. Blank lines are skipped but
// still counted in Row.
type LineSource struct {
	sc   *bufio.Scanner
	line int
}

// NewLines returns a LineSource reading from r.
func NewLines(r io.Reader) *LineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), scannerBufSize)
	return &LineSource{sc: sc}
}

// Next returns the next non-blank line.
func (s *LineSource) Next() (Record, error) {
	for s.sc.Scan() {
		s.line++
		b := s.sc.Bytes()
		if s.line == 1 {
			b = bytes.TrimPrefix(b, []byte(bom))
		}
		b = bytes.TrimRight(b, "\r")
		if len(bytes.TrimSpace(b)) == 0 {
			continue
		}
		return Record{Row: s.line, Text: string(b)}, nil
	}
	if err := s.sc.Err(); err != nil {
		return Record{}, errors.Wrapf(err, "read line %d", s.line+1)
	}
	return Record{}, io.EOF
}

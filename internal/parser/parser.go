// Package parser turns the selected CSV lines into rows of cells.
//
// Blank lines produce no row. A stray quote is kept as text, and an
// unterminated quoted cell runs to the end of the input unless it grows
// past FieldSizeLimit.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"fjacquet/csv2qif/internal/parsererror"
)

// FieldSizeLimit is the largest cell, in characters, the parser accepts.
const FieldSizeLimit = 131072

// ErrFieldTooLarge is returned for a cell longer than FieldSizeLimit.
var ErrFieldTooLarge = fmt.Errorf("field larger than field limit (%d)", FieldSizeLimit)

// Row is one parsed CSV record.
type Row []string

// RowSource yields rows one at a time and io.EOF once exhausted.
type RowSource interface {
	Next() (Row, error)
}

// RowParser reads comma-separated, double-quoted records (the "excel" dialect)
// with leading whitespace after a separator trimmed. Records may span lines
// when a quoted cell contains a newline. Rows may have differing lengths, and
// a bare quote inside an unquoted cell, as in 5" TV, is literal text.
type RowParser struct {
	r      *csv.Reader
	offset int
	line   int
	count  int
}

// NewRowParser reads records from r.
func NewRowParser(r io.Reader) *RowParser {
	cr := csv.NewReader(r)
	cr.Comma = ','
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return &RowParser{r: cr}
}

// WithLineOffset shifts reported line numbers by n, the number of input lines
// dropped before the parser saw its first line.
func (p *RowParser) WithLineOffset(n int) *RowParser {
	p.offset = n
	return p
}

// Next returns the next row. Unreadable records and oversized cells yield a
// *parsererror.ParseError carrying the input line number.
func (p *RowParser) Next() (Row, error) {
	record, err := p.r.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		line := 0
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			line = csvErr.StartLine + p.offset
			err = csvErr.Err
		}
		return nil, &parsererror.ParseError{Parser: "csv", Line: line, Err: err}
	}
	p.line, _ = p.r.FieldPos(0)
	for i, cell := range record {
		if utf8.RuneCountInString(cell) > FieldSizeLimit {
			return nil, &parsererror.ParseError{Parser: "csv", Line: p.Line(), Field: fmt.Sprintf("column %d", i), Value: head(cell, 20) + "...", Err: ErrFieldTooLarge}
		}
	}
	p.count++
	return Row(record), nil
}

func head(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// Line returns the input line number, counted from 1, on which the last
// returned row started.
func (p *RowParser) Line() int {
	return p.line + p.offset
}

// Count returns the number of rows returned so far.
func (p *RowParser) Count() int {
	return p.count
}

package qif

import (
	"bufio"
	"errors"
	"io"

	"fjacquet/csv2qif/internal/parsererror"
)

// LineSource yields lines one at a time and io.EOF once exhausted.
type LineSource interface {
	Next() (string, error)
}

// Writer writes QIF lines, one per line, in the order received.
type Writer struct {
	w     *bufio.Writer
	lines int
}

// NewWriter writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteLine writes line followed by a newline.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return &parsererror.IOError{Op: "write", Err: err}
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return &parsererror.IOError{Op: "write", Err: err}
	}
	w.lines++
	return nil
}

// Flush pushes buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return &parsererror.IOError{Op: "write", Err: err}
	}
	return nil
}

// WriteAll drains src and flushes. On error, lines already written stay in
// the output; everything pulled before the failure is flushed first.
func (w *Writer) WriteAll(src LineSource) (int, error) {
	start := w.lines
	for {
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ferr := w.Flush(); ferr != nil {
				return w.lines - start, errors.Join(err, ferr)
			}
			return w.lines - start, err
		}
		if err := w.WriteLine(line); err != nil {
			return w.lines - start, err
		}
	}
	return w.lines - start, w.Flush()
}

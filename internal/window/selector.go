package window

import (
	"bufio"
	"io"
)

// LineSource yields lines one at a time and io.EOF once exhausted.
type LineSource interface {
	Next() (string, error)
}

// LineReader splits an io.Reader into physical lines. Line terminators are
// kept so the selected lines can be re-joined byte for byte.
type LineReader struct {
	r *bufio.Reader
}

// NewLineSource wraps r.
func NewLineSource(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line including its terminator.
func (l *LineReader) Next() (string, error) {
	line, err := l.r.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
		return line, nil
	}
	return line, err
}

// Selector yields the lines of its source that fall inside a Window.
type Selector struct {
	src    LineSource
	w      Window
	pos    int      // lines pulled from src so far
	ring   []string // trailing lines withheld for a negative stop
	head   int
	filled bool
	done   bool
}

// NewSelector selects w out of src. Nothing is read before the first Next.
func NewSelector(src LineSource, w Window) *Selector {
	s := &Selector{src: src, w: w}
	if w.Stop != nil && *w.Stop < 0 {
		s.ring = make([]string, -*w.Stop)
	}
	return s
}

// Next returns the next selected line or io.EOF.
func (s *Selector) Next() (string, error) {
	if s.done || s.w.Empty() {
		s.done = true
		return "", io.EOF
	}
	if err := s.skipStart(); err != nil {
		return "", s.finish(err)
	}
	if s.ring != nil {
		return s.nextBuffered()
	}
	if s.w.Stop != nil && s.pos >= *s.w.Stop {
		s.done = true
		return "", io.EOF
	}
	line, err := s.src.Next()
	if err != nil {
		return "", s.finish(err)
	}
	s.pos++
	return line, nil
}

func (s *Selector) skipStart() error {
	for s.pos < s.w.Start {
		if _, err := s.src.Next(); err != nil {
			return err
		}
		s.pos++
	}
	return nil
}

// nextBuffered releases a line only once len(ring) newer lines have been read
// after it. Whatever is still buffered at end of input is the dropped tail.
func (s *Selector) nextBuffered() (string, error) {
	for {
		line, err := s.src.Next()
		if err != nil {
			return "", s.finish(err)
		}
		s.pos++
		if !s.filled {
			s.ring[s.head] = line
			s.head = (s.head + 1) % len(s.ring)
			s.filled = s.head == 0
			continue
		}
		oldest := s.ring[s.head]
		s.ring[s.head] = line
		s.head = (s.head + 1) % len(s.ring)
		return oldest, nil
	}
}

func (s *Selector) finish(err error) error {
	s.done = true
	s.ring = nil
	return err
}

// Reader adapts a LineSource to an io.Reader, pulling one line at a time.
type Reader struct {
	src LineSource
	buf string
	err error
}

// NewReader returns an io.Reader over the concatenated lines of src.
func NewReader(src LineSource) *Reader {
	return &Reader{src: src}
}

func (r *Reader) Read(p []byte) (int, error) {
	for r.buf == "" {
		if r.err != nil {
			return 0, r.err
		}
		r.buf, r.err = r.src.Next()
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// Package encodingutils resolves character encoding names and wraps readers
// and writers so the rest of the pipeline only sees UTF-8.
package encodingutils

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"fjacquet/csv2qif/internal/parsererror"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Default is the encoding used when none is configured.
const Default = "utf8"

// aliases maps names common in bank exports and on the command line to labels
// understood by charset.Lookup.
var aliases = map[string]string{
	"sjis":      "shift_jis",
	"shiftjis":  "shift_jis",
	"cp932":     "windows-31j",
	"ms932":     "windows-31j",
	"mskanji":   "windows-31j",
	"eucjp":     "euc-jp",
	"euc_jp":    "euc-jp",
	"utf_8":     "utf-8",
	"u8":        "utf-8",
	"latin1":    "iso-8859-1",
	"latin_1":   "iso-8859-1",
	"cp1252":    "windows-1252",
	"iso2022jp": "iso-2022-jp",
}

// ErrInvalidSequence is returned when input bytes are not valid in the
// configured encoding.
var ErrInvalidSequence = errors.New("invalid byte sequence for encoding")

// Encoding is a resolved character encoding.
type Encoding struct {
	Name string
	enc  encoding.Encoding
}

// Lookup resolves an encoding name such as "utf8", "sjis" or "euc-jp".
func Lookup(name string) (Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "" {
		label = Default
	}
	if alias, ok := aliases[label]; ok {
		label = alias
	}
	enc, canonical := charset.Lookup(label)
	if enc == nil {
		return Encoding{}, &parsererror.ConfigError{Option: "encoding", Value: name, Valid: KnownNames()}
	}
	return Encoding{Name: canonical, enc: enc}, nil
}

// KnownNames lists the short names accepted besides every WHATWG label.
func KnownNames() []string {
	names := []string{"utf8", "utf-8"}
	for k := range aliases {
		names = append(names, k)
	}
	sort.Strings(names[2:])
	return names
}

// IsUTF8 reports whether no transcoding is needed.
func (e Encoding) IsUTF8() bool {
	return e.enc == nil || e.Name == "utf-8"
}

// NewDecodingReader returns a reader yielding UTF-8. Bytes that are not valid
// in the source encoding make Read fail with ErrInvalidSequence instead of
// being replaced silently.
func (e Encoding) NewDecodingReader(r io.Reader) io.Reader {
	if e.IsUTF8() {
		return &strictReader{r: r, name: "utf-8"}
	}
	// Decoders substitute U+FFFD for bytes they cannot map.
	return &strictReader{r: transform.NewReader(r, e.enc.NewDecoder()), name: e.Name, decoded: true}
}

// NewEncodingWriter returns a writer converting UTF-8 to e. Characters that e
// cannot represent make Write fail.
func (e Encoding) NewEncodingWriter(w io.Writer) io.WriteCloser {
	if e.IsUTF8() {
		return nopCloser{w}
	}
	return transform.NewWriter(w, e.enc.NewEncoder())
}

// strictReader fails on invalid UTF-8 and, for decoded input, on U+FFFD.
type strictReader struct {
	r       io.Reader
	name    string
	decoded bool
	pending []byte
	offset  int64
}

func (s *strictReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	chunk := append(s.pending, p[:n]...)
	complete := len(chunk)
	if err == nil {
		complete = completePrefix(chunk)
	}
	if i := invalidAt(chunk[:complete], s.decoded); i >= 0 {
		return 0, fmt.Errorf("%w %s at byte %d", ErrInvalidSequence, s.name, s.offset+int64(i))
	}
	s.offset += int64(complete)
	s.pending = append(s.pending[:0], chunk[complete:]...)
	return n, err
}

// completePrefix returns the length of b without a trailing partial rune, so
// a rune split across two reads is checked whole.
func completePrefix(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if utf8.FullRune(b[i:]) {
				return len(b)
			}
			return i
		}
	}
	return len(b)
}

func invalidAt(b []byte, replacementInvalid bool) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && (size == 1 || replacementInvalid) {
			return i
		}
		i += size
	}
	return -1
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

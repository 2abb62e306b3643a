package fieldmap

import (
	"fmt"
	"strconv"
	"strings"

	"fjacquet/csv2qif/internal/parsererror"
)

// Source is where a field takes its value from: a zero-based column index
// or a constant copied into every record.
type Source struct {
	index    int
	constant string
	indexed  bool
}

// Column returns a Source reading the given zero-based column.
func Column(i int) Source {
	return Source{index: i, indexed: true}
}

// Constant returns a Source yielding value for every row.
func Constant(value string) Source {
	return Source{constant: value}
}

// ParseSource classifies s: a string made only of ASCII digits is a column
// index, anything else a constant.
func ParseSource(s string) (Source, error) {
	if isDigits(s) {
		i, err := strconv.Atoi(s)
		if err != nil {
			return Source{}, fmt.Errorf("column %q: %w", s, err)
		}
		return Column(i), nil
	}
	return Constant(s), nil
}

// Index returns the column and true for positional sources.
func (s Source) Index() (int, bool) {
	return s.index, s.indexed
}

// Value returns the constant and true for constant sources.
func (s Source) Value() (string, bool) {
	return s.constant, !s.indexed
}

func (s Source) String() string {
	if s.indexed {
		return strconv.Itoa(s.index)
	}
	return s.constant
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Entry binds a field to its source.
type Entry struct {
	Field  Field
	Source Source
}

// FieldMap is an ordered, validated list of entries. The zero value is empty.
type FieldMap struct {
	entries []Entry
}

// New builds a FieldMap and validates it.
func New(entries ...Entry) (FieldMap, error) {
	m := FieldMap{entries: append([]Entry(nil), entries...)}
	if err := m.Validate(); err != nil {
		return FieldMap{}, err
	}
	return m, nil
}

// Parse reads "Name:source,Name:source". Each element must contain exactly
// one colon, so constants cannot contain ':' or ','.
func Parse(spec string) (FieldMap, error) {
	var entries []Entry
	for _, element := range strings.Split(spec, ",") {
		parts := strings.Split(element, ":")
		if len(parts) != 2 {
			return FieldMap{}, &parsererror.ConfigError{
				Option: "--fieldMap",
				Value:  spec,
				Reason: fmt.Sprintf("element %q is not a Name:position pair", element),
				Valid:  Names(),
			}
		}
		f, err := ParseField(parts[0])
		if err != nil {
			return FieldMap{}, err
		}
		src, err := ParseSource(parts[1])
		if err != nil {
			return FieldMap{}, &parsererror.ConfigError{Option: "--fieldMap", Value: element, Reason: err.Error()}
		}
		entries = append(entries, Entry{Field: f, Source: src})
	}
	return New(entries...)
}

// Validate enforces the map invariants: known fields, no field mapped twice,
// and Amount never alongside both Debit and Credit.
func (m FieldMap) Validate() error {
	if len(m.entries) == 0 {
		return &parsererror.ConfigError{Option: "--fieldMap", Reason: "field map is empty", Valid: Names()}
	}
	seen := make(map[Field]bool, len(m.entries))
	for _, e := range m.entries {
		if !e.Field.valid() {
			return &parsererror.ConfigError{Option: "--fieldMap", Value: e.Field.String(), Valid: Names()}
		}
		if seen[e.Field] {
			return &parsererror.ConfigError{Option: "--fieldMap", Value: e.Field.String(), Reason: "field is mapped more than once"}
		}
		seen[e.Field] = true
	}
	if seen[Amount] && seen[Debit] && seen[Credit] {
		return &parsererror.ConfigError{Option: "--fieldMap", Value: m.String(), Reason: "Amount is mutually exclusive with Debit and Credit"}
	}
	return nil
}

// Entries returns a copy of the entries in map order.
func (m FieldMap) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Len returns the number of mapped fields.
func (m FieldMap) Len() int {
	return len(m.entries)
}

// Lookup returns the source of f.
func (m FieldMap) Lookup(f Field) (Source, bool) {
	for _, e := range m.entries {
		if e.Field == f {
			return e.Source, true
		}
	}
	return Source{}, false
}

// Partition splits the map into positional and constant entries, each in map order.
func (m FieldMap) Partition() (indexed, constant []Entry) {
	for _, e := range m.entries {
		if _, ok := e.Source.Index(); ok {
			indexed = append(indexed, e)
		} else {
			constant = append(constant, e)
		}
	}
	return indexed, constant
}

// String renders the map in the same notation Parse reads.
func (m FieldMap) String() string {
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = e.Field.String() + ":" + e.Source.String()
	}
	return strings.Join(parts, ",")
}

// Package preset holds the known bank and card statement layouts, addressed
// as "Name:Type" (for example "Shinsei:Bank").
package preset

import (
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"

	"fjacquet/csv2qif/internal/dateutils"
	"fjacquet/csv2qif/internal/encodingutils"
	"fjacquet/csv2qif/internal/fieldmap"
	"fjacquet/csv2qif/internal/parsererror"
	"fjacquet/csv2qif/internal/qif"
	"fjacquet/csv2qif/internal/window"

	"gopkg.in/yaml.v3"
)

// Preset describes how one institution's CSV export maps to QIF.
type Preset struct {
	Name       string `yaml:"name" csv:"name"`
	Type       string `yaml:"type" csv:"type"`
	Encoding   string `yaml:"encoding" csv:"encoding"`
	DateFormat string `yaml:"date_format" csv:"dtFmt"`
	Slice      string `yaml:"slice" csv:"slice"`
	FieldMap   string `yaml:"field_map" csv:"fieldMap"`
}

// Key returns "Name:Type".
func (p Preset) Key() string {
	return p.Name + ":" + p.Type
}

// Resolved is a Preset with every option parsed.
type Resolved struct {
	Key         string
	AccountType qif.AccountType
	Encoding    encodingutils.Encoding
	DateFormat  string
	Window      window.Window
	FieldMap    fieldmap.FieldMap
}

// Resolve parses the preset's options, failing like the equivalent user input
// would.
func (p Preset) Resolve() (Resolved, error) {
	r := Resolved{Key: p.Key(), DateFormat: p.DateFormat}
	var err error
	if r.AccountType, err = qif.ParseAccountType(p.Type); err != nil {
		return Resolved{}, fmt.Errorf("preset %s: %w", p.Key(), err)
	}
	enc := p.Encoding
	if enc == "" {
		enc = encodingutils.Default
	}
	if r.Encoding, err = encodingutils.Lookup(enc); err != nil {
		return Resolved{}, fmt.Errorf("preset %s: %w", p.Key(), err)
	}
	if r.DateFormat == "" {
		r.DateFormat = dateutils.DefaultFormat
	}
	if err = dateutils.ValidateFormat(r.DateFormat); err != nil {
		return Resolved{}, fmt.Errorf("preset %s: %w", p.Key(), err)
	}
	if r.Window, err = window.Parse(p.Slice); err != nil {
		return Resolved{}, fmt.Errorf("preset %s: %w", p.Key(), err)
	}
	if r.FieldMap, err = fieldmap.Parse(p.FieldMap); err != nil {
		return Resolved{}, fmt.Errorf("preset %s: %w", p.Key(), err)
	}
	return r, nil
}

// Builtin returns the presets shipped with the tool.
func Builtin() []Preset {
	return []Preset{
		{
			Name:       "JP-Post",
			Type:       string(qif.Bank),
			Encoding:   "sjis",
			DateFormat: "%Y%m%d",
			Slice:      "7:",
			FieldMap:   "Date:0,Credit:2,Debit:3,Payee:4,Memo:5",
		},
		{
			Name:       "Shinsei",
			Type:       string(qif.Bank),
			Encoding:   "sjis",
			DateFormat: "%Y/%m/%d",
			Slice:      "1:",
			FieldMap:   "Date:0,Memo:1,Debit:2,Credit:3",
		},
		{
			Name:       "EPOS",
			Type:       string(qif.CCard),
			Encoding:   "sjis",
			DateFormat: "%Y年%m月%d日",
			Slice:      "2:-4",
			FieldMap:   "Date:1,Payee:2,Debit:4",
		},
	}
}

// Registry maps "Name:Type" keys to presets.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry returns a registry holding the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{presets: make(map[string]Preset)}
	for _, p := range Builtin() {
		r.presets[p.Key()] = p
	}
	return r
}

// Add registers p after checking that it resolves. A preset with the same key
// is replaced.
func (r *Registry) Add(p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return &parsererror.ConfigError{Option: "preset name", Value: p.Name, Reason: "must not be empty"}
	}
	if _, err := p.Resolve(); err != nil {
		return err
	}
	r.presets[p.Key()] = p
	return nil
}

// Lookup resolves the preset registered under key.
func (r *Registry) Lookup(key string) (Resolved, error) {
	p, ok := r.presets[key]
	if !ok {
		return Resolved{}, &parsererror.ConfigError{Option: "--company", Value: key, Valid: r.Keys()}
	}
	return p.Resolve()
}

// Keys returns the registered keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.presets))
	for k := range r.presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns the registered presets sorted by key.
func (r *Registry) List() []Preset {
	list := make([]Preset, 0, len(r.presets))
	for _, k := range r.Keys() {
		list = append(list, r.presets[k])
	}
	return list
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile adds the presets listed in a YAML file:
//
//	presets:
//	  - name: MyBank
//	    type: Bank
//	    encoding: utf8
//	    date_format: "%d.%m.%Y"
//	    slice: "1:"
//	    field_map: "Date:0,Payee:1,Amount:2"
//
// Nothing is added if any entry is invalid.
func (r *Registry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &parsererror.IOError{Op: "open", Path: path, Err: err}
	}
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("error parsing preset file %s: %w", path, err)
	}

	staged := &Registry{presets: maps.Clone(r.presets)}
	for _, p := range f.Presets {
		if err := staged.Add(p); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
	}
	r.presets = staged.presets
	return len(f.Presets), nil
}

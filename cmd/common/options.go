// Package common contains shared functionality for command handlers
package common

import (
	"slices"
	"strings"

	"fjacquet/csv2qif/internal/config"
	"fjacquet/csv2qif/internal/converter"
	"fjacquet/csv2qif/internal/fieldmap"
	"fjacquet/csv2qif/internal/parsererror"
	"fjacquet/csv2qif/internal/preset"
	"fjacquet/csv2qif/internal/qif"
	"fjacquet/csv2qif/internal/window"
)

// Option keys accepted in --csv and --qif values.
const (
	KeyFile       = "file"
	KeyEncoding   = "encoding"
	KeyDateFormat = "dtFmt"
	KeySlice      = "slice"
	KeyType       = "type"
)

var (
	csvKeys = []string{KeyFile, KeyEncoding, KeyDateFormat, KeySlice}
	qifKeys = []string{KeyFile, KeyEncoding, KeyDateFormat, KeyType}
)

// FileOptions is a parsed --csv or --qif value such as
// "data.csv,encoding=sjis,slice=1:". A token without "=" names the file.
type FileOptions map[string]string

// ParseFileOptions splits value on "," and each item on the first "=".
// Keys outside valid are rejected.
func ParseFileOptions(value, option string, valid []string) (FileOptions, error) {
	opts := FileOptions{}
	if strings.TrimSpace(value) == "" {
		return opts, nil
	}
	for _, item := range strings.Split(value, ",") {
		key, val, found := strings.Cut(item, "=")
		if !found {
			opts[KeyFile] = item
			continue
		}
		if !slices.Contains(valid, key) {
			return nil, &parsererror.ConfigError{Option: option, Value: key, Valid: valid}
		}
		if val == "" {
			return nil, &parsererror.ConfigError{Option: option, Value: item, Reason: "missing value"}
		}
		opts[key] = val
	}
	return opts, nil
}

// Get returns the value for key, or fallback when it was not given.
func (o FileOptions) Get(key, fallback string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return fallback
}

// Has reports whether key was given.
func (o FileOptions) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Flags holds the raw mapping flags shared by convert and batch.
type Flags struct {
	CSV      string
	QIF      string
	FieldMap string
	Company  string
}

// BuildOptions turns flags into converter options. Defaults come from cfg;
// a preset replaces the CSV encoding, slice and date format, the QIF type
// and the field map.
func BuildOptions(flags Flags, cfg *config.Config, presets *preset.Registry) (converter.Options, error) {
	csvOpts, err := ParseFileOptions(flags.CSV, "--csv", csvKeys)
	if err != nil {
		return converter.Options{}, err
	}
	qifOpts, err := ParseFileOptions(flags.QIF, "--qif", qifKeys)
	if err != nil {
		return converter.Options{}, err
	}

	opts := converter.Options{
		CSV: converter.CSVOptions{
			File:       csvOpts.Get(KeyFile, ""),
			Encoding:   csvOpts.Get(KeyEncoding, cfg.CSV.Encoding),
			DateFormat: csvOpts.Get(KeyDateFormat, cfg.CSV.DateFormat),
		},
		QIF: converter.QIFOptions{
			File:       qifOpts.Get(KeyFile, ""),
			Encoding:   qifOpts.Get(KeyEncoding, cfg.QIF.Encoding),
			DateFormat: qifOpts.Get(KeyDateFormat, cfg.QIF.DateFormat),
		},
	}

	switch {
	case flags.Company != "" && flags.FieldMap != "":
		return converter.Options{}, &parsererror.ConfigError{Option: "--company", Value: flags.Company, Reason: "--fieldMap and --company are mutually exclusive"}
	case flags.Company != "":
		p, err := presets.Lookup(flags.Company)
		if err != nil {
			return converter.Options{}, err
		}
		opts.CSV.Encoding = p.Encoding.Name
		opts.CSV.DateFormat = p.DateFormat
		opts.CSV.Window = p.Window
		opts.QIF.Type = p.AccountType
		opts.FieldMap = p.FieldMap
	case flags.FieldMap != "":
		if opts.CSV.Window, err = window.Parse(csvOpts.Get(KeySlice, "")); err != nil {
			return converter.Options{}, err
		}
		if opts.QIF.Type, err = qif.ParseAccountType(qifOpts.Get(KeyType, cfg.QIF.Type)); err != nil {
			return converter.Options{}, err
		}
		if opts.FieldMap, err = fieldmap.Parse(flags.FieldMap); err != nil {
			return converter.Options{}, err
		}
	default:
		return converter.Options{}, &parsererror.ConfigError{Option: "--fieldMap", Reason: "one of --fieldMap or --company is required", Valid: presets.Keys()}
	}

	if err := opts.Validate(); err != nil {
		return converter.Options{}, err
	}
	return opts, nil
}

// Package converter runs one CSV to QIF conversion: window, CSV rows, field
// mapping and QIF output, streamed line by line.
package converter

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/csv2qif/internal/dateutils"
	"fjacquet/csv2qif/internal/encodingutils"
	"fjacquet/csv2qif/internal/fieldmap"
	"fjacquet/csv2qif/internal/fileutils"
	"fjacquet/csv2qif/internal/logging"
	"fjacquet/csv2qif/internal/models"
	"fjacquet/csv2qif/internal/parser"
	"fjacquet/csv2qif/internal/parsererror"
	"fjacquet/csv2qif/internal/qif"
	"fjacquet/csv2qif/internal/window"
)

// ErrNoInput is returned when no CSV file is configured.
var ErrNoInput = errors.New("no CSV input file")

// CSVOptions describes the input side.
type CSVOptions struct {
	File       string
	Encoding   string
	DateFormat string
	Window     window.Window
}

// QIFOptions describes the output side. An empty File derives the output path
// from the input path.
type QIFOptions struct {
	File       string
	Encoding   string
	DateFormat string
	Type       qif.AccountType
}

// Options is everything one conversion needs.
type Options struct {
	CSV      CSVOptions
	QIF      QIFOptions
	FieldMap fieldmap.FieldMap
}

// withDefaults fills blank options.
func (o Options) withDefaults() Options {
	if o.CSV.Encoding == "" {
		o.CSV.Encoding = encodingutils.Default
	}
	if o.CSV.DateFormat == "" {
		o.CSV.DateFormat = dateutils.DefaultFormat
	}
	if o.QIF.Encoding == "" {
		o.QIF.Encoding = encodingutils.Default
	}
	if o.QIF.DateFormat == "" {
		o.QIF.DateFormat = dateutils.DefaultFormat
	}
	if o.QIF.Type == "" {
		o.QIF.Type = qif.DefaultAccountType
	}
	return o
}

// Validate checks the options without touching any file.
func (o Options) Validate() error {
	o = o.withDefaults()
	if _, err := qif.ParseAccountType(string(o.QIF.Type)); err != nil {
		return err
	}
	if err := o.FieldMap.Validate(); err != nil {
		return err
	}
	if _, err := encodingutils.Lookup(o.CSV.Encoding); err != nil {
		return err
	}
	if _, err := encodingutils.Lookup(o.QIF.Encoding); err != nil {
		return err
	}
	if err := dateutils.ValidateFormat(o.CSV.DateFormat); err != nil {
		return &parsererror.ConfigError{Option: "--csv dtFmt", Value: o.CSV.DateFormat, Reason: err.Error()}
	}
	if err := dateutils.ValidateFormat(o.QIF.DateFormat); err != nil {
		return &parsererror.ConfigError{Option: "--qif dtFmt", Value: o.QIF.DateFormat, Reason: err.Error()}
	}
	return nil
}

// Convert reads CSV from r and writes QIF to w. Neither stream is closed. On
// error, QIF lines produced before the failure have been written to w.
func Convert(r io.Reader, w io.Writer, opts Options, logger logging.Logger) (models.Summary, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return models.Summary{}, err
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	inEnc, err := encodingutils.Lookup(opts.CSV.Encoding)
	if err != nil {
		return models.Summary{}, err
	}
	outEnc, err := encodingutils.Lookup(opts.QIF.Encoding)
	if err != nil {
		return models.Summary{}, err
	}

	lines := window.NewSelector(window.NewLineSource(inEnc.NewDecodingReader(r)), opts.CSV.Window)
	rows := parser.NewRowParser(window.NewReader(lines)).WithLineOffset(opts.CSV.Window.Start)
	transformer := qif.NewTransformer(rows, qif.TransformOptions{
		FieldMap:      opts.FieldMap,
		AccountType:   opts.QIF.Type,
		CSVDateFormat: opts.CSV.DateFormat,
		QIFDateFormat: opts.QIF.DateFormat,
		Logger:        logger,
	})

	encoded := outEnc.NewEncodingWriter(w)
	written, werr := qif.NewWriter(encoded).WriteAll(transformer)
	cerr := encoded.Close()
	summary := transformer.Summary()
	logger.Debug("CSV rows", logging.F(logging.FieldCount, rows.Count()))
	logger.Debug("QIF lines", logging.F(logging.FieldCount, written))

	if werr != nil {
		return summary, werr
	}
	if cerr != nil {
		return summary, &parsererror.IOError{Op: "write", Err: cerr}
	}
	return summary, nil
}

// ConvertFile converts opts.CSV.File into opts.QIF.File, deriving the output
// path when it is blank. Both files are closed before returning.
func ConvertFile(opts Options, logger logging.Logger) (summary models.Summary, err error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.CSV.File == "" {
		return summary, ErrNoInput
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return summary, err
	}
	if opts.QIF.File == "" {
		if opts.QIF.File, err = fileutils.DefaultOutputPath(opts.CSV.File); err != nil {
			return summary, err
		}
	}

	log := logger.WithFields(
		logging.F(logging.FieldInputFile, opts.CSV.File),
		logging.F(logging.FieldOutputFile, opts.QIF.File),
	)
	log.Debug("Converting",
		logging.F(logging.FieldEncoding, opts.CSV.Encoding),
		logging.F(logging.FieldDateFormat, opts.CSV.DateFormat),
		logging.F(logging.FieldWindow, opts.CSV.Window.String()),
		logging.F(logging.FieldAccountType, string(opts.QIF.Type)),
		logging.F(logging.FieldFieldMap, opts.FieldMap.String()),
	)

	in, err := fileutils.OpenFile(opts.CSV.File)
	if err != nil {
		return summary, err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil && err == nil {
			err = &parsererror.IOError{Op: "close", Path: opts.CSV.File, Err: cerr}
		}
	}()

	out, err := fileutils.CreateFile(opts.QIF.File)
	if err != nil {
		return summary, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &parsererror.IOError{Op: "close", Path: opts.QIF.File, Err: cerr}
		}
	}()

	summary, err = Convert(in, out, opts, log)
	if err != nil {
		return summary, fmt.Errorf("error converting %s: %w", opts.CSV.File, err)
	}
	log.Info("Conversion completed",
		logging.F(logging.FieldRecords, summary.Records),
		logging.F(logging.FieldSkipped, summary.Skipped),
		logging.F(logging.FieldNet, summary.NetString()),
	)
	return summary, nil
}

package common

import (
	"fmt"

	"fjacquet/csv2qif/internal/converter"
	"fjacquet/csv2qif/internal/logging"
	"fjacquet/csv2qif/internal/models"
)

// FileConverter converts one CSV file to QIF.
type FileConverter interface {
	ConvertFile(opts converter.Options, logger logging.Logger) (models.Summary, error)
}

// FileConverterFunc adapts a function to FileConverter.
type FileConverterFunc func(opts converter.Options, logger logging.Logger) (models.Summary, error)

// ConvertFile calls f.
func (f FileConverterFunc) ConvertFile(opts converter.Options, logger logging.Logger) (models.Summary, error) {
	return f(opts, logger)
}

// DefaultConverter converts with converter.ConvertFile.
var DefaultConverter FileConverter = FileConverterFunc(converter.ConvertFile)

// ProcessFile converts the file named in opts and logs the summary.
func ProcessFile(conv FileConverter, opts converter.Options, log logging.Logger) (models.Summary, error) {
	summary, err := conv.ConvertFile(opts, log)
	if err != nil {
		return summary, err
	}
	log.Info(summary.String(), logging.F(logging.FieldInputFile, opts.CSV.File))
	if summary.Unparsed > 0 {
		log.Warn("Some amounts are not numbers and are left out of the net total",
			logging.F(logging.FieldCount, summary.Unparsed))
	}
	return summary, nil
}

// ProcessFiles converts each input to its default output path, sharing every
// other option. It stops at the first failure and returns the totals of the
// files converted so far.
func ProcessFiles(conv FileConverter, inputs []string, opts converter.Options, log logging.Logger) (models.Summary, error) {
	var total models.Summary
	for i, input := range inputs {
		fileOpts := opts
		fileOpts.CSV.File = input
		fileOpts.QIF.File = ""

		summary, err := ProcessFile(conv, fileOpts, log)
		total.Merge(summary)
		if err != nil {
			return total, fmt.Errorf("file %d of %d: %w", i+1, len(inputs), err)
		}
	}
	return total, nil
}

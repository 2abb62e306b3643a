package qif

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"fjacquet/csv2qif/internal/dateutils"
	"fjacquet/csv2qif/internal/fieldmap"
	"fjacquet/csv2qif/internal/logging"
	"fjacquet/csv2qif/internal/models"
	"fjacquet/csv2qif/internal/parser"
	"fjacquet/csv2qif/internal/parsererror"
)

// TransformOptions configures a Transformer.
type TransformOptions struct {
	FieldMap      fieldmap.FieldMap
	AccountType   AccountType
	CSVDateFormat string
	QIFDateFormat string
	Logger        logging.Logger
}

// ResolvedField is a field with the value it takes for one row.
type ResolvedField struct {
	Field fieldmap.Field
	Value string
}

// lineLocator reports where the current row started in the input.
type lineLocator interface {
	Line() int
}

// Transformer pulls rows and yields QIF lines: the header once, then for each
// row carrying an amount one line per field followed by "^".
type Transformer struct {
	rows     parser.RowSource
	opts     TransformOptions
	logger   logging.Logger
	indexed  []fieldmap.Entry
	constant []fieldmap.Entry

	pending []string
	started bool
	done    bool
	summary models.Summary
}

// NewTransformer builds a Transformer over rows. The field map is split into
// positional and constant entries once, here.
func NewTransformer(rows parser.RowSource, opts TransformOptions) *Transformer {
	if opts.AccountType == "" {
		opts.AccountType = DefaultAccountType
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	indexed, constant := opts.FieldMap.Partition()
	return &Transformer{
		rows:     rows,
		opts:     opts,
		logger:   logger,
		indexed:  indexed,
		constant: constant,
	}
}

// Next returns the next QIF line or io.EOF. Errors are fatal: once one is
// returned the Transformer yields nothing more.
func (t *Transformer) Next() (string, error) {
	if !t.started {
		t.started = true
		return t.opts.AccountType.Header(), nil
	}
	for len(t.pending) == 0 {
		if t.done {
			return "", io.EOF
		}
		if err := t.advance(); err != nil {
			t.done = true
			t.pending = nil
			if errors.Is(err, io.EOF) {
				t.logger.Debug("QIF records", logging.F(logging.FieldRecords, t.summary.Records))
				return "", io.EOF
			}
			return "", err
		}
	}
	line := t.pending[0]
	t.pending = t.pending[1:]
	return line, nil
}

// advance converts the next row into pending lines. Rows without any amount
// leave pending empty.
func (t *Transformer) advance() error {
	row, err := t.rows.Next()
	if err != nil {
		return err
	}
	t.summary.Rows++
	fields, keep, err := t.Resolve(row)
	if err != nil {
		return err
	}
	if !keep {
		t.summary.Skipped++
		t.logger.Debug("Skipping row without amount", logging.F(logging.FieldRow, t.line()))
		return nil
	}
	t.logger.Debug("Resolved fields", logging.F(logging.FieldRow, t.line()), logging.F(logging.FieldFields, fields))

	for _, rf := range fields {
		line, ok := rf.Field.Line(rf.Value)
		if !ok {
			continue
		}
		if rf.Field.IsAmount() {
			t.summary.AddAmount(rf.Value, rf.Field.Negated())
		}
		t.pending = append(t.pending, line)
	}
	t.pending = append(t.pending, "^")
	t.summary.Records++
	return nil
}

// Resolve maps one row to its ordered field values: positional fields in map
// order, then constants. keep is false when none of Amount, Debit or Credit
// has a value in the row.
func (t *Transformer) Resolve(row parser.Row) (fields []ResolvedField, keep bool, err error) {
	fields = make([]ResolvedField, 0, len(t.indexed)+len(t.constant))
	dateAt := -1
	for _, e := range t.indexed {
		i, _ := e.Source.Index()
		if i >= len(row) {
			return nil, false, &parsererror.ParseError{
				Parser: "qif",
				Line:   t.line(),
				Field:  e.Field.String(),
				Value:  "column " + strconv.Itoa(i),
				Err:    fmt.Errorf("row has only %d columns", len(row)),
			}
		}
		if e.Field.IsAmount() && row[i] != "" {
			keep = true
		}
		if e.Field == fieldmap.Date {
			dateAt = len(fields)
		}
		fields = append(fields, ResolvedField{Field: e.Field, Value: row[i]})
	}
	if !keep {
		return nil, false, nil
	}

	if dateAt >= 0 && t.opts.CSVDateFormat != t.opts.QIFDateFormat {
		value := fields[dateAt].Value
		reformatted, err := dateutils.Reformat(value, t.opts.CSVDateFormat, t.opts.QIFDateFormat)
		if err != nil {
			return nil, false, &parsererror.ParseError{Parser: "qif", Line: t.line(), Field: "Date", Value: value, Err: err}
		}
		fields[dateAt].Value = reformatted
	}

	for _, e := range t.constant {
		v, _ := e.Source.Value()
		fields = append(fields, ResolvedField{Field: e.Field, Value: v})
	}
	return fields, true, nil
}

func (t *Transformer) line() int {
	if l, ok := t.rows.(lineLocator); ok {
		return l.Line()
	}
	return t.summary.Rows
}

// Summary returns the counts accumulated so far.
func (t *Transformer) Summary() models.Summary {
	return t.summary
}

func (rf ResolvedField) String() string {
	return rf.Field.String() + "=" + rf.Value
}

// Package fieldmap describes how CSV columns map to QIF fields.
package fieldmap

import (
	"fmt"

	"fjacquet/csv2qif/internal/parsererror"
)

// Field is one of the fixed set of logical transaction fields.
type Field int

const (
	Date Field = iota
	Amount
	Debit
	Credit
	Payee
	Memo
	Action
	Security
	Price
	Quantity
	Commission
	Cleared
	numFields
)

// fieldSpec is the dispatch entry of a Field.
type fieldSpec struct {
	name string
	// code prefixes every QIF line carrying the field.
	code string
	// omitEmpty drops the QIF line when the value is empty.
	omitEmpty bool
	// negated fields are written as negative amounts; the sign is part of code.
	negated bool
}

var specs = [numFields]fieldSpec{
	Date:       {name: "Date", code: "D"},
	Amount:     {name: "Amount", code: "T"},
	Debit:      {name: "Debit", code: "T-", omitEmpty: true, negated: true},
	Credit:     {name: "Credit", code: "T", omitEmpty: true},
	Payee:      {name: "Payee", code: "P"},
	Memo:       {name: "Memo", code: "M"},
	Action:     {name: "Action", code: "N"},
	Security:   {name: "Security", code: "Y"},
	Price:      {name: "Price", code: "I"},
	Quantity:   {name: "Quantity", code: "Q"},
	Commission: {name: "Commission", code: "O"},
	Cleared:    {name: "Cleared", code: "C"},
}

// Fields lists every field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, numFields)
	for f := Field(0); f < numFields; f++ {
		out = append(out, f)
	}
	return out
}

// Names lists every field name in declaration order.
func Names() []string {
	out := make([]string, 0, numFields)
	for _, f := range Fields() {
		out = append(out, f.String())
	}
	return out
}

// ParseField resolves a field name. Names are case-sensitive, as on the command line.
func ParseField(name string) (Field, error) {
	for f := Field(0); f < numFields; f++ {
		if specs[f].name == name {
			return f, nil
		}
	}
	return 0, &parsererror.ConfigError{Option: "--fieldMap", Value: name, Valid: Names()}
}

func (f Field) valid() bool {
	return f >= 0 && f < numFields
}

func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return specs[f].name
}

// Code returns the QIF line prefix of the field.
func (f Field) Code() string {
	return specs[f].code
}

// OmitEmpty reports whether an empty value suppresses the QIF line.
func (f Field) OmitEmpty() bool {
	return specs[f].omitEmpty
}

// Negated reports whether the value is written as a negative amount.
func (f Field) Negated() bool {
	return specs[f].negated
}

// IsAmount reports whether the field carries a transaction amount.
func (f Field) IsAmount() bool {
	return f == Amount || f == Debit || f == Credit
}

// Line renders one QIF line for value, or "" with ok=false when the line is omitted.
func (f Field) Line(value string) (line string, ok bool) {
	if f.OmitEmpty() && value == "" {
		return "", false
	}
	return f.Code() + value, true
}

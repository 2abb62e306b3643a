package fieldmap

import (
	"testing"

	"fjacquet/csv2qif/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchTable(t *testing.T) {
	expected := map[Field]string{
		Date: "D", Amount: "T", Debit: "T-", Credit: "T", Payee: "P", Memo: "M",
		Action: "N", Security: "Y", Price: "I", Quantity: "Q", Commission: "O", Cleared: "C",
	}
	require.Len(t, Fields(), len(expected))
	for _, f := range Fields() {
		assert.Equal(t, expected[f], f.Code(), f.String())
		assert.Equal(t, f == Debit || f == Credit, f.OmitEmpty(), f.String())
		assert.Equal(t, f == Debit, f.Negated(), f.String())
	}
}

func TestField_Line(t *testing.T) {
	line, ok := Debit.Line("67.02")
	assert.True(t, ok)
	assert.Equal(t, "T-67.02", line)

	_, ok = Debit.Line("")
	assert.False(t, ok)
	_, ok = Credit.Line("")
	assert.False(t, ok)

	line, ok = Memo.Line("")
	assert.True(t, ok)
	assert.Equal(t, "M", line)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Commission")
	require.NoError(t, err)
	assert.Equal(t, Commission, f)

	_, err = ParseField("amount")
	var ce *parsererror.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "amount", ce.Value)
	assert.Contains(t, ce.Valid, "Amount")
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in       string
		index    int
		indexed  bool
		constant string
	}{
		{"0", 0, true, ""},
		{"12", 12, true, ""},
		{"R", 0, false, "R"},
		{"-1", 0, false, "-1"},
		{"1.5", 0, false, "1.5"},
		{"", 0, false, ""},
		{"*", 0, false, "*"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			src, err := ParseSource(tt.in)
			require.NoError(t, err)
			i, ok := src.Index()
			assert.Equal(t, tt.indexed, ok)
			if ok {
				assert.Equal(t, tt.index, i)
				return
			}
			v, _ := src.Value()
			assert.Equal(t, tt.constant, v)
		})
	}
}

func TestParse(t *testing.T) {
	m, err := Parse("Date:0,Amount:3,Payee:4,Memo:5,Cleared:R")
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, "Date:0,Amount:3,Payee:4,Memo:5,Cleared:R", m.String())

	indexed, constant := m.Partition()
	require.Len(t, indexed, 4)
	require.Len(t, constant, 1)
	assert.Equal(t, Date, indexed[0].Field)
	assert.Equal(t, Memo, indexed[3].Field)
	assert.Equal(t, Cleared, constant[0].Field)

	src, ok := m.Lookup(Amount)
	require.True(t, ok)
	idx, _ := src.Index()
	assert.Equal(t, 3, idx)

	_, ok = m.Lookup(Debit)
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"missing colon", "Date0,Amount:1"},
		{"too many colons", "Date:0:1,Amount:1"},
		{"unknown field", "Date:0,Total:1"},
		{"duplicate field", "Date:0,Date:1,Amount:2"},
		{"amount with debit and credit", "Date:0,Amount:1,Debit:2,Credit:3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.spec)
			require.Error(t, err)
			assert.True(t, parsererror.IsConfigError(err), "got %T", err)
		})
	}
}

func TestValidate_AmountDebitCreditNamesTheMap(t *testing.T) {
	_, err := Parse("Date:0,Amount:1,Debit:2,Credit:3")
	var ce *parsererror.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "--fieldMap", ce.Option)
	assert.Equal(t, "Date:0,Amount:1,Debit:2,Credit:3", ce.Value)
	assert.Contains(t, err.Error(), "'Date:0,Amount:1,Debit:2,Credit:3' is an invalid value for option --fieldMap")
}

func TestValidate_AmountWithOneSideAllowed(t *testing.T) {
	_, err := Parse("Date:0,Amount:1,Debit:2")
	assert.NoError(t, err)
	_, err = Parse("Date:0,Debit:1,Credit:2")
	assert.NoError(t, err)
}

func TestNew_CopiesEntries(t *testing.T) {
	entries := []Entry{{Field: Date, Source: Column(0)}, {Field: Amount, Source: Column(1)}}
	m, err := New(entries...)
	require.NoError(t, err)
	entries[0].Field = Payee
	assert.Equal(t, Date, m.Entries()[0].Field)
}

func TestValidate_InvalidField(t *testing.T) {
	_, err := New(Entry{Field: Field(99), Source: Column(0)})
	assert.True(t, parsererror.IsConfigError(err))
	assert.Equal(t, "Field(99)", Field(99).String())
}

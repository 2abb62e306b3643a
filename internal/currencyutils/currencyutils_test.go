package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		hasError  bool
	}{
		{"Empty string", "", "0", false},
		{"Blank", "  ", "0", false},
		{"Simple decimal", "123.45", "123.45", false},
		{"Negative decimal", "-67.02", "-67.02", false},
		{"Integer", "6702", "6702", false},
		{"With comma decimal separator", "123,45", "123.45", false},
		{"With thousand separator (comma)", "1,234.56", "1234.56", false},
		{"Thousands only", "1,234", "1234", false},
		{"Several thousand groups", "1,234,567", "1234567", false},
		{"With thousand separator (apostrophe)", "1'234.56", "1234.56", false},
		{"European format", "1.234,56", "1234.56", false},
		{"Yen sign", "¥6,702", "6702", false},
		{"Full-width yen sign", "￥540", "540", false},
		{"Yen suffix", "540円", "540", false},
		{"With currency code", "CHF 123.45", "123.45", false},
		{"With spaces", "  123.45  ", "123.45", false},
		{"Malformed decimal", "123.45.67", "0", true},
		{"Non-numeric", "n/a", "0", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			expected := decimal.RequireFromString(tc.expected)
			assert.True(t, expected.Equal(result), "Expected %s but got %s", expected, result)
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	assert.Equal(t, "-1234.56", StandardizeAmount("-1.234,56 EUR"))
	assert.Equal(t, "1234.56", StandardizeAmount("$1,234.56"))
	assert.Equal(t, "12.5", StandardizeAmount("12,5"))
}

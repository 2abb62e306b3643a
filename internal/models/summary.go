// Package models holds the values reported by a conversion run.
package models

import (
	"fmt"

	"fjacquet/csv2qif/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// Summary counts what a conversion did. Net is the signed sum of all emitted
// amounts: Amount and Credit as written, Debit subtracted.
type Summary struct {
	Rows     int
	Records  int
	Skipped  int
	Net      decimal.Decimal
	Unparsed int
}

// AddAmount adds a signed amount cell to Net. Currency markers and
// thousands separators are ignored; cells that still do not parse are counted
// in Unparsed.
func (s *Summary) AddAmount(value string, negate bool) {
	d, err := currencyutils.ParseAmount(value)
	if err != nil {
		s.Unparsed++
		return
	}
	if negate {
		d = d.Neg()
	}
	s.Net = s.Net.Add(d)
}

// NetString renders Net with two decimal places.
func (s Summary) NetString() string {
	return s.Net.StringFixed(2)
}

func (s Summary) String() string {
	return fmt.Sprintf("%d CSV rows, %d QIF records, %d skipped, net %s", s.Rows, s.Records, s.Skipped, s.NetString())
}

// Merge adds the counts of other to s.
func (s *Summary) Merge(other Summary) {
	s.Rows += other.Rows
	s.Records += other.Records
	s.Skipped += other.Skipped
	s.Unparsed += other.Unparsed
	s.Net = s.Net.Add(other.Net)
}

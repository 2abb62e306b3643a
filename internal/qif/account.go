// Package qif maps parsed CSV rows to QIF records and writes them out.
package qif

import (
	"fjacquet/csv2qif/internal/parsererror"
)

// AccountType selects the QIF header "!Type:<type>".
type AccountType string

const (
	Cash  AccountType = "Cash"
	Bank  AccountType = "Bank"
	CCard AccountType = "CCard"
	Invst AccountType = "Invst"
)

// DefaultAccountType is used when no type is configured.
const DefaultAccountType = CCard

// AccountTypes lists the valid account types.
func AccountTypes() []AccountType {
	return []AccountType{Cash, Bank, CCard, Invst}
}

// ParseAccountType validates s.
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range AccountTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	valid := make([]string, 0, 4)
	for _, t := range AccountTypes() {
		valid = append(valid, string(t))
	}
	return "", &parsererror.ConfigError{Option: "--qif type", Value: s, Valid: valid}
}

// Header is the first line of a QIF file of this type.
func (t AccountType) Header() string {
	return "!Type:" + string(t)
}

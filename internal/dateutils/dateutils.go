// Package dateutils converts transaction dates between strftime-style layouts
// such as "%m/%d/%Y" or "%Y年%m月%d日", the notation used on the command line
// and in preset files.
package dateutils

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/itchyny/timefmt-go"
)

// Common layouts.
const (
	FormatISO = "%Y-%m-%d"
	FormatUS  = "%m/%d/%Y"
	FormatEU  = "%d.%m.%Y"
)

// DefaultFormat is used on both sides when nothing else is configured.
const DefaultFormat = FormatISO

// ErrOutOfRange is returned for dates that exist only after rolling over
// into the next month, such as February 30.
var ErrOutOfRange = errors.New("day is out of range for month")

// Parse reads value according to the strftime layout format.
func Parse(value, format string) (time.Time, error) {
	t, err := timefmt.Parse(value, format)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q does not match format %q: %w", value, format, err)
	}
	// time.Date normalises overflowing fields, so 2019-02-30 comes back as
	// March 2. Such values no longer format back to what was read.
	if canonical(timefmt.Format(t, format)) != canonical(value) {
		return time.Time{}, fmt.Errorf("date %q does not match format %q: %w", value, format, ErrOutOfRange)
	}
	return t, nil
}

// canonical lower-cases s, drops whitespace and strips leading zeros from
// every run of digits, so "1/5/2019" and "01/05/2019" compare equal.
func canonical(s string) string {
	var b strings.Builder
	inRun, zeros := false, false
	for _, r := range strings.ToLower(s) {
		if r >= '0' && r <= '9' {
			if !inRun {
				inRun, zeros = true, true
			}
			if zeros && r == '0' {
				continue
			}
			zeros = false
			b.WriteRune(r)
			continue
		}
		if inRun && zeros {
			b.WriteByte('0')
		}
		inRun = false
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	if inRun && zeros {
		b.WriteByte('0')
	}
	return b.String()
}

// Format renders t with the strftime layout format.
func Format(t time.Time, format string) string {
	return timefmt.Format(t, format)
}

// Reformat rewrites value from layout from to layout to. Equal layouts return
// value untouched, even when it would not parse.
func Reformat(value, from, to string) (string, error) {
	if from == to {
		return value, nil
	}
	t, err := Parse(value, from)
	if err != nil {
		return "", err
	}
	return Format(t, to), nil
}

// ValidateFormat rejects layouts that carry no directive at all, which would
// turn every date into the same literal string.
func ValidateFormat(format string) error {
	if strings.TrimSpace(format) == "" {
		return fmt.Errorf("date format is empty")
	}
	if !strings.Contains(strings.ReplaceAll(format, "%%", ""), "%") {
		return fmt.Errorf("date format %q has no %% directive", format)
	}
	return nil
}

// Package parsererror defines the error types surfaced by a conversion run:
// configuration errors detected before any row is read, parse errors tied to
// an input position, and I/O errors wrapping the underlying system error.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError reports an invalid option value together with the accepted ones.
type ConfigError struct {
	Option string
	Value  string
	Valid  []string
	Reason string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Value != "" || e.Option != "" {
		fmt.Fprintf(&b, "'%s' is an invalid value for option %s", e.Value, e.Option)
	}
	if e.Reason != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Reason)
	}
	if len(e.Valid) > 0 {
		fmt.Fprintf(&b, "\nValid values: %s", strings.Join(e.Valid, ", "))
	}
	return b.String()
}

// ParseError represents a failure to interpret one input row.
type ParseError struct {
	Parser string
	Line   int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Parser
	if e.Line > 0 {
		where = fmt.Sprintf("%s: row %d", e.Parser, e.Line)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", where, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v", where, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError wraps a failure to open, read, decode, encode or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err carries a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsParseError reports whether err carries a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsIOError reports whether err carries an *IOError.
func IsIOError(err error) bool {
	var ie *IOError
	return errors.As(err, &ie)
}

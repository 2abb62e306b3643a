// Package window selects the contiguous range of input lines that is handed to
// the CSV parser, dropping statement headers and footers.
package window

import (
	"strconv"
	"strings"

	"fjacquet/csv2qif/internal/parsererror"
)

// Window keeps lines [Start, Stop) of the input. A nil Stop keeps everything
// after Start; a negative Stop counts back from the end of the input.
type Window struct {
	Start int
	Stop  *int
}

// All is the window that keeps every line.
var All = Window{}

// Between returns the window [start, stop).
func Between(start, stop int) Window {
	return Window{Start: start, Stop: &stop}
}

// From returns the window [start, end of input).
func From(start int) Window {
	return Window{Start: start}
}

// Parse reads "START:STOP" where either side may be blank. A step
// ("START:STOP:STEP") is not supported and is rejected.
func Parse(spec string) (Window, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return All, nil
	}
	parts := strings.Split(spec, ":")
	if len(parts) > 3 {
		return Window{}, invalid(spec, "expected START:STOP")
	}
	if len(parts) == 3 && parts[2] != "" {
		return Window{}, invalid(spec, "slice=START:STOP:STEP (step is not implemented)")
	}

	if len(parts) == 1 {
		// A lone number is a stop, like a one-argument slice.
		stop, err := strconv.Atoi(parts[0])
		if err != nil {
			return Window{}, invalid(spec, "STOP is not an integer")
		}
		return Between(0, stop), nil
	}

	start := 0
	if parts[0] != "" {
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return Window{}, invalid(spec, "START is not an integer")
		}
		if n < 0 {
			return Window{}, invalid(spec, "START must not be negative")
		}
		start = n
	}
	if parts[1] == "" {
		return From(start), nil
	}
	stop, err := strconv.Atoi(parts[1])
	if err != nil {
		return Window{}, invalid(spec, "STOP is not an integer")
	}
	return Between(start, stop), nil
}

func invalid(spec, reason string) error {
	return &parsererror.ConfigError{Option: "--csv slice", Value: spec, Reason: reason}
}

// Empty reports whether the window can never select a line.
func (w Window) Empty() bool {
	return w.Stop != nil && (*w.Stop == 0 || (*w.Stop > 0 && *w.Stop <= w.Start))
}

func (w Window) String() string {
	var b strings.Builder
	if w.Start != 0 {
		b.WriteString(strconv.Itoa(w.Start))
	}
	b.WriteByte(':')
	if w.Stop != nil {
		b.WriteString(strconv.Itoa(*w.Stop))
	}
	return b.String()
}

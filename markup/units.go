package markup

import (
	"strconv"
	"strings"
)

// Unit is the unit suffix of a numeric tag value.
type Unit uint8

const (
	// Pixels is the default unit ("px" or no suffix).
	Pixels Unit = iota
	// FontUnits is relative to the current font size ("em").
	FontUnits
	// Percentage is relative to a tag-specific reference ("%").
	Percentage
)

// String returns the unit suffix.
func (u Unit) String() string {
	switch u {
	case FontUnits:
		return "em"
	case Percentage:
		return "%"
	default:
		return "px"
	}
}

// Value is a parsed numeric tag value.
type Value struct {
	Number float64
	Unit   Unit

	// Relative is set when the value carried an explicit sign, as in
	// <size=+2>, meaning "relative to the current value".
	Relative bool
}

// ParseValue parses a numeric value with an optional px, em or % suffix.
func ParseValue(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	var v Value
	switch {
	case strings.HasSuffix(s, "em"):
		v.Unit, s = FontUnits, s[:len(s)-2]
	case strings.HasSuffix(s, "%"):
		v.Unit, s = Percentage, s[:len(s)-1]
	case strings.HasSuffix(s, "px"):
		s = s[:len(s)-2]
	}
	if s == "" {
		return Value{}, false
	}
	v.Relative = s[0] == '+' || s[0] == '-'
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, false
	}
	v.Number = n
	return v, true
}

// Pixels converts v to pixels. fontSize is the em reference and
// percentOf the reference for percentages.
func (v Value) Pixels(fontSize, percentOf float64) float64 {
	switch v.Unit {
	case FontUnits:
		return v.Number * fontSize
	case Percentage:
		return v.Number / 100 * percentOf
	default:
		return v.Number
	}
}

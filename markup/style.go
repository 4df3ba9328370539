package markup

import "strings"

// StyleFlags is a set of text styles.
type StyleFlags uint16

const (
	Bold StyleFlags = 1 << iota
	Italic
	Underline
	Strikethrough
	Highlight
	Superscript
	Subscript
	Uppercase
	Lowercase
	SmallCaps

	numStyles = iota
)

// Has reports whether all flags in f are set.
func (s StyleFlags) Has(f StyleFlags) bool {
	return s&f == f
}

var styleNames = [numStyles]string{
	"Bold", "Italic", "Underline", "Strikethrough", "Highlight",
	"Superscript", "Subscript", "Uppercase", "Lowercase", "SmallCaps",
}

// String returns the flags joined with "|".
func (s StyleFlags) String() string {
	if s == 0 {
		return "Normal"
	}
	var parts []string
	for i, name := range styleNames {
		if s&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// StyleStack counts nested openings per style. A style is active while
// its count is positive, so <b><b>x</b>y</b> keeps "y" bold.
type StyleStack struct {
	base   StyleFlags
	counts [numStyles]uint8
}

// Flags returns the active styles.
func (s *StyleStack) Flags() StyleFlags {
	f := s.base
	for i, c := range s.counts {
		if c > 0 {
			f |= 1 << i
		}
	}
	return f
}

// Add opens every style in f.
func (s *StyleStack) Add(f StyleFlags) {
	for i := range s.counts {
		if f&(1<<i) != 0 && s.counts[i] < 255 {
			s.counts[i]++
		}
	}
}

// Remove closes every style in f. It reports false if any of them was
// not open; those are left unchanged.
func (s *StyleStack) Remove(f StyleFlags) bool {
	ok := true
	for i := range s.counts {
		if f&(1<<i) == 0 {
			continue
		}
		if s.counts[i] == 0 {
			ok = false
			continue
		}
		s.counts[i]--
	}
	return ok
}

// Depth returns the total number of open style frames.
func (s *StyleStack) Depth() int {
	n := 0
	for _, c := range s.counts {
		n += int(c)
	}
	return n
}

// Reset closes everything and sets the always-on base styles.
func (s *StyleStack) Reset(base StyleFlags) {
	s.base = base
	s.counts = [numStyles]uint8{}
}

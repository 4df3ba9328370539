package markup

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SmallCapsScale is the size factor applied to lowercase letters under
// the smallcaps style.
const SmallCapsScale = 0.8

// Casing applies the uppercase, lowercase and smallcaps styles using
// language-aware case mappings. A Casing is not safe for concurrent use.
type Casing struct {
	upper cases.Caser
	lower cases.Caser

	upperCache map[rune]rune
	lowerCache map[rune]rune
}

// NewCasing returns a Casing for the given language tag. The zero tag
// uses root mappings.
func NewCasing(tag language.Tag) *Casing {
	return &Casing{
		upper:      cases.Upper(tag),
		lower:      cases.Lower(tag),
		upperCache: make(map[rune]rune),
		lowerCache: make(map[rune]rune),
	}
}

// Apply maps r according to the active styles. small reports that the
// character should be drawn at SmallCapsScale.
func (c *Casing) Apply(r rune, styles StyleFlags) (out rune, small bool) {
	switch {
	case styles.Has(Uppercase):
		return c.toUpper(r), false
	case styles.Has(Lowercase):
		return c.toLower(r), false
	case styles.Has(SmallCaps):
		if unicode.IsLower(r) {
			return c.toUpper(r), true
		}
	}
	return r, false
}

func (c *Casing) toUpper(r rune) rune {
	if v, ok := c.upperCache[r]; ok {
		return v
	}
	v := single(c.upper.String(string(r)), unicode.ToUpper(r))
	c.upperCache[r] = v
	return v
}

func (c *Casing) toLower(r rune) rune {
	if v, ok := c.lowerCache[r]; ok {
		return v
	}
	v := single(c.lower.String(string(r)), unicode.ToLower(r))
	c.lowerCache[r] = v
	return v
}

// single returns the only rune of s, or fallback when the mapping
// expanded to several runes (as with German sharp s).
func single(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return fallback
	}
	return r
}

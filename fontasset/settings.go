package fontasset

import "github.com/gogpu/textmesh"

// DefaultMissingGlyph is the substitute codepoint shown for unresolvable characters.
const DefaultMissingGlyph = '□' // white square

// Settings holds the global part of the character lookup cascade.
type Settings struct {
	// Fallbacks are searched after the primary asset's own chain.
	Fallbacks []*Asset

	// Default is searched after the global fallbacks.
	Default *Asset

	// MissingGlyph is looked up when a codepoint cannot be resolved
	// anywhere. Zero selects DefaultMissingGlyph.
	MissingGlyph rune

	// Sprites is the sprite asset used when a <sprite> tag names none.
	Sprites *SpriteAsset
}

// Lookup resolves r starting at primary and returns the character and the
// asset that holds it. The returned character's Codepoint differs from r
// when the missing-glyph or space substitute was used.
func (s *Settings) Lookup(primary *Asset, r rune) (*Character, *Asset, bool) {
	if c, a, ok := s.cascade(primary, r); ok {
		return c, a, true
	}

	var missing rune
	if s != nil {
		missing = s.MissingGlyph
	}
	if missing == 0 {
		missing = DefaultMissingGlyph
	}
	textmesh.Logger().Debug("fontasset: substituting missing character",
		"codepoint", r, "substitute", missing)
	if c, a, ok := s.cascade(primary, missing); ok {
		return c, a, true
	}
	return s.cascade(primary, ' ')
}

// cascade searches primary's chain, then the global fallbacks, then the
// default asset. One visited set spans the whole search so each asset is
// queried at most once.
func (s *Settings) cascade(primary *Asset, r rune) (*Character, *Asset, bool) {
	visited := make(map[*Asset]bool)
	if c, a, ok := search(primary, r, visited); ok {
		return c, a, true
	}
	if s == nil {
		return nil, nil, false
	}
	for _, fb := range s.Fallbacks {
		if c, a, ok := search(fb, r, visited); ok {
			return c, a, true
		}
	}
	return search(s.Default, r, visited)
}

// search is a depth-first walk of an asset's fallback chain.
func search(a *Asset, r rune, visited map[*Asset]bool) (*Character, *Asset, bool) {
	if a == nil || visited[a] {
		return nil, nil, false
	}
	visited[a] = true
	if c, err := a.RequestGlyph(r); err == nil {
		return c, a, true
	}
	for _, fb := range a.Fallbacks() {
		if c, found, ok := search(fb, r, visited); ok {
			return c, found, true
		}
	}
	return nil, nil, false
}

// Package fontasset implements the character and glyph cache that sits
// between layout and the glyph atlas.
//
// An [Asset] wraps a typeface provider, an atlas allocator and a rasterizer.
// Characters map codepoints to glyphs (many to one); glyphs are packed into
// the atlas the first time they are requested. Each asset carries a kerning
// table and an ordered fallback chain.
//
// [Settings] holds the global side of the lookup cascade: global fallbacks,
// a default asset and the missing-glyph substitute. [Settings.Lookup] walks
//
//	primary -> primary fallbacks (depth-first) -> global fallbacks ->
//	default asset -> missing-glyph codepoint -> space
//
// and stops at the first level that resolves the codepoint. Fallback
// graphs may contain cycles; a visited set keyed by asset identity bounds
// the search.
//
// Asset methods are safe for concurrent use; each asset serializes access
// to its tables and atlas with one mutex.
package fontasset

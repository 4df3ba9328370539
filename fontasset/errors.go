package fontasset

import "errors"

var (
	// ErrNilProvider is returned when an asset is created without a typeface provider.
	ErrNilProvider = errors.New("fontasset: nil typeface provider")

	// ErrGlyphNotFound is returned when the typeface has no glyph for a codepoint.
	ErrGlyphNotFound = errors.New("fontasset: glyph not found")
)

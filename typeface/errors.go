package typeface

import "errors"

var (
	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("typeface: invalid font data")

	// ErrInvalidSize is returned when a point size is not positive.
	ErrInvalidSize = errors.New("typeface: point size must be positive")

	// ErrNoOutline is returned by rasterizers for glyphs without an outline.
	ErrNoOutline = errors.New("typeface: glyph has no outline")

	// ErrTargetTooSmall is returned when the destination rectangle cannot hold the glyph.
	ErrTargetTooSmall = errors.New("typeface: target rectangle too small for glyph")
)

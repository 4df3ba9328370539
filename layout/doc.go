// Package layout turns marked-up text into positioned character quads.
//
// Generate runs the layout engine over a string: rich-text tags are
// interpreted by the markup package, characters are resolved through the
// font asset fallback cascade, and lines are wrapped, aligned and
// decorated inside the configured container. The result is a TextInfo
// holding per-character, per-line, per-word and per-page records plus
// vertex buffers bucketed by asset, material and atlas page.
//
// # Passes
//
// A layout may need more than one pass. Auto-sizing searches the font
// size between Config.FontSizeMin and Config.FontSizeMax, and the
// ellipsis overflow mode regenerates the text once it knows where the
// ellipsis goes. Retries run as an explicit loop capped by
// Config.MaxPasses; TextInfo.Passes reports how many ran.
//
// # Coordinates
//
// Positions are in container pixels with the origin at the top-left
// corner and y pointing down. Font metrics and glyph bearings are y-up
// and are converted during layout.
package layout

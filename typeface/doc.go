// Package typeface defines the contracts the layout core needs from a font
// and ships default implementations over real font files.
//
// A [Provider] exposes face-level vertical metrics ([FaceInfo]) and per-glyph
// outline metrics ([GlyphMetrics]). A [Rasterizer] turns a glyph into pixels
// inside an atlas rectangle. A [Kerner] reports pair adjustments.
//
// [SFNT] implements Provider and Kerner over golang.org/x/image/font/sfnt
// (TrueType and OpenType fonts, kerning from the legacy kern table).
// [VectorRasterizer] renders sfnt outlines with golang.org/x/image/vector.
// [GPOSKerner] extracts GPOS pair positioning through the go-text HarfBuzz
// shaper, for fonts that carry no kern table.
//
// All metrics are in pixels at the provider's sampling point size. Face
// metrics use a y-up convention relative to the baseline (ascent positive,
// descent negative); glyph bearings follow the same convention.
package typeface

package fontasset

import (
	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/typeface"
)

// Glyph is a typeface glyph together with its atlas placement.
type Glyph struct {
	// Index is the glyph index within the typeface.
	Index uint32

	// Metrics are in pixels at the asset's sampling point size.
	Metrics typeface.GlyphMetrics

	// Region is the glyph's atlas rectangle. It is empty for glyphs
	// without ink, which never consume atlas space.
	Region atlas.Region

	// Scale is the glyph's scale relative to the face.
	Scale float64
}

// Page returns the index of the atlas page holding the glyph.
func (g *Glyph) Page() int {
	return g.Region.Page
}

// Character maps one codepoint to a glyph.
type Character struct {
	Codepoint rune
	Glyph     *Glyph
	Scale     float64
}

// controlCharacters are synthesized with zero-size glyphs when an asset is created.
var controlCharacters = []rune{
	'\t',
	'\n',
	'\r',
	'\u200B', // zero width space
	'\u200D', // zero width joiner
}

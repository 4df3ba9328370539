// Package testfont provides deterministic in-memory typeface providers for
// tests that need exact, font-independent metrics.
package testfont

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/textmesh/typeface"
)

// Monospace is a typeface.Provider where every covered codepoint has the
// same advance and ink box. Glyph indices are codepoint+1 so that index 0
// stays reserved for absent glyphs.
type Monospace struct {
	Info typeface.FaceInfo

	// Advance of every glyph.
	Advance float64

	// GlyphWidth and GlyphHeight of the ink box; the box sits on the baseline.
	GlyphWidth, GlyphHeight float64

	// Covers reports whether the face has a glyph for r. Nil covers every
	// codepoint except those in Blank, which have no ink.
	Covers func(r rune) bool

	// Blank codepoints have an advance but no ink.
	Blank map[rune]bool

	// Kerning maps typeface.PairKey values to adjustments.
	Kerning map[uint64]typeface.PairAdjustment

	// Rasterized counts Rasterize calls.
	Rasterized int
}

// New returns a monospace face with advance 10, an 8x8 ink box, a line of
// ascent 8 and descent -2, and blank space characters.
func New() *Monospace {
	return &Monospace{
		Info: typeface.FaceInfo{
			FamilyName:             "Mono",
			StyleName:              "Regular",
			PointSize:              10,
			Scale:                  1,
			UnitsPerEm:             1000,
			LineHeight:             10,
			AscentLine:             8,
			CapLine:                7,
			MeanLine:               5,
			DescentLine:            -2,
			SuperscriptOffset:      4,
			SuperscriptSize:        0.5,
			SubscriptOffset:        -1,
			SubscriptSize:          0.5,
			UnderlineOffset:        -1,
			UnderlineThickness:     0.5,
			StrikethroughOffset:    3,
			StrikethroughThickness: 0.5,
			TabWidth:               40,
		},
		Advance:     10,
		GlyphWidth:  8,
		GlyphHeight: 8,
		Blank: map[rune]bool{
			' ':      true,
			'\u00A0': true,
			'\u3000': true,
		},
	}
}

// Only restricts coverage to the given codepoints (plus blanks).
func (m *Monospace) Only(rs ...rune) *Monospace {
	set := make(map[rune]bool, len(rs))
	for _, r := range rs {
		set[r] = true
	}
	m.Covers = func(r rune) bool { return set[r] || m.Blank[r] }
	return m
}

// FaceInfo implements typeface.Provider.
func (m *Monospace) FaceInfo() typeface.FaceInfo { return m.Info }

// GlyphIndex implements typeface.Provider.
func (m *Monospace) GlyphIndex(r rune) uint32 {
	if m.Covers != nil && !m.Covers(r) {
		return 0
	}
	return uint32(r) + 1
}

// GlyphMetrics implements typeface.Provider.
func (m *Monospace) GlyphMetrics(index uint32) (typeface.GlyphMetrics, bool) {
	if index == 0 {
		return typeface.GlyphMetrics{}, false
	}
	if m.Blank[rune(index-1)] {
		return typeface.GlyphMetrics{Advance: m.Advance}, true
	}
	return typeface.GlyphMetrics{
		Width:    m.GlyphWidth,
		Height:   m.GlyphHeight,
		BearingX: (m.Advance - m.GlyphWidth) / 2,
		BearingY: m.GlyphHeight,
		Advance:  m.Advance,
	}, true
}

// Kern implements typeface.Kerner.
func (m *Monospace) Kern(first, second rune) (typeface.PairAdjustment, bool) {
	adj, ok := m.Kerning[typeface.PairKey(first, second)]
	return adj, ok
}

// Rasterize implements typeface.Rasterizer by filling the target.
func (m *Monospace) Rasterize(_ uint32, dst draw.Image, r image.Rectangle, _ typeface.RenderMode) error {
	m.Rasterized++
	draw.Draw(dst, r, image.Opaque, image.Point{}, draw.Src)
	return nil
}

package typeface

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNT is a Provider and Kerner backed by a TrueType or OpenType font parsed
// with golang.org/x/image/font/sfnt.
//
// SFNT is safe for concurrent use: the sfnt scratch buffer is guarded.
type SFNT struct {
	font *opentype.Font
	data []byte
	cfg  sfntConfig
	ppem fixed.Int26_6
	info FaceInfo

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewSFNT parses font data and samples its metrics at the configured point size.
func NewSFNT(data []byte, opts ...Option) (*SFNT, error) {
	cfg := defaultSFNTConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.pointSize > 0) {
		return nil, ErrInvalidSize
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}

	s := &SFNT{
		font: f,
		data: data,
		cfg:  cfg,
		ppem: floatToFixed(cfg.pointSize),
	}
	if err := s.loadFaceInfo(); err != nil {
		return nil, err
	}
	return s, nil
}

// Data returns the raw font bytes the provider was created from.
func (s *SFNT) Data() []byte {
	return s.data
}

// PointSize returns the sampling point size.
func (s *SFNT) PointSize() float64 {
	return s.cfg.pointSize
}

// NumGlyphs returns the number of glyphs in the font.
func (s *SFNT) NumGlyphs() int {
	return s.font.NumGlyphs()
}

// FaceInfo implements Provider.
func (s *SFNT) FaceInfo() FaceInfo {
	return s.info
}

// GlyphIndex implements Provider.
func (s *SFNT) GlyphIndex(r rune) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil {
		return 0
	}
	return uint32(idx)
}

// GlyphMetrics implements Provider.
//
// The ink box is snapped outward to whole pixels so that it matches the
// coverage produced by VectorRasterizer.
func (s *SFNT) GlyphMetrics(index uint32) (GlyphMetrics, bool) {
	if index >= uint32(s.font.NumGlyphs()) {
		return GlyphMetrics{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bounds, advance, err := s.font.GlyphBounds(&s.buf, sfnt.GlyphIndex(index), s.ppem, s.cfg.hinting)
	if err != nil {
		return GlyphMetrics{}, false
	}
	return metricsFromBounds(bounds, advance), true
}

// Kern implements Kerner using the font's kern table.
func (s *SFNT) Kern(first, second rune) (PairAdjustment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g0, err := s.font.GlyphIndex(&s.buf, first)
	if err != nil || g0 == 0 {
		return PairAdjustment{}, false
	}
	g1, err := s.font.GlyphIndex(&s.buf, second)
	if err != nil || g1 == 0 {
		return PairAdjustment{}, false
	}
	k, err := s.font.Kern(&s.buf, g0, g1, s.ppem, s.cfg.hinting)
	if err != nil || k == 0 {
		return PairAdjustment{}, false
	}
	return PairAdjustment{First: Adjustment{XAdvance: fixedToFloat(k)}}, true
}

// withSegments loads the outline of a glyph at the sampling size and passes
// it to fn. The segments alias the provider's buffer and are only valid
// inside fn.
func (s *SFNT) withSegments(index uint32, hinting font.Hinting, fn func(sfnt.Segments, fixed.Rectangle26_6) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	gi := sfnt.GlyphIndex(index)
	bounds, _, err := s.font.GlyphBounds(&s.buf, gi, s.ppem, hinting)
	if err != nil {
		return err
	}
	segs, err := s.font.LoadGlyph(&s.buf, gi, s.ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrNotFound) {
			return ErrNoOutline
		}
		return err
	}
	return fn(segs, bounds)
}

func (s *SFNT) loadFaceInfo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.font.Metrics(&s.buf, s.ppem, s.cfg.hinting)
	if err != nil {
		return fmt.Errorf("typeface: reading metrics: %w", err)
	}

	size := s.cfg.pointSize
	upem := int(s.font.UnitsPerEm())
	ascent := fixedToFloat(m.Ascent)
	descent := -fixedToFloat(m.Descent)

	info := FaceInfo{
		PointSize:   size,
		Scale:       1,
		UnitsPerEm:  upem,
		LineHeight:  fixedToFloat(m.Height),
		AscentLine:  ascent,
		CapLine:     fixedToFloat(m.CapHeight),
		MeanLine:    fixedToFloat(m.XHeight),
		DescentLine: descent,

		SuperscriptOffset: ascent * 0.5,
		SuperscriptSize:   0.5,
		SubscriptOffset:   descent * 0.5,
		SubscriptSize:     0.5,
	}
	if info.CapLine == 0 {
		info.CapLine = ascent * 0.7
	}
	if info.MeanLine == 0 {
		info.MeanLine = ascent * 0.5
	}

	info.FamilyName, _ = s.font.Name(&s.buf, sfnt.NameIDFamily)
	info.StyleName, _ = s.font.Name(&s.buf, sfnt.NameIDSubfamily)

	unitScale := size / float64(max(upem, 1))
	if post := s.font.PostTable(); post != nil && post.UnderlineThickness > 0 {
		info.UnderlineOffset = float64(post.UnderlinePosition) * unitScale
		info.UnderlineThickness = float64(post.UnderlineThickness) * unitScale
	} else {
		info.UnderlineOffset = -0.1 * size
		info.UnderlineThickness = 0.05 * size
	}
	info.StrikethroughOffset = info.AscentLine / 2.5
	info.StrikethroughThickness = info.UnderlineThickness

	if gi, err := s.font.GlyphIndex(&s.buf, ' '); err == nil && gi != 0 {
		if adv, err := s.font.GlyphAdvance(&s.buf, gi, s.ppem, s.cfg.hinting); err == nil {
			info.TabWidth = fixedToFloat(adv) * float64(s.cfg.tabStops)
		}
	}
	if info.TabWidth == 0 {
		info.TabWidth = size * 0.25 * float64(s.cfg.tabStops)
	}

	s.info = info.Normalize()
	return nil
}

// metricsFromBounds converts y-down sfnt bounds into y-up glyph metrics,
// snapping the ink box outward to whole pixels.
func metricsFromBounds(b fixed.Rectangle26_6, advance fixed.Int26_6) GlyphMetrics {
	gm := GlyphMetrics{Advance: fixedToFloat(advance)}
	if b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y {
		return gm
	}
	minX := math.Floor(fixedToFloat(b.Min.X))
	minY := math.Floor(fixedToFloat(b.Min.Y))
	maxX := math.Ceil(fixedToFloat(b.Max.X))
	maxY := math.Ceil(fixedToFloat(b.Max.Y))

	gm.Width = maxX - minX
	gm.Height = maxY - minY
	gm.BearingX = minX
	gm.BearingY = -minY
	return gm
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

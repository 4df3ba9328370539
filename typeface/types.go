package typeface

import (
	"image"

	"golang.org/x/image/draw"
)

// FaceInfo holds the face-level metrics of a typeface sampled at PointSize.
//
// Vertical lines are measured from the baseline with y pointing up, so
// AscentLine is positive and DescentLine is negative.
type FaceInfo struct {
	FamilyName string
	StyleName  string

	// PointSize is the size, in pixels per em, at which metrics were sampled.
	PointSize float64

	// Scale is the relative scale applied to every glyph of the face.
	Scale float64

	UnitsPerEm int

	LineHeight  float64
	AscentLine  float64
	CapLine     float64
	MeanLine    float64
	Baseline    float64
	DescentLine float64

	SuperscriptOffset float64
	SuperscriptSize   float64
	SubscriptOffset   float64
	SubscriptSize     float64

	UnderlineOffset        float64
	UnderlineThickness     float64
	StrikethroughOffset    float64
	StrikethroughThickness float64

	// TabWidth is the width of one tab stop unit.
	TabWidth float64
}

// Normalize fixes up values that would break layout arithmetic.
// A zero Scale becomes 1; zero sub/superscript sizes get conventional defaults.
func (fi FaceInfo) Normalize() FaceInfo {
	if fi.Scale == 0 {
		fi.Scale = 1
	}
	if fi.SuperscriptSize == 0 {
		fi.SuperscriptSize = 0.5
	}
	if fi.SubscriptSize == 0 {
		fi.SubscriptSize = 0.5
	}
	if fi.LineHeight == 0 {
		fi.LineHeight = fi.AscentLine - fi.DescentLine
	}
	return fi
}

// GlyphMetrics describes one glyph outline in pixels at the face point size.
//
// The glyph box spans [BearingX, BearingX+Width] horizontally and
// [BearingY-Height, BearingY] vertically, relative to the pen position on
// the baseline (y up).
type GlyphMetrics struct {
	Width    float64
	Height   float64
	BearingX float64
	BearingY float64
	Advance  float64
}

// IsEmpty reports whether the glyph has no ink (whitespace, control glyphs).
func (m GlyphMetrics) IsEmpty() bool {
	return m.Width <= 0 || m.Height <= 0
}

// Provider is the typeface metrics collaborator used by font assets.
//
// Implementations must be safe for use by one goroutine at a time;
// font assets serialize access.
type Provider interface {
	// FaceInfo returns the face-level metrics.
	FaceInfo() FaceInfo

	// GlyphIndex returns the glyph index for r, or 0 if the face has no glyph for it.
	GlyphIndex(r rune) uint32

	// GlyphMetrics returns the metrics of the glyph with the given index.
	GlyphMetrics(index uint32) (GlyphMetrics, bool)
}

// Adjustment is a positional delta applied to one member of a kerning pair.
type Adjustment struct {
	XPlacement float64
	YPlacement float64
	XAdvance   float64
	YAdvance   float64
}

// IsZero reports whether the adjustment has no effect.
func (a Adjustment) IsZero() bool {
	return a == Adjustment{}
}

// PairAdjustment holds the adjustments for an ordered pair of glyphs.
// First applies when the pair's first member is being placed, Second when
// the second member is.
type PairAdjustment struct {
	First  Adjustment
	Second Adjustment
}

// Kerner reports pair adjustments between two codepoints.
type Kerner interface {
	// Kern returns the adjustment for the ordered pair, and false when the
	// face defines none.
	Kern(first, second rune) (PairAdjustment, bool)
}

// RenderMode selects how a rasterizer produces coverage.
type RenderMode uint8

const (
	// RenderSmooth produces anti-aliased coverage from unhinted outlines.
	RenderSmooth RenderMode = iota

	// RenderHinted produces anti-aliased coverage from hinted outlines.
	RenderHinted

	// RenderMono produces 1-bit coverage (0 or 255).
	RenderMono
)

// String returns the render mode name.
func (m RenderMode) String() string {
	switch m {
	case RenderSmooth:
		return "Smooth"
	case RenderHinted:
		return "Hinted"
	case RenderMono:
		return "Mono"
	default:
		return "Unknown"
	}
}

// Rasterizer renders glyphs into an atlas surface.
type Rasterizer interface {
	// Rasterize draws the glyph with the given index into r of dst. The
	// glyph's ink box is aligned with r.Min.
	Rasterize(index uint32, dst draw.Image, r image.Rectangle, mode RenderMode) error
}

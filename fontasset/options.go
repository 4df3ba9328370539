package fontasset

import (
	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/typeface"
)

// StyleSettings controls emulated styles for faces without real variants.
type StyleSettings struct {
	// NormalWeight and BoldWeight are extra style padding, in em/100, added
	// around quads so shaders can dilate the glyph.
	NormalWeight float64
	BoldWeight   float64

	// NormalSpacing and BoldSpacing are extra advance, in em/100.
	NormalSpacing float64
	BoldSpacing   float64

	// ItalicSlant is the emulated italic shear, in percent of the glyph height.
	ItalicSlant float64
}

// DefaultStyleSettings returns the default emulation parameters.
func DefaultStyleSettings() StyleSettings {
	return StyleSettings{
		NormalWeight:  0,
		BoldWeight:    0.75,
		NormalSpacing: 0,
		BoldSpacing:   7,
		ItalicSlant:   35,
	}
}

// Option configures an Asset.
type Option func(*assetConfig)

type assetConfig struct {
	name       string
	atlas      atlas.Config
	allocator  *atlas.Allocator
	rasterizer typeface.Rasterizer
	kerner     typeface.Kerner
	renderMode typeface.RenderMode
	material   *Material
	fallbacks  []*Asset
	weights    map[weightKey]*Asset
	style      StyleSettings
}

type weightKey struct {
	weight int
	italic bool
}

func defaultAssetConfig() assetConfig {
	return assetConfig{
		atlas:      atlas.DefaultConfig(),
		renderMode: typeface.RenderSmooth,
		weights:    make(map[weightKey]*Asset),
		style:      DefaultStyleSettings(),
	}
}

// WithName sets the asset name used by resolvers and diagnostics.
func WithName(name string) Option {
	return func(c *assetConfig) {
		c.name = name
	}
}

// WithAtlas sets the configuration of the asset's own atlas allocator.
func WithAtlas(cfg atlas.Config) Option {
	return func(c *assetConfig) {
		c.atlas = cfg
	}
}

// WithAllocator makes the asset pack into an existing allocator, which
// callers may share between assets. The caller then owns serialization
// across those assets.
func WithAllocator(a *atlas.Allocator) Option {
	return func(c *assetConfig) {
		c.allocator = a
	}
}

// WithPadding sets the padding of the asset's own atlas.
func WithPadding(n int) Option {
	return func(c *assetConfig) {
		c.atlas.Padding = n
	}
}

// WithRasterizer sets the glyph rasterizer. When unset and the provider
// is a *typeface.SFNT, a typeface.VectorRasterizer is used.
func WithRasterizer(r typeface.Rasterizer) Option {
	return func(c *assetConfig) {
		c.rasterizer = r
	}
}

// WithKerner sets the source of kerning pairs. When unset and the provider
// implements typeface.Kerner, the provider is used.
func WithKerner(k typeface.Kerner) Option {
	return func(c *assetConfig) {
		c.kerner = k
	}
}

// WithRenderMode sets the rasterization mode.
func WithRenderMode(m typeface.RenderMode) Option {
	return func(c *assetConfig) {
		c.renderMode = m
	}
}

// WithMaterial sets the default material.
func WithMaterial(m *Material) Option {
	return func(c *assetConfig) {
		c.material = m
	}
}

// WithFallbacks appends assets to the fallback chain.
func WithFallbacks(assets ...*Asset) Option {
	return func(c *assetConfig) {
		c.fallbacks = append(c.fallbacks, assets...)
	}
}

// WithWeight registers the upright variant for a font weight (100..900).
func WithWeight(weight int, a *Asset) Option {
	return func(c *assetConfig) {
		c.weights[weightKey{weight: roundWeight(weight)}] = a
	}
}

// WithItalicWeight registers the italic variant for a font weight.
func WithItalicWeight(weight int, a *Asset) Option {
	return func(c *assetConfig) {
		c.weights[weightKey{weight: roundWeight(weight), italic: true}] = a
	}
}

// WithStyle sets the style emulation parameters.
func WithStyle(s StyleSettings) Option {
	return func(c *assetConfig) {
		c.style = s
	}
}

func roundWeight(w int) int {
	w = (w + 50) / 100 * 100
	return min(max(w, 100), 900)
}

package typeface

import "golang.org/x/image/font"

// Option configures an SFNT provider.
type Option func(*sfntConfig)

type sfntConfig struct {
	pointSize float64
	hinting   font.Hinting
	tabStops  int
}

func defaultSFNTConfig() sfntConfig {
	return sfntConfig{
		pointSize: 90,
		hinting:   font.HintingNone,
		tabStops:  4,
	}
}

// WithPointSize sets the sampling point size (pixels per em) of the face.
// Atlas glyphs are rasterized at this size; layout scales from it.
func WithPointSize(size float64) Option {
	return func(c *sfntConfig) {
		c.pointSize = size
	}
}

// WithHinting sets the hinting used for metrics and advances.
func WithHinting(h font.Hinting) Option {
	return func(c *sfntConfig) {
		c.hinting = h
	}
}

// WithTabStops sets how many space advances make one tab width.
func WithTabStops(n int) Option {
	return func(c *sfntConfig) {
		if n > 0 {
			c.tabStops = n
		}
	}
}

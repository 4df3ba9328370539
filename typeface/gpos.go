package typeface

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textmesh/internal/cache"
)

// defaultPairCacheLimit bounds the number of memoized pair queries per face.
const defaultPairCacheLimit = 4096

// GPOSKerner extracts pair positioning from the GPOS table (and the legacy
// kern table when present) by shaping codepoint pairs with the go-text
// HarfBuzz port and comparing against the isolated glyph advances.
//
// Results are memoized per ordered pair. GPOSKerner is safe for concurrent use.
type GPOSKerner struct {
	font   *font.Font
	size   fixed.Int26_6
	shaper shaping.HarfbuzzShaper
	pairs  *cache.Cache[uint64, pairResult]
}

type pairResult struct {
	adj PairAdjustment
	ok  bool
}

// NewGPOSKerner parses data with go-text and reports adjustments in pixels
// at pointSize. cacheLimit bounds the memoized pairs; 0 selects a default.
func NewGPOSKerner(data []byte, pointSize float64, cacheLimit int) (*GPOSKerner, error) {
	if !(pointSize > 0) {
		return nil, ErrInvalidSize
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	if cacheLimit <= 0 {
		cacheLimit = defaultPairCacheLimit
	}
	return &GPOSKerner{
		font:  face.Font,
		size:  floatToFixed(pointSize),
		pairs: cache.New[uint64, pairResult](cacheLimit),
	}, nil
}

// Kern implements Kerner.
func (k *GPOSKerner) Kern(first, second rune) (PairAdjustment, bool) {
	// GetOrCreate runs the shaping under the cache lock, which also
	// serializes use of the shaper.
	r := k.pairs.GetOrCreate(PairKey(first, second), func() pairResult {
		return k.shapePair(first, second)
	})
	return r.adj, r.ok
}

// CacheStats reports memoization statistics.
func (k *GPOSKerner) CacheStats() cache.Stats {
	return k.pairs.Stats()
}

func (k *GPOSKerner) shapePair(first, second rune) pairResult {
	pair := k.shape([]rune{first, second})
	if len(pair) != 2 || pair[0].GlyphID == 0 || pair[1].GlyphID == 0 {
		// Missing glyphs or a ligature: nothing to kern.
		return pairResult{}
	}
	a := k.shape([]rune{first})
	b := k.shape([]rune{second})
	if len(a) != 1 || len(b) != 1 {
		return pairResult{}
	}

	adj := PairAdjustment{
		First: Adjustment{
			XPlacement: fixedToFloat(pair[0].XOffset - a[0].XOffset),
			YPlacement: fixedToFloat(pair[0].YOffset - a[0].YOffset),
			XAdvance:   fixedToFloat(pair[0].Advance - a[0].Advance),
		},
		Second: Adjustment{
			XPlacement: fixedToFloat(pair[1].XOffset - b[0].XOffset),
			YPlacement: fixedToFloat(pair[1].YOffset - b[0].YOffset),
			XAdvance:   fixedToFloat(pair[1].Advance - b[0].Advance),
		},
	}
	if adj.First.IsZero() && adj.Second.IsZero() {
		return pairResult{}
	}
	return pairResult{adj: adj, ok: true}
}

func (k *GPOSKerner) shape(runes []rune) []shaping.Glyph {
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(k.font),
		Size:      k.size,
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}
	return k.shaper.Shape(input).Glyphs
}

// PairKey packs an ordered codepoint pair into one integer key.
func PairKey(first, second rune) uint64 {
	return uint64(uint32(first))<<32 | uint64(uint32(second))
}

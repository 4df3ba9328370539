package fontasset

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/typeface"
)

// Asset is a font asset: a typeface with its character table, glyph table,
// atlas and kerning table.
type Asset struct {
	name       string
	provider   typeface.Provider
	info       typeface.FaceInfo
	rasterizer typeface.Rasterizer
	renderMode typeface.RenderMode
	material   *Material
	style      StyleSettings
	kerning    *KerningTable
	weights    map[weightKey]*Asset

	mu         sync.Mutex
	atlas      *atlas.Allocator
	characters map[rune]*Character
	glyphs     map[uint32]*Glyph
	absent     map[rune]struct{}
	fallbacks  []*Asset
}

// New creates a font asset over provider.
func New(provider typeface.Provider, opts ...Option) (*Asset, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	cfg := defaultAssetConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	alloc := cfg.allocator
	if alloc == nil {
		var err error
		alloc, err = atlas.New(cfg.atlas)
		if err != nil {
			return nil, fmt.Errorf("fontasset: %w", err)
		}
	}

	info := provider.FaceInfo().Normalize()
	if cfg.name == "" {
		cfg.name = info.FamilyName
		if info.StyleName != "" {
			cfg.name += " " + info.StyleName
		}
	}
	if cfg.rasterizer == nil {
		if s, ok := provider.(*typeface.SFNT); ok {
			cfg.rasterizer = typeface.NewVectorRasterizer(s)
		}
	}
	if cfg.kerner == nil {
		if k, ok := provider.(typeface.Kerner); ok {
			cfg.kerner = k
		}
	}
	if cfg.material == nil {
		cfg.material = NewMaterial(cfg.name + " Material")
	}

	a := &Asset{
		name:       cfg.name,
		provider:   provider,
		info:       info,
		rasterizer: cfg.rasterizer,
		renderMode: cfg.renderMode,
		material:   cfg.material,
		style:      cfg.style,
		kerning:    NewKerningTable(cfg.kerner),
		weights:    cfg.weights,
		atlas:      alloc,
		characters: make(map[rune]*Character),
		glyphs:     make(map[uint32]*Glyph),
		absent:     make(map[rune]struct{}),
		fallbacks:  cfg.fallbacks,
	}
	a.addControlCharacters()
	return a, nil
}

// Name returns the asset name.
func (a *Asset) Name() string { return a.name }

// FaceInfo returns the normalized face metrics.
func (a *Asset) FaceInfo() typeface.FaceInfo { return a.info }

// Provider returns the typeface provider.
func (a *Asset) Provider() typeface.Provider { return a.provider }

// Material returns the default material.
func (a *Asset) Material() *Material { return a.material }

// Style returns the style emulation settings.
func (a *Asset) Style() StyleSettings { return a.style }

// Kerning returns the kerning table.
func (a *Asset) Kerning() *KerningTable { return a.kerning }

// Atlas returns the allocator holding the asset's glyphs.
func (a *Asset) Atlas() *atlas.Allocator { return a.atlas }

// Padding returns the atlas padding around each glyph.
func (a *Asset) Padding() int { return a.atlas.Config().Padding }

// Fallbacks returns a copy of the fallback chain.
func (a *Asset) Fallbacks() []*Asset {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Asset(nil), a.fallbacks...)
}

// AddFallback appends f to the fallback chain. Cycles are allowed.
func (a *Asset) AddFallback(f *Asset) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fallbacks = append(a.fallbacks, f)
}

// WeightVariant returns the asset registered for a weight (rounded to the
// nearest hundred) and slant.
func (a *Asset) WeightVariant(weight int, italic bool) (*Asset, bool) {
	v, ok := a.weights[weightKey{weight: roundWeight(weight), italic: italic}]
	return v, ok && v != nil
}

// CharacterCount returns the number of cached characters.
func (a *Asset) CharacterCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.characters)
}

// GlyphCount returns the number of cached glyphs.
func (a *Asset) GlyphCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.glyphs)
}

// Cached returns the character for r if it is already in the table.
func (a *Asset) Cached(r rune) (*Character, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.characters[r]
	return c, ok
}

// Lookup returns the character for r, adding it on a miss. It reports
// false when the face has no glyph for r or the glyph cannot be packed.
func (a *Asset) Lookup(r rune) (*Character, bool) {
	c, err := a.RequestGlyph(r)
	return c, err == nil
}

// RequestGlyph returns the character for r, resolving, packing and
// rasterizing its glyph on a cache miss.
//
// Errors are ErrGlyphNotFound when the face lacks the codepoint, and
// *atlas.FullError (or atlas.ErrTooLarge) when the glyph cannot be packed.
func (a *Asset) RequestGlyph(r rune) (*Character, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.characters[r]; ok {
		return c, nil
	}
	if _, ok := a.absent[r]; ok {
		return nil, fmt.Errorf("%w: %U in %q", ErrGlyphNotFound, r, a.name)
	}

	index := a.provider.GlyphIndex(r)
	if index == 0 {
		a.absent[r] = struct{}{}
		return nil, fmt.Errorf("%w: %U in %q", ErrGlyphNotFound, r, a.name)
	}
	g, err := a.glyphLocked(index)
	if err != nil {
		return nil, err
	}
	return a.addCharacterLocked(r, g), nil
}

// TryAddCharacters adds every codepoint of rs to the asset, packing the new
// glyphs as one batch with the contact-point rule. It returns the
// codepoints that could not be added; err is non-nil when any of them
// failed for lack of atlas space.
func (a *Asset) TryAddCharacters(rs []rune) (missing []rune, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	type pending struct {
		index   uint32
		metrics typeface.GlyphMetrics
		runes   []rune
	}
	var (
		batch   []*pending
		byIndex = make(map[uint32]*pending)
		seen    = make(map[rune]bool)
	)
	for _, r := range rs {
		if seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := a.characters[r]; ok {
			continue
		}
		index := a.provider.GlyphIndex(r)
		if index == 0 {
			a.absent[r] = struct{}{}
			missing = append(missing, r)
			continue
		}
		if g, ok := a.glyphs[index]; ok {
			a.addCharacterLocked(r, g)
			continue
		}
		if p, ok := byIndex[index]; ok {
			p.runes = append(p.runes, r)
			continue
		}
		m, ok := a.provider.GlyphMetrics(index)
		if !ok {
			missing = append(missing, r)
			continue
		}
		if m.IsEmpty() {
			a.addCharacterLocked(r, a.addGlyphLocked(index, m, atlas.Region{}))
			continue
		}
		p := &pending{index: index, metrics: m, runes: []rune{r}}
		byIndex[index] = p
		batch = append(batch, p)
	}
	if len(batch) == 0 {
		return missing, nil
	}

	sizes := make([]atlas.Size, len(batch))
	for i, p := range batch {
		sizes[i] = atlas.Size{W: pixelSize(p.metrics.Width), H: pixelSize(p.metrics.Height)}
	}
	regions, err := a.atlas.AllocateBatch(sizes)
	for i, p := range batch {
		if regions[i].Empty() {
			missing = append(missing, p.runes...)
			continue
		}
		g := a.addGlyphLocked(p.index, p.metrics, regions[i])
		a.rasterizeLocked(g)
		for _, r := range p.runes {
			a.addCharacterLocked(r, g)
		}
	}
	if err != nil {
		return missing, fmt.Errorf("fontasset: adding characters to %q: %w", a.name, err)
	}
	return missing, nil
}

// Clear drops all characters and glyphs and resets the atlas.
// Control characters are synthesized again.
func (a *Asset) Clear() {
	a.mu.Lock()
	a.characters = make(map[rune]*Character)
	a.glyphs = make(map[uint32]*Glyph)
	a.absent = make(map[rune]struct{})
	a.atlas.Reset()
	a.mu.Unlock()
	a.addControlCharacters()
}

// glyphLocked returns the glyph with the given index, packing it on a miss.
func (a *Asset) glyphLocked(index uint32) (*Glyph, error) {
	if g, ok := a.glyphs[index]; ok {
		return g, nil
	}
	m, ok := a.provider.GlyphMetrics(index)
	if !ok {
		return nil, fmt.Errorf("%w: no metrics for glyph %d in %q", ErrGlyphNotFound, index, a.name)
	}
	if m.IsEmpty() {
		return a.addGlyphLocked(index, m, atlas.Region{}), nil
	}

	region, err := a.atlas.Allocate(pixelSize(m.Width), pixelSize(m.Height))
	if err != nil {
		var full *atlas.FullError
		if errors.As(err, &full) {
			textmesh.Logger().Debug("fontasset: atlas exhausted",
				"asset", a.name, "glyph", index, "pages", full.Pages)
		}
		return nil, fmt.Errorf("fontasset: packing glyph %d of %q: %w", index, a.name, err)
	}
	g := a.addGlyphLocked(index, m, region)
	a.rasterizeLocked(g)
	return g, nil
}

// rasterizeLocked renders g into a scratch mask and blits it onto its page.
// Failures leave the region blank; the glyph stays usable for layout.
func (a *Asset) rasterizeLocked(g *Glyph) {
	if a.rasterizer == nil || g.Region.Empty() {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, g.Region.Width, g.Region.Height))
	if err := a.rasterizer.Rasterize(g.Index, mask, mask.Bounds(), a.renderMode); err != nil {
		textmesh.Logger().Warn("fontasset: rasterization failed",
			"asset", a.name, "glyph", g.Index, "err", err)
		return
	}
	if p := a.atlas.Page(g.Region.Page); p != nil {
		p.Blit(g.Region, mask, image.Point{})
	}
}

func (a *Asset) addGlyphLocked(index uint32, m typeface.GlyphMetrics, r atlas.Region) *Glyph {
	g := &Glyph{Index: index, Metrics: m, Region: r, Scale: 1}
	a.glyphs[index] = g
	return g
}

func (a *Asset) addCharacterLocked(r rune, g *Glyph) *Character {
	c := &Character{Codepoint: r, Glyph: g, Scale: 1}
	a.characters[r] = c
	delete(a.absent, r)
	return c
}

// addControlCharacters registers zero-size glyphs for control characters.
// They share one empty glyph that is not part of the glyph table.
func (a *Asset) addControlCharacters() {
	a.mu.Lock()
	defer a.mu.Unlock()

	empty := &Glyph{Scale: 1}
	for _, r := range controlCharacters {
		a.characters[r] = &Character{Codepoint: r, Glyph: empty, Scale: 1}
	}
}

func pixelSize(v float64) int {
	return int(math.Ceil(v))
}

package layout

import (
	"math"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/markup"
	"github.com/gogpu/textmesh/typeface"
)

// objectReplacement stands in for sprites in the character stream.
const objectReplacement = '\uFFFC'

// element is a character record built at the pen position but not yet
// committed to the line.
type element struct {
	info CharacterInfo
	// inkRight is the right edge of the glyph box without style padding.
	inkRight float64
	gap      float64
}

// fontRun resolves the asset, material and emulation flags for the
// current state.
type fontRun struct {
	asset    *fontasset.Asset
	material *fontasset.Material
	styles   markup.StyleFlags
	weight   int
	size     float64
	emBold   bool
	emItalic bool
}

func (p *pass) currentFont() fontRun {
	st := p.in.State
	ref := st.Font.Current()
	fr := fontRun{
		asset:    ref.Asset,
		material: ref.Material,
		styles:   st.Styles.Flags(),
		weight:   st.FontWeight.Current(),
		size:     st.FontSize(),
	}
	if fr.asset == nil {
		fr.asset = p.cfg.Font
	}
	if fr.material == nil {
		fr.material = fr.asset.Material()
	}
	italic := fr.styles.Has(markup.Italic)
	fr.emBold = fr.weight >= 600 || fr.styles.Has(markup.Bold)
	fr.emItalic = italic
	if fr.weight != 400 || italic {
		if v, ok := fr.asset.WeightVariant(fr.weight, italic); ok {
			fr.swap(v)
			fr.emBold, fr.emItalic = false, false
		} else if italic && fr.weight != 400 {
			if v, ok := fr.asset.WeightVariant(fr.weight, false); ok {
				fr.swap(v)
				fr.emBold = false
			}
		}
	}
	return fr
}

// swap replaces the asset, keeping an explicitly chosen material.
func (fr *fontRun) swap(a *fontasset.Asset) {
	if fr.material == fr.asset.Material() {
		fr.material = a.Material()
	}
	fr.asset = a
}

// faceScale returns the pixel scale of fi at size.
func faceScale(fi typeface.FaceInfo, size float64) float64 {
	if fi.PointSize <= 0 {
		return fi.Scale
	}
	return size / fi.PointSize * fi.Scale
}

// buildChar builds the element for r at the pen position. i is the text
// index r was read from.
func (p *pass) buildChar(i int, r rune) element {
	st := p.in.State
	cfg := p.cfg
	fr := p.currentFont()

	cr, small := p.g.casing.Apply(r, fr.styles)
	size := fr.size
	if small {
		size *= markup.SmallCapsScale
	}

	info := CharacterInfo{
		Char:               cr,
		Kind:               ElementCharacter,
		Index:              i,
		Source:             p.source(i),
		Asset:              fr.asset,
		Material:           fr.material,
		PointSize:          size,
		Styles:             fr.styles,
		Weight:             fr.weight,
		Origin:             p.x,
		XAdvance:           p.x,
		Visible:            true,
		Alignment:          st.Justification.Current(),
		Color:              st.Color.Current(),
		Gradient:           st.Gradient.Current(),
		UnderlineColor:     st.UnderlineColor.Current(),
		StrikethroughColor: st.StrikethroughColor.Current(),
		HighlightColor:     st.HighlightColor.Current(),
		Link:               st.Links.Current(),
	}
	baseY := -st.Baseline()

	holder := fr.asset
	var ch *fontasset.Character
	if !isControl(cr) && cr != '\n' {
		c, h, ok := cfg.Settings.Lookup(fr.asset, cr)
		if ok {
			ch, holder = c, h
			if holder != fr.asset {
				info.Material = holder.Material()
			}
		}
	}
	info.Asset = holder

	fi := holder.FaceInfo()
	fontScale := faceScale(fi, size)
	info.Scale = fontScale
	info.Baseline = baseY
	info.Ascender = baseY - fi.AscentLine*fontScale
	info.Descender = baseY - fi.DescentLine*fontScale
	el := element{
		gap:      max(fi.LineHeight-(fi.AscentLine-fi.DescentLine), 0) * fontScale,
		inkRight: p.x,
	}

	switch {
	case cr == '\t':
		tab := fi.TabWidth * fontScale
		if tab <= 0 {
			tab = 4 * size
		}
		info.XAdvance = (math.Floor(p.x/tab+epsilon) + 1) * tab
		el.info = info
		return el
	case ch == nil:
		el.info = info
		return el
	}

	scale := fontScale * ch.Scale * ch.Glyph.Scale
	if ch.Scale == 0 || ch.Glyph.Scale == 0 {
		scale = fontScale
	}
	info.Scale = scale
	info.Glyph = ch.Glyph
	m := ch.Glyph.Metrics
	style := holder.Style()
	hScale := st.Scale.Current()

	var before, after typeface.PairAdjustment
	if cfg.Kerning {
		if k := holder.Kerning(); k != nil {
			if p.prev != 0 && p.prevAsset == holder {
				before, _ = k.Lookup(p.prev, cr)
			}
			if next, ok := p.peek(i); ok {
				nr, _ := p.g.casing.Apply(next, fr.styles)
				after, _ = k.Lookup(cr, nr)
			}
		}
	}

	spacing := cfg.CharacterSpacing/100*size + st.CharacterSpacing
	if fr.emBold {
		spacing += style.BoldSpacing / 100 * size
	} else {
		spacing += style.NormalSpacing / 100 * size
	}
	if isSpace(cr) {
		spacing += cfg.WordSpacing / 100 * size
	}

	advance := m.Advance * scale * hScale
	placeX := (before.Second.XPlacement + after.First.XPlacement) * scale
	placeY := before.Second.YPlacement * scale
	if mono := st.Monospace; mono > 0 {
		placeX += (mono - advance) / 2
		advance = mono
	}
	advance += (before.Second.XAdvance+after.First.XAdvance)*scale + spacing
	info.XAdvance = p.x + advance

	if m.IsEmpty() || isSpace(cr) {
		el.info = info
		return el
	}

	weight := style.NormalWeight
	if fr.emBold {
		weight = style.BoldWeight
	}
	pad := weight / 100 * size

	left := p.x + placeX + m.BearingX*scale*hScale
	top := baseY - placeY - m.BearingY*scale
	w := m.Width * scale * hScale
	h := m.Height * scale
	el.inkRight = left + w

	tl := textmesh.Pt(left-pad, top-pad)
	tr := textmesh.Pt(left+w+pad, top-pad)
	bl := textmesh.Pt(left-pad, top+h+pad)
	br := textmesh.Pt(left+w+pad, top+h+pad)
	if fr.emItalic {
		slant := style.ItalicSlant / 100
		shear := func(pt textmesh.Point) textmesh.Point {
			pt.X += slant * (baseY - pt.Y)
			return pt
		}
		tl, tr, bl, br = shear(tl), shear(tr), shear(bl), shear(br)
		info.Styles |= markup.Italic
	}
	if deg := st.Rotation.Current(); deg != 0 {
		center := tl.Lerp(br, 0.5)
		rot := textmesh.Rotate(deg * math.Pi / 180).About(center)
		tl, tr, bl, br = rot.TransformPoint(tl), rot.TransformPoint(tr), rot.TransformPoint(bl), rot.TransformPoint(br)
	}
	if fr.emBold {
		info.Styles |= markup.Bold
	}
	info.TopLeft, info.TopRight, info.BottomLeft, info.BottomRight = tl, tr, bl, br
	info.UV = paddedUV(ch.Glyph, pad/scale)
	info.Ink = true
	el.info = info
	return el
}

// paddedUV returns the glyph's atlas rectangle grown by pad atlas pixels.
func paddedUV(g *fontasset.Glyph, pad float64) [4]float32 {
	r := g.Region
	uv := [4]float32{r.U0, r.V0, r.U1, r.V1}
	if pad == 0 || r.Width == 0 || r.Height == 0 {
		return uv
	}
	du := float32(pad) * (r.U1 - r.U0) / float32(r.Width)
	dv := float32(pad) * (r.V1 - r.V0) / float32(r.Height)
	return [4]float32{r.U0 - du, r.V0 - dv, r.U1 + du, r.V1 + dv}
}

// peek returns the character after text[i] when it is plain text.
func (p *pass) peek(i int) (rune, bool) {
	text := p.g.text
	if i < 0 || i+1 >= len(text) {
		return 0, false
	}
	r := text[i+1]
	if r == '<' && p.cfg.RichText {
		return 0, false
	}
	return r, true
}

// buildSprite builds the element for an inline sprite. Sprites are scaled
// so the sheet ascent matches the current font's ascent.
func (p *pass) buildSprite(i int, e markup.Effect) (element, bool) {
	sp, ok := e.Sprite.Sprite(e.SpriteIndex)
	if !ok {
		return element{}, false
	}
	st := p.in.State
	fr := p.currentFont()
	fi := fr.asset.FaceInfo()
	fontScale := faceScale(fi, fr.size)
	scale := fontScale * sp.Scale
	if a := e.Sprite.Ascent; a > 0 {
		scale = fi.AscentLine * fontScale / a * sp.Scale
	}

	color := textmesh.White
	if e.Tint {
		color = st.Color.Current()
	}
	if e.HasColor {
		color = e.Color
	}
	char := sp.Unicode
	if char == 0 {
		char = objectReplacement
	}

	baseY := -st.Baseline()
	left := p.x + sp.BearingX*scale
	top := baseY - sp.BearingY*scale
	w := float64(sp.Rect.W) * scale
	h := float64(sp.Rect.H) * scale
	advance := sp.Advance * scale
	if advance == 0 {
		advance = w
	}
	advance += p.cfg.CharacterSpacing/100*fr.size + st.CharacterSpacing

	u0, v0, u1, v1 := e.Sprite.UV(e.SpriteIndex)
	info := CharacterInfo{
		Char:               char,
		Kind:               ElementSprite,
		Index:              i,
		Source:             p.source(i),
		Asset:              fr.asset,
		Material:           e.Sprite.Material,
		Sprite:             e.Sprite,
		SpriteIndex:        e.SpriteIndex,
		PointSize:          fr.size,
		Scale:              scale,
		Styles:             fr.styles,
		Weight:             fr.weight,
		TopLeft:            textmesh.Pt(left, top),
		TopRight:           textmesh.Pt(left+w, top),
		BottomLeft:         textmesh.Pt(left, top+h),
		BottomRight:        textmesh.Pt(left+w, top+h),
		Origin:             p.x,
		XAdvance:           p.x + advance,
		Baseline:           baseY,
		Ascender:           min(baseY-fi.AscentLine*fontScale, top),
		Descender:          max(baseY-fi.DescentLine*fontScale, top+h),
		Visible:            true,
		Ink:                w > 0 && h > 0,
		Alignment:          st.Justification.Current(),
		Color:              color,
		UnderlineColor:     st.UnderlineColor.Current(),
		StrikethroughColor: st.StrikethroughColor.Current(),
		HighlightColor:     st.HighlightColor.Current(),
		Link:               st.Links.Current(),
		UV:                 [4]float32{u0, v0, u1, v1},
	}
	return element{info: info, inkRight: left + w}, true
}

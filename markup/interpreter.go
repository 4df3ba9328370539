package markup

import (
	"math"
	"strconv"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
)

// EffectKind identifies a one-shot layout effect produced by a tag.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	// EffectSpace advances the pen by Amount.
	EffectSpace
	// EffectPosition moves the pen to Amount from the line start.
	EffectPosition
	// EffectIndent moves the pen to the new indentation Amount.
	EffectIndent
	// EffectSprite inserts an inline sprite.
	EffectSprite
	// EffectPageBreak forces a new page.
	EffectPageBreak
)

// Effect is a layout action requested by the last consumed tag.
type Effect struct {
	Kind   EffectKind
	Amount float64

	Sprite      *fontasset.SpriteAsset
	SpriteIndex int
	// Tint multiplies the sprite by the current color.
	Tint bool
	// Color overrides the sprite vertex color when HasColor is set.
	Color    textmesh.RGBA
	HasColor bool
}

// Interpreter applies tags to an InterpreterState.
type Interpreter struct {
	State    *InterpreterState
	Defaults Defaults

	// Resolver supplies fonts, materials, sprites and, when it also
	// implements fontasset.GradientResolver, gradients. Nil resolves nothing.
	Resolver fontasset.Resolver

	// Sprites is the sprite asset used when a sprite tag names none.
	Sprites *fontasset.SpriteAsset

	// MarginWidth is the reference for percentage values.
	MarginWidth float64

	// ReportUnbalanced logs closing tags that had nothing to close.
	ReportUnbalanced bool

	effect Effect
}

// NewInterpreter returns an interpreter with a fresh state.
func NewInterpreter(d Defaults, resolver fontasset.Resolver) *Interpreter {
	return &Interpreter{
		State:    NewInterpreterState(d),
		Defaults: d,
		Resolver: resolver,
	}
}

// TakeEffect returns and clears the effect of the last consumed tag.
func (in *Interpreter) TakeEffect() Effect {
	e := in.effect
	in.effect = Effect{}
	return e
}

// Apply interprets the tag starting at text[start] ('<'). When the tag is
// consumed it returns true and the index of its closing '>'; otherwise
// the caller treats text[start] as a literal character.
func (in *Interpreter) Apply(text []rune, start int) (consumed bool, end int) {
	tag, end, ok := ParseTag(text, start)
	if !ok {
		return false, start
	}
	if in.State.NoParse && !(tag.Closing && tag.NameHash == Hash("noparse")) {
		return false, start
	}

	in.effect = Effect{}
	if tag.Name[0] == '#' {
		if tag.Closing {
			pop(in, &in.State.Color, tag)
			return true, end
		}
		c, ok := textmesh.ParseHex(tag.Name)
		if !ok {
			return false, start
		}
		in.State.Color.Push(c)
		return true, end
	}

	id, known := tagIDs[tag.NameHash]
	if !known {
		return false, start
	}
	if tag.Closing {
		if !in.close(id, tag) {
			return false, start
		}
		return true, end
	}
	if !in.open(id, &tag) {
		return false, start
	}
	return true, end
}

func (in *Interpreter) open(id tagID, tag *Tag) bool {
	s := in.State
	switch id {
	case tagBold:
		s.Styles.Add(Bold)
		s.FontWeight.Push(700)
	case tagItalic:
		s.Styles.Add(Italic)
	case tagUnderline:
		s.Styles.Add(Underline)
		s.UnderlineColor.Push(in.attrColor(tag))
	case tagStrikethrough:
		s.Styles.Add(Strikethrough)
		s.StrikethroughColor.Push(in.attrColor(tag))
	case tagMark:
		c := defaultHighlight
		if tag.HasValue {
			var ok bool
			if c, ok = textmesh.ParseColor(tag.Value); !ok {
				return false
			}
		}
		s.Styles.Add(Highlight)
		s.HighlightColor.Push(c)
	case tagSuperscript, tagSubscript:
		in.openScript(id)
	case tagColor:
		c, ok := textmesh.ParseColor(tag.Value)
		if !tag.HasValue || !ok {
			return false
		}
		s.Color.Push(c)
	case tagAlpha:
		a, ok := parseAlpha(tag.Value)
		if !ok {
			return false
		}
		s.Color.Push(s.Color.Current().WithAlpha(a))
	case tagSize:
		v, ok := ParseValue(tag.Value)
		if !ok {
			return false
		}
		base := in.Defaults.Size
		size := v.Pixels(base, base)
		if v.Relative {
			size = s.Size.Current() + size
		}
		if size <= 0 {
			return false
		}
		s.Size.Push(size)
	case tagFont:
		return in.openFont(tag)
	case tagMaterial:
		cur := s.Font.Current()
		if tag.ValueHash == valueDefault && cur.Asset != nil {
			s.Font.Push(FontRef{Asset: cur.Asset, Material: cur.Asset.Material()})
			return true
		}
		m, ok := in.resolveMaterial(tag.Value)
		if !ok {
			return false
		}
		s.Font.Push(FontRef{Asset: cur.Asset, Material: m})
	case tagSprite:
		return in.openSprite(tag)
	case tagPos, tagSpace:
		px, ok := in.pixels(tag)
		if !ok {
			return false
		}
		kind := EffectSpace
		if id == tagPos {
			kind = EffectPosition
		}
		in.effect = Effect{Kind: kind, Amount: px}
	case tagIndent:
		px, ok := in.pixels(tag)
		if !ok {
			return false
		}
		s.Indent.Push(px)
		in.effect = Effect{Kind: EffectIndent, Amount: px}
	case tagLineIndent:
		return in.setScalar(&s.LineIndent, tag)
	case tagMargin:
		px, ok := in.pixels(tag)
		if !ok {
			return false
		}
		s.MarginLeft, s.MarginRight = px, px
	case tagMarginLeft:
		return in.setScalar(&s.MarginLeft, tag)
	case tagMarginRight:
		return in.setScalar(&s.MarginRight, tag)
	case tagAlign:
		a, ok := ParseAlignment(tag.Value)
		if !ok {
			return false
		}
		s.Justification.Push(a)
	case tagUppercase, tagAllCaps:
		s.Styles.Add(Uppercase)
	case tagLowercase:
		s.Styles.Add(Lowercase)
	case tagSmallCaps:
		s.Styles.Add(SmallCaps)
	case tagCSpace:
		return in.setScalar(&s.CharacterSpacing, tag)
	case tagMSpace:
		return in.setScalar(&s.Monospace, tag)
	case tagVOffset:
		return in.setScalar(&s.VOffset, tag)
	case tagLineHeight:
		// Percentages are of the font size here, not the margin width.
		px, ok := in.pixelsOf(tag, s.FontSize())
		if !ok {
			return false
		}
		s.LineHeight, s.HasLineHeight = px, true
	case tagWidth:
		return in.setScalar(&s.Width, tag)
	case tagNoBreak:
		s.NoBreak = true
	case tagNoParse:
		s.NoParse = true
	case tagPage:
		in.effect = Effect{Kind: EffectPageBreak}
	case tagRotate:
		deg, err := strconv.ParseFloat(tag.Value, 64)
		if err != nil {
			return false
		}
		s.Rotation.Push(deg)
	case tagScale:
		f, err := strconv.ParseFloat(tag.Value, 64)
		if err != nil || f <= 0 {
			return false
		}
		s.Scale.Push(f)
	case tagGradient:
		gr, ok := in.Resolver.(fontasset.GradientResolver)
		if !ok || !tag.HasValue {
			return false
		}
		g, ok := gr.ResolveGradient(tag.Value)
		if !ok {
			return false
		}
		s.Gradient.Push(&g)
	case tagLink:
		if !tag.HasValue {
			return false
		}
		s.Links.Push(tag.Value)
	case tagAction:
		if !tag.HasValue {
			return false
		}
		s.Actions.Push(tag.ValueHash)
	case tagFontWeight:
		w, err := strconv.Atoi(tag.Value)
		if err != nil || w < 1 || w > 1000 {
			return false
		}
		s.FontWeight.Push(w)
	default:
		// style and substitution tags are rewritten by Expand; seeing one
		// here means it could not be resolved.
		return false
	}
	return true
}

func (in *Interpreter) close(id tagID, tag Tag) bool {
	s := in.State
	switch id {
	case tagBold:
		if s.Styles.Remove(Bold) {
			s.FontWeight.Pop()
		} else {
			in.unbalanced(tag)
		}
	case tagItalic:
		in.removeStyle(Italic, tag)
	case tagUnderline:
		if s.Styles.Remove(Underline) {
			s.UnderlineColor.Pop()
		} else {
			in.unbalanced(tag)
		}
	case tagStrikethrough:
		if s.Styles.Remove(Strikethrough) {
			s.StrikethroughColor.Pop()
		} else {
			in.unbalanced(tag)
		}
	case tagMark:
		if s.Styles.Remove(Highlight) {
			s.HighlightColor.Pop()
		} else {
			in.unbalanced(tag)
		}
	case tagSuperscript, tagSubscript:
		in.closeScript(id, tag)
	case tagColor, tagAlpha:
		pop(in, &s.Color, tag)
	case tagSize:
		pop(in, &s.Size, tag)
	case tagFont, tagMaterial:
		pop(in, &s.Font, tag)
	case tagIndent:
		pop(in, &s.Indent, tag)
	case tagLineIndent:
		s.LineIndent = 0
	case tagMargin:
		s.MarginLeft, s.MarginRight = 0, 0
	case tagMarginLeft:
		s.MarginLeft = 0
	case tagMarginRight:
		s.MarginRight = 0
	case tagAlign:
		pop(in, &s.Justification, tag)
	case tagUppercase, tagAllCaps:
		in.removeStyle(Uppercase, tag)
	case tagLowercase:
		in.removeStyle(Lowercase, tag)
	case tagSmallCaps:
		in.removeStyle(SmallCaps, tag)
	case tagCSpace:
		s.CharacterSpacing = 0
	case tagMSpace:
		s.Monospace = 0
	case tagVOffset:
		s.VOffset = 0
	case tagLineHeight:
		s.LineHeight, s.HasLineHeight = 0, false
	case tagWidth:
		s.Width = 0
	case tagNoBreak:
		s.NoBreak = false
	case tagNoParse:
		s.NoParse = false
	case tagRotate:
		pop(in, &s.Rotation, tag)
	case tagScale:
		pop(in, &s.Scale, tag)
	case tagGradient:
		pop(in, &s.Gradient, tag)
	case tagLink:
		pop(in, &s.Links, tag)
	case tagAction:
		pop(in, &s.Actions, tag)
	case tagFontWeight:
		pop(in, &s.FontWeight, tag)
	default:
		return false
	}
	return true
}

// openScript scales the font and raises or lowers the baseline.
func (in *Interpreter) openScript(id tagID) {
	s := in.State
	size, offset := in.scriptMetrics(id)
	s.FontScaleMultiplier *= size
	s.BaselineOffset.Push(s.BaselineOffset.Current() + offset)
	if id == tagSuperscript {
		s.Styles.Add(Superscript)
	} else {
		s.Styles.Add(Subscript)
	}
}

// closeScript undoes openScript only while the multiplier is still
// below 1, so a stray closing tag cannot pop a baseline it never pushed.
func (in *Interpreter) closeScript(id tagID, tag Tag) {
	s := in.State
	flag := Superscript
	if id == tagSubscript {
		flag = Subscript
	}
	if s.FontScaleMultiplier >= 1 || !s.Styles.Flags().Has(flag) {
		in.unbalanced(tag)
		return
	}
	size, _ := in.scriptMetrics(id)
	s.FontScaleMultiplier /= size
	if math.Abs(s.FontScaleMultiplier-1) < 1e-9 {
		s.FontScaleMultiplier = 1
	}
	s.BaselineOffset.Pop()
	s.Styles.Remove(flag)
}

// scriptMetrics returns the size factor and baseline offset (in pixels at
// the current font size) for a sub/superscript tag.
func (in *Interpreter) scriptMetrics(id tagID) (size, offset float64) {
	fontSize := in.State.FontSize()
	size, offset = 0.5, 0.33*fontSize
	if id == tagSubscript {
		offset = -0.15 * fontSize
	}
	if a := in.State.Font.Current().Asset; a != nil {
		fi := a.FaceInfo()
		k := 1.0
		if fi.PointSize > 0 {
			k = fontSize / fi.PointSize
		}
		if id == tagSuperscript {
			size, offset = fi.SuperscriptSize, fi.SuperscriptOffset*k
		} else {
			size, offset = fi.SubscriptSize, fi.SubscriptOffset*k
		}
	}
	if size <= 0 || size > 1 {
		size = 0.5
	}
	return size, offset
}

func (in *Interpreter) openFont(tag *Tag) bool {
	s := in.State
	if !tag.HasValue {
		return false
	}
	var ref FontRef
	if tag.ValueHash == valueDefault {
		ref = in.Defaults.Font
	} else {
		if in.Resolver == nil {
			return false
		}
		a, ok := in.Resolver.ResolveFont(tag.Value)
		if !ok || a == nil {
			return false
		}
		ref = FontRef{Asset: a, Material: a.Material()}
	}
	if name, ok := tag.Attr(attrMaterial); ok {
		m, ok := in.resolveMaterial(name)
		if !ok {
			return false
		}
		ref.Material = m
	}
	s.Font.Push(ref)
	return true
}

func (in *Interpreter) openSprite(tag *Tag) bool {
	asset := in.Sprites
	index := -1
	if tag.HasValue {
		if n, err := strconv.Atoi(tag.Value); err == nil {
			index = n
		} else {
			if in.Resolver == nil {
				return false
			}
			a, ok := in.Resolver.ResolveSprite(tag.Value)
			if !ok {
				return false
			}
			asset = a
		}
	}
	if asset == nil {
		return false
	}
	if v, ok := tag.Attr(attrIndex); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return false
		}
		index = n
	}
	if name, ok := tag.Attr(attrName); ok {
		i, holder, found := asset.IndexByName(name)
		if !found {
			return false
		}
		asset, index = holder, i
	}
	if _, ok := asset.Sprite(index); !ok {
		return false
	}

	e := Effect{Kind: EffectSprite, Sprite: asset, SpriteIndex: index}
	if v, ok := tag.Attr(attrTint); ok {
		e.Tint = v == "1" || Hash(v) == Hash("true")
	}
	if v, ok := tag.Attr(attrColor); ok {
		if c, ok := textmesh.ParseColor(v); ok {
			e.Color, e.HasColor = c, true
		}
	}
	in.effect = e
	return true
}

func (in *Interpreter) resolveMaterial(name string) (*fontasset.Material, bool) {
	if in.Resolver == nil {
		return nil, false
	}
	m, ok := in.Resolver.ResolveMaterial(name)
	return m, ok && m != nil
}

// attrColor returns the tag's color attribute, or the current color.
func (in *Interpreter) attrColor(tag *Tag) textmesh.RGBA {
	if v, ok := tag.Attr(attrColor); ok {
		if c, ok := textmesh.ParseColor(v); ok {
			return c
		}
	}
	if tag.HasValue {
		if c, ok := textmesh.ParseColor(tag.Value); ok {
			return c
		}
	}
	return in.State.Color.Current()
}

// pixels converts the tag value: em is relative to the current font
// size and percentages to the margin width.
func (in *Interpreter) pixels(tag *Tag) (float64, bool) {
	return in.pixelsOf(tag, in.MarginWidth)
}

func (in *Interpreter) pixelsOf(tag *Tag, percentOf float64) (float64, bool) {
	if !tag.HasValue {
		return 0, false
	}
	v, ok := ParseValue(tag.Value)
	if !ok {
		return 0, false
	}
	return v.Pixels(in.State.FontSize(), percentOf), true
}

func (in *Interpreter) setScalar(dst *float64, tag *Tag) bool {
	px, ok := in.pixels(tag)
	if !ok {
		return false
	}
	*dst = px
	return true
}

func (in *Interpreter) removeStyle(f StyleFlags, tag Tag) {
	if !in.State.Styles.Remove(f) {
		in.unbalanced(tag)
	}
}

func pop[T any](in *Interpreter, s *Stack[T], tag Tag) {
	if _, ok := s.Pop(); !ok {
		in.unbalanced(tag)
	}
}

func (in *Interpreter) unbalanced(tag Tag) {
	if in.ReportUnbalanced {
		textmesh.Logger().Warn("markup: closing tag without matching opening tag", "tag", tag.Name)
	}
}

// parseAlpha parses "#AA" into [0, 1].
func parseAlpha(s string) (float64, bool) {
	if len(s) != 3 || s[0] != '#' {
		return 0, false
	}
	n, err := strconv.ParseUint(s[1:], 16, 8)
	if err != nil {
		return 0, false
	}
	return float64(n) / 255, true
}

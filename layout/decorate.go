package layout

import (
	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/markup"
)

// decorationTrack accumulates one open decoration run.
type decorationTrack struct {
	kind  DecorationKind
	flag  markup.StyleFlags
	color func(*CharacterInfo) textmesh.RGBA

	open  bool
	first int
	last  int
	line  int
	c     textmesh.RGBA
}

func newTracks() [3]*decorationTrack {
	return [3]*decorationTrack{
		{kind: DecorationHighlight, flag: markup.Highlight, color: func(c *CharacterInfo) textmesh.RGBA { return c.HighlightColor }},
		{kind: DecorationUnderline, flag: markup.Underline, color: func(c *CharacterInfo) textmesh.RGBA { return c.UnderlineColor }},
		{kind: DecorationStrikethrough, flag: markup.Strikethrough, color: func(c *CharacterInfo) textmesh.RGBA { return c.StrikethroughColor }},
	}
}

// decorate collects underline, strikethrough and highlight runs. A run
// closes when its style ends, its color changes, the line changes or a
// hidden or control character interrupts it. Trailing spaces are not
// decorated.
func decorate(info *TextInfo, font *fontasset.Asset) []DecorationRun {
	var runs []DecorationRun
	tracks := newTracks()
	closeRun := func(t *decorationTrack) {
		if t.open && t.last >= t.first {
			runs = append(runs, decorationRun(info, font, t))
		}
		t.open = false
	}
	for k := range info.Characters {
		c := &info.Characters[k]
		eligible := c.Visible && c.Char != '\n' && !isControl(c.Char)
		for _, t := range tracks {
			want := eligible && c.Styles.Has(t.flag)
			color := t.color(c)
			if t.open && (!want || c.Line != t.line || color != t.c) {
				closeRun(t)
			}
			if !want {
				continue
			}
			if !t.open {
				*t = decorationTrack{kind: t.kind, flag: t.flag, color: t.color, open: true, first: k, last: k - 1, line: c.Line, c: color}
			}
			if !c.IsWhitespace() {
				t.last = k
			}
		}
	}
	for _, t := range tracks {
		closeRun(t)
	}
	return runs
}

// decorationRun measures a closed run. Underline and strikethrough use the
// face metrics at the largest character scale of the run; highlights span
// the run's ascender to descender.
func decorationRun(info *TextInfo, font *fontasset.Asset, t *decorationTrack) DecorationRun {
	first := &info.Characters[t.first]
	ln := &info.Lines[t.line]
	asset := first.Asset
	if asset == nil {
		asset = font
	}
	fi := asset.FaceInfo()

	left, right := first.Origin, first.XAdvance
	top, bottom := first.Ascender, first.Descender
	scale := 0.0
	for k := t.first; k <= t.last; k++ {
		c := &info.Characters[k]
		left, right = min(left, c.Origin), max(right, c.XAdvance)
		top, bottom = min(top, c.Ascender), max(bottom, c.Descender)
		s := faceScale(fi, c.PointSize)
		if c.Kind == ElementCharacter && c.Asset != nil {
			s = faceScale(c.Asset.FaceInfo(), c.PointSize)
		}
		scale = max(scale, s)
	}

	run := DecorationRun{
		Kind:                t.kind,
		FirstCharacterIndex: t.first,
		LastCharacterIndex:  t.last,
		Line:                t.line,
		Color:               t.c,
		Scale:               scale,
	}
	var y, thickness float64
	switch t.kind {
	case DecorationHighlight:
		run.Rect = textmesh.Rect{Min: textmesh.Pt(left, top), Max: textmesh.Pt(right, bottom)}
		return run
	case DecorationUnderline:
		y = ln.Baseline - fi.UnderlineOffset*scale
		thickness = fi.UnderlineThickness * scale
	case DecorationStrikethrough:
		y = ln.Baseline - fi.StrikethroughOffset*scale
		thickness = fi.StrikethroughThickness * scale
	}
	if thickness <= 0 {
		thickness = max(scale, 1)
	}
	run.Rect = textmesh.Rect{
		Min: textmesh.Pt(left, y-thickness/2),
		Max: textmesh.Pt(right, y+thickness/2),
	}
	return run
}

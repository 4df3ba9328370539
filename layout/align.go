package layout

import (
	"math"

	"github.com/gogpu/textmesh"
)

// mirrorLines reverses every line horizontally within its content extent
// and swaps left and right alignment, for right-to-left text.
func mirrorLines(info *TextInfo) {
	for li := range info.Lines {
		ln := &info.Lines[li]
		span := max(ln.Length, ln.MaxAdvance)
		for k := ln.FirstCharacterIndex; k <= ln.LastCharacterIndex; k++ {
			c := &info.Characters[k]
			mirror := func(pt textmesh.Point) textmesh.Point {
				pt.X = span - pt.X
				return pt
			}
			c.TopLeft, c.TopRight = mirror(c.TopRight), mirror(c.TopLeft)
			c.BottomLeft, c.BottomRight = mirror(c.BottomRight), mirror(c.BottomLeft)
			c.Origin, c.XAdvance = span-c.XAdvance, span-c.Origin
			c.Alignment = flipAlignment(c.Alignment)
		}
		ln.Length = span
		ln.Alignment = flipAlignment(ln.Alignment)
	}
}

func flipAlignment(a Alignment) Alignment {
	switch a {
	case AlignLeft:
		return AlignRight
	case AlignRight:
		return AlignLeft
	}
	return a
}

// alignLines applies horizontal alignment, justification and margins.
// Unbounded containers align lines against the longest line.
func (p *pass) alignLines(info *TextInfo) {
	widest := 0.0
	for li := range info.Lines {
		widest = max(widest, info.Lines[li].Length)
	}
	ratio := p.cfg.WrapRatio
	for li := range info.Lines {
		ln := &info.Lines[li]
		if ln.Width == 0 {
			ln.Width = widest
		}
		extra := ln.Width - ln.Length
		var off float64
		switch ln.Alignment {
		case AlignCenter:
			off = extra / 2
		case AlignRight:
			off = extra
		case AlignJustified, AlignFlush:
			if extra > 0 && (ln.Alignment == AlignFlush || !ln.EndsParagraph) {
				justify(info, ln, extra, ratio)
			}
		}
		ln.Offset = off
		dx := p.cfg.Margins.Left + ln.MarginLeft + off
		for k := ln.FirstCharacterIndex; k <= ln.LastCharacterIndex; k++ {
			shiftX(&info.Characters[k], dx)
		}
	}
}

// justify spreads extra over the gaps of a line. A share ratio goes to
// gaps between characters and the rest to gaps after spaces.
func justify(info *TextInfo, ln *LineInfo, extra, ratio float64) {
	last := ln.FirstCharacterIndex - 1
	for k := ln.LastCharacterIndex; k >= ln.FirstCharacterIndex; k-- {
		if isWordChar(&info.Characters[k]) {
			last = k
			break
		}
	}
	if last <= ln.FirstCharacterIndex {
		return
	}
	var spaceGaps, charGaps int
	for k := ln.FirstCharacterIndex + 1; k <= last; k++ {
		if info.Characters[k-1].IsWhitespace() {
			spaceGaps++
		} else {
			charGaps++
		}
	}
	var spacePart, charPart float64
	switch {
	case spaceGaps == 0:
		charPart = extra / float64(charGaps)
	case charGaps == 0:
		spacePart = extra / float64(spaceGaps)
	default:
		spacePart = extra * (1 - ratio) / float64(spaceGaps)
		charPart = extra * ratio / float64(charGaps)
	}
	acc := 0.0
	for k := ln.FirstCharacterIndex + 1; k <= ln.LastCharacterIndex; k++ {
		if k <= last {
			if info.Characters[k-1].IsWhitespace() {
				acc += spacePart
			} else {
				acc += charPart
			}
		}
		shiftX(&info.Characters[k], acc)
	}
	ln.Length += acc
}

// alignVertically positions each page within the container height and
// applies the top margin.
func (p *pass) alignVertically(info *TextInfo) {
	cfg := p.cfg
	for pi := range info.Pages {
		pg := &info.Pages[pi]
		contentH := pg.Descender - pg.Ascender
		avail := p.height
		if math.IsInf(avail, 1) {
			avail = contentH
		}
		var off float64
		switch cfg.VerticalAlignment {
		case AlignMiddle:
			off = (avail - contentH) / 2
		case AlignBottom:
			off = avail - contentH
		case AlignBaseline:
			if first := p.firstLineOf(info, pi); first != nil {
				off = avail/2 - first.Baseline
			}
		}
		off += cfg.Margins.Top - pg.Ascender
		pg.Ascender += off
		pg.Descender += off
		for li := range info.Lines {
			ln := &info.Lines[li]
			if ln.Page != pi {
				continue
			}
			ln.Ascender += off
			ln.Baseline += off
			ln.Descender += off
			for k := ln.FirstCharacterIndex; k <= ln.LastCharacterIndex; k++ {
				shiftY(&info.Characters[k], off)
			}
		}
	}
}

func (p *pass) firstLineOf(info *TextInfo, page int) *LineInfo {
	for li := range info.Lines {
		if info.Lines[li].Page == page {
			return &info.Lines[li]
		}
	}
	return nil
}

// quadBounds returns the axis-aligned bounds of c's quad.
func quadBounds(c *CharacterInfo) textmesh.Rect {
	pts := [4]textmesh.Point{c.TopLeft, c.TopRight, c.BottomLeft, c.BottomRight}
	r := textmesh.Rect{Min: pts[0], Max: pts[0]}
	for _, pt := range pts[1:] {
		r.Min.X, r.Min.Y = min(r.Min.X, pt.X), min(r.Min.Y, pt.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, pt.X), max(r.Max.Y, pt.Y)
	}
	return r
}

// inkBounds encloses every visible quad.
func inkBounds(info *TextInfo) textmesh.Rect {
	var b textmesh.Rect
	for k := range info.Characters {
		c := &info.Characters[k]
		if c.Visible && c.Ink {
			b = b.Union(quadBounds(c))
		}
	}
	return b
}

// clipRect is the container rectangle inside the margins. Unbounded
// sides use the text bounds.
func (p *pass) clipRect(info *TextInfo) textmesh.Rect {
	m := p.cfg.Margins
	r := textmesh.Rect{
		Min: textmesh.Pt(m.Left, m.Top),
		Max: textmesh.Pt(info.PreferredSize.Width-m.Right, info.PreferredSize.Height-m.Bottom),
	}
	if !math.IsInf(p.width, 1) {
		r.Max.X = m.Left + p.width
	}
	if !math.IsInf(p.height, 1) {
		r.Max.Y = m.Top + p.height
	}
	return r
}

package layout

import "math"

// newLine starts a line whose first element will come from text index i.
func (p *pass) newLine(i int, paragraph bool) {
	st := p.in.State
	p.line = lineState{
		first:          len(p.chars),
		marginLeft:     st.MarginLeft,
		marginRight:    st.MarginRight,
		paragraphStart: paragraph,
	}
	p.x = st.Indent.Current()
	if paragraph {
		p.x += st.LineIndent
	}
	p.prev = 0
	p.prevAsset = nil
	p.lastBreak = snapshot{}
	p.prevBreak = snapshot{}
	p.lineStart = p.snapshot(i)
}

// newPage closes the current line, even when empty, and continues at the
// top of the next page.
func (p *pass) newPage(next int) int {
	if resume := p.closeLine(next, true); resume != next || p.stopped {
		return resume
	}
	p.page++
	p.y = 0
	p.afterNewline = false
	p.newLine(next, true)
	return next
}

// lineMetrics returns the ascent, descent and gap of the current line.
// Empty lines use the current font.
func (p *pass) lineMetrics() (asc, desc, gap float64) {
	if len(p.chars) > p.line.first {
		return p.line.maxAsc, p.line.maxDesc, p.line.maxGap
	}
	fr := p.currentFont()
	fi := fr.asset.FaceInfo()
	s := faceScale(fi, fr.size)
	gap = max(fi.LineHeight-(fi.AscentLine-fi.DescentLine), 0) * s
	return fi.AscentLine*s + p.in.State.Baseline(), -fi.DescentLine*s - p.in.State.Baseline(), gap
}

// closeLine finishes the current line and starts the next one at text
// index next. It returns the index to resume at, which differs from next
// when a line is moved to a new page.
func (p *pass) closeLine(next int, paragraph bool) int {
	asc, desc, gap := p.lineMetrics()
	if p.y+asc+desc > p.height+epsilon {
		if resume, handled := p.verticalOverflow(); handled {
			return resume
		}
	}

	first, last := p.line.first, len(p.chars)-1
	baseline := p.y + asc
	index := len(p.lines)
	for k := first; k <= last; k++ {
		c := &p.chars[k]
		shiftY(c, baseline)
		c.Line = index
		c.Page = p.page
	}

	st := p.in.State
	align := st.Justification.Current()
	if last >= first {
		align = p.chars[first].Alignment
	}
	width := p.width - p.line.marginLeft - p.line.marginRight
	if math.IsInf(width, 1) {
		width = 0
	}
	p.lines = append(p.lines, LineInfo{
		FirstCharacterIndex:        first,
		LastCharacterIndex:         last,
		FirstVisibleCharacterIndex: -1,
		LastVisibleCharacterIndex:  -1,
		Ascender:                   baseline - asc,
		Baseline:                   baseline,
		Descender:                  baseline + desc,
		Width:                      width,
		MarginLeft:                 p.line.marginLeft,
		MarginRight:                p.line.marginRight,
		Alignment:                  align,
		Page:                       p.page,
		EndsParagraph:              paragraph,
	})

	advance := asc + desc + gap
	if st.HasLineHeight {
		advance = st.LineHeight
	}
	p.y += advance + p.cfg.LineSpacing/100*p.size
	if paragraph {
		p.y += p.cfg.ParagraphSpacing / 100 * p.size
	}
	p.afterNewline = false
	p.newLine(next, paragraph)
	return next
}

// verticalOverflow applies the overflow mode to a line that does not fit
// the container height. handled is false when the line is kept.
func (p *pass) verticalOverflow() (resume int, handled bool) {
	firstOnPage := len(p.lines) == 0 || p.lines[len(p.lines)-1].Page != p.page
	mode := p.cfg.Overflow
	switch {
	case p.canShrink:
		p.requestShrink()
		return 0, true
	case mode == OverflowPage:
		if firstOnPage {
			p.overflowY = true
			return 0, false
		}
		start := p.lineStart
		p.restore(start)
		p.lineStart = start
		p.page++
		p.y = 0
		return start.i, true
	case mode == OverflowEllipsis && p.ellipsisAt < 0 && !p.final && len(p.lines) > 0:
		prev := p.lines[len(p.lines)-1]
		width := prev.Width
		if width == 0 {
			width = math.Inf(1)
		}
		p.ellipsisNext = p.ellipsisCut(prev.FirstCharacterIndex, prev.LastCharacterIndex, width, p.lineStart.i)
		p.retry = RetryEllipsis
		p.stopped = true
		return 0, true
	case mode == OverflowTruncate, mode == OverflowLinked, mode == OverflowEllipsis:
		start := p.lineStart
		p.restore(start)
		p.truncate(start.i)
		return 0, true
	}
	p.overflowY = true
	return 0, false
}

// shiftY moves an element from its provisional baseline to the line.
func shiftY(c *CharacterInfo, dy float64) {
	c.TopLeft.Y += dy
	c.TopRight.Y += dy
	c.BottomLeft.Y += dy
	c.BottomRight.Y += dy
	c.Baseline += dy
	c.Ascender += dy
	c.Descender += dy
}

// shiftX moves an element horizontally.
func shiftX(c *CharacterInfo, dx float64) {
	c.TopLeft.X += dx
	c.TopRight.X += dx
	c.BottomLeft.X += dx
	c.BottomRight.X += dx
	c.Origin += dx
	c.XAdvance += dx
}

package layout

import (
	"context"
	"math"

	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/markup"
)

// epsilon absorbs float drift in fit comparisons.
const epsilon = 1e-4

// lineState tracks the line being filled. Element y coordinates are
// relative to a provisional baseline at 0 until the line is closed.
type lineState struct {
	first int

	// maxAsc and maxDesc are distances above and below the baseline.
	maxAsc  float64
	maxDesc float64
	maxGap  float64

	marginLeft  float64
	marginRight float64

	paragraphStart bool
}

// snapshot is a restart point for word wrapping and paging.
type snapshot struct {
	i         int
	n         int
	x         float64
	prev      rune
	prevAsset *fontasset.Asset
	state     *markup.InterpreterState
	line      lineState
	valid     bool
}

// pass is one layout attempt at a fixed font size.
type pass struct {
	g   *generator
	cfg *Config
	in  *markup.Interpreter

	size       float64
	ellipsisAt int
	canShrink  bool
	// final passes truncate instead of asking for an ellipsis retry.
	final bool

	// Available area inside the container margins. Unbounded sides are
	// +Inf.
	width  float64
	height float64

	chars []CharacterInfo
	lines []LineInfo

	// x is the pen position relative to the line's content left edge;
	// y is the top of the current line relative to its page.
	x    float64
	y    float64
	page int

	line      lineState
	lineStart snapshot
	lastBreak snapshot
	prevBreak snapshot

	prev      rune
	prevAsset *fontasset.Asset

	// afterNewline is set while the current line is empty and follows a
	// line feed, so text ending in a line feed still yields a last line.
	afterNewline bool

	retry        RetryReason
	ellipsisNext int

	overflowX     bool
	overflowY     bool
	truncated     bool
	stopped       bool
	firstOverflow int
}

func (g *generator) newPass(size float64, ellipsisAt int, canShrink bool) *pass {
	cfg := g.cfg
	p := &pass{
		g:             g,
		cfg:           cfg,
		size:          size,
		ellipsisAt:    ellipsisAt,
		canShrink:     canShrink,
		width:         math.Inf(1),
		height:        math.Inf(1),
		firstOverflow: -1,
	}
	if cfg.Width > 0 {
		p.width = max(cfg.Width-cfg.Margins.Left-cfg.Margins.Right, 0)
	}
	if cfg.Height > 0 {
		p.height = max(cfg.Height-cfg.Margins.Top-cfg.Margins.Bottom, 0)
	}

	weight := 400
	if cfg.FontStyle.Has(markup.Bold) {
		weight = 700
	}
	in := markup.NewInterpreter(markup.Defaults{
		Font:      markup.FontRef{Asset: cfg.Font, Material: cfg.material()},
		Color:     cfg.Color,
		Size:      size,
		Alignment: cfg.Alignment,
		Styles:    cfg.FontStyle,
		Weight:    weight,
	}, cfg.Resolver)
	in.Sprites = cfg.sprites()
	in.ReportUnbalanced = cfg.ReportUnbalancedTags
	if !math.IsInf(p.width, 1) {
		in.MarginWidth = p.width
	}
	p.in = in
	return p
}

func (p *pass) run(ctx context.Context) error {
	text := p.g.text
	p.newLine(0, true)

	steps := 0
	for i := 0; !p.stopped; {
		steps++
		if steps%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if i == p.ellipsisAt {
			p.placeEllipsis(i)
			break
		}
		if i >= len(text) {
			if len(p.chars) == p.line.first && !p.afterNewline {
				break
			}
			page := p.page
			i = p.closeLine(len(text), true)
			if p.page == page {
				break
			}
			// The last line moved to a new page and is laid out again.
			continue
		}
		if text[i] == '<' && p.cfg.RichText {
			if ok, end := p.in.Apply(text, i); ok {
				i = p.applyEffect(i, end, p.in.TakeEffect())
				continue
			}
		}
		i = p.layoutChar(i)
	}
	return nil
}

// fits reports whether the pass laid out everything inside the container
// without asking for another pass.
func (p *pass) fits() bool {
	return p.retry == RetryNone && !p.overflowX && !p.overflowY && !p.truncated
}

// applyEffect performs the one-shot action of a consumed tag ending at
// end and returns the next index to process.
func (p *pass) applyEffect(i, end int, e markup.Effect) int {
	next := end + 1
	switch e.Kind {
	case markup.EffectSpace:
		p.x += e.Amount
	case markup.EffectPosition, markup.EffectIndent:
		p.x = e.Amount
	case markup.EffectSprite:
		el, ok := p.buildSprite(i, e)
		if !ok {
			return next
		}
		if r, handled := p.place(i, el); handled {
			return r
		}
	case markup.EffectPageBreak:
		if p.cfg.Overflow == OverflowPage {
			return p.newPage(next)
		}
		return p.closeLine(next, true)
	}
	return next
}

// layoutChar lays out text[i] and returns the next index to process.
func (p *pass) layoutChar(i int) int {
	r := p.g.text[i]
	el := p.buildChar(i, r)
	if r == '\n' {
		p.appendElement(el)
		next := p.closeLine(i+1, true)
		p.afterNewline = !p.stopped
		return next
	}
	if next, handled := p.place(i, el); handled {
		return next
	}
	return i + 1
}

// place runs the wrap and overflow policies for el and appends it. When
// handled is true the caller resumes at next instead of after i.
func (p *pass) place(i int, el element) (next int, handled bool) {
	st := p.in.State
	cr := el.info.Char
	if p.cfg.WordWrap && !st.NoBreak && len(p.chars) > p.line.first {
		var tail [breakContext]rune
		if p.g.rules.canBreakBefore(p.lineTail(tail[:0]), cr) {
			p.prevBreak, p.lastBreak = p.lastBreak, p.snapshot(i)
		}
	}

	limit := p.lineWidth()
	if p.justified() {
		limit *= 1.05
	}
	if el.info.Ink && !el.info.IsWhitespace() && el.inkRight > limit+epsilon {
		if p.cfg.WordWrap {
			switch {
			case p.lastBreak.valid && p.lastBreak.n > p.line.first:
				return p.wrapAt(p.lastBreak), true
			case len(p.chars) > p.line.first:
				return p.closeLine(i, false), true
			case p.canShrink:
				p.requestShrink()
				return 0, true
			}
			p.markOverflowX(i)
		} else {
			switch p.cfg.Overflow {
			case OverflowEllipsis:
				if p.canShrink {
					p.requestShrink()
					return 0, true
				}
				if p.ellipsisAt < 0 && !p.final {
					p.ellipsisNext = p.ellipsisCut(p.line.first, len(p.chars)-1, p.lineWidth(), i)
					p.retry = RetryEllipsis
					p.stopped = true
					return 0, true
				}
				p.truncate(i)
				return 0, true
			case OverflowTruncate:
				if p.canShrink {
					p.requestShrink()
					return 0, true
				}
				el.info.Visible = false
				p.truncated = true
				if p.firstOverflow < 0 {
					p.firstOverflow = p.source(i)
				}
			case OverflowLinked:
				if p.canShrink {
					p.requestShrink()
					return 0, true
				}
				p.truncate(i)
				return 0, true
			default:
				if p.canShrink {
					p.requestShrink()
					return 0, true
				}
				p.markOverflowX(i)
			}
		}
	}
	p.appendElement(el)
	return 0, false
}

// appendElement commits el to the current line and advances the pen.
func (p *pass) appendElement(el element) {
	el.info.Page = p.page
	p.afterNewline = false
	p.chars = append(p.chars, el.info)
	p.x = el.info.XAdvance
	p.prev = el.info.Char
	p.prevAsset = el.info.Asset
	p.line.maxAsc = max(p.line.maxAsc, -el.info.Ascender)
	p.line.maxDesc = max(p.line.maxDesc, el.info.Descender)
	p.line.maxGap = max(p.line.maxGap, el.gap)
}

// lineTail appends the characters at the end of the current line to dst.
func (p *pass) lineTail(dst []rune) []rune {
	from := max(p.line.first, len(p.chars)-breakContext)
	for k := from; k < len(p.chars); k++ {
		dst = append(dst, p.chars[k].Char)
	}
	return dst
}

// wrapAt moves everything after the break s to a new line. A soft hyphen
// ending the line is shown as a hyphen; when the hyphen itself does not
// fit, the line breaks at the earlier opportunity prev instead.
func (p *pass) wrapAt(s snapshot) int {
	prev := p.prevBreak
	p.restore(s)
	if n := len(p.chars); n > p.line.first && p.chars[n-1].Char == markup.SoftHyphen {
		shy := p.chars[n-1]
		x, last := p.x, p.prev
		p.x = shy.Origin
		p.prev = 0
		el := p.buildChar(shy.Index, '-')
		el.info.Source = shy.Source
		switch {
		case el.inkRight <= p.lineWidth()+epsilon:
			p.chars = p.chars[:n-1]
			p.appendElement(el)
		case prev.valid && prev.n > p.line.first && prev.n < s.n:
			return p.wrapAt(prev)
		default:
			p.x, p.prev = x, last
		}
	}
	return p.closeLine(s.i, false)
}

func (p *pass) snapshot(i int) snapshot {
	return snapshot{
		i:         i,
		n:         len(p.chars),
		x:         p.x,
		prev:      p.prev,
		prevAsset: p.prevAsset,
		state:     p.in.State.Clone(),
		line:      p.line,
		valid:     true,
	}
}

func (p *pass) restore(s snapshot) {
	p.chars = p.chars[:s.n]
	p.x = s.x
	p.prev = s.prev
	p.prevAsset = s.prevAsset
	p.in.State = s.state.Clone()
	p.line = s.line
	p.lastBreak = snapshot{}
	p.prevBreak = snapshot{}
}

// lineWidth returns the width available to the current line.
func (p *pass) lineWidth() float64 {
	w := p.width - p.line.marginLeft - p.line.marginRight
	if sw := p.in.State.Width; sw > 0 {
		w = min(w, sw)
	}
	return w
}

func (p *pass) justified() bool {
	a := p.in.State.Justification.Current()
	return a == AlignJustified || a == AlignFlush
}

func (p *pass) requestShrink() {
	p.retry = RetryShrink
	p.stopped = true
}

func (p *pass) markOverflowX(i int) {
	p.overflowX = true
	if p.firstOverflow < 0 {
		p.firstOverflow = p.source(i)
	}
}

// truncate stops the pass at text index i.
func (p *pass) truncate(i int) {
	p.truncated = true
	p.stopped = true
	if p.firstOverflow < 0 {
		p.firstOverflow = p.source(i)
	}
}

// source maps an expanded text index to the input index.
func (p *pass) source(i int) int {
	if i < len(p.g.source) {
		return p.g.source[i]
	}
	if n := len(p.g.source); n > 0 {
		return p.g.source[n-1] + 1
	}
	return i
}

// placeEllipsis ends the text with the ellipsis character at index i.
func (p *pass) placeEllipsis(i int) {
	p.prev = 0
	el := p.buildChar(i, p.cfg.Ellipsis)
	el.info.Index = i
	el.info.Source = p.source(i)
	p.appendElement(el)
	p.truncated = true
	if p.firstOverflow < 0 {
		p.firstOverflow = p.source(i)
	}
	p.closeLine(i, true)
	p.stopped = true
}

// ellipsisCut returns the text index at which an ellipsis must replace
// the rest of the text so that chars[first..last] plus the ellipsis fit
// in width. fallback is used when the range is empty.
func (p *pass) ellipsisCut(first, last int, width float64, fallback int) int {
	if last < first {
		return fallback
	}
	x, prev := p.x, p.prev
	p.x, p.prev = 0, 0
	adv := p.buildChar(p.chars[last].Index, p.cfg.Ellipsis).info.XAdvance
	p.x, p.prev = x, prev

	for k := last; k >= first; k-- {
		c := &p.chars[k]
		if c.IsWhitespace() || !c.Ink {
			continue
		}
		if c.XAdvance+adv <= width+epsilon {
			if k < last {
				return p.chars[k+1].Index
			}
			return c.Index + 1
		}
	}
	return p.chars[first].Index
}

package layout

// finalize turns the pass into a TextInfo: line statistics, words, links
// and pages, visibility limits, direction, alignment, decorations and
// meshes, in that order.
func (p *pass) finalize() *TextInfo {
	info := &TextInfo{
		Characters:                  p.chars,
		Lines:                       p.lines,
		FontSize:                    p.size,
		FirstOverflowCharacterIndex: p.firstOverflow,
		Truncated:                   p.truncated,
		RightToLeft:                 p.g.rtl,
	}
	// Elements past the last closed line belong to no line.
	if n := len(info.Lines); n > 0 {
		info.Characters = info.Characters[:info.Lines[n-1].LastCharacterIndex+1]
	} else {
		info.Characters = info.Characters[:0]
	}

	measureLines(info)
	info.Words = collectWords(info)
	info.Links = collectLinks(info)
	info.Pages = collectPages(info)
	p.applyVisibility(info)
	countVisible(info)
	info.PreferredSize = p.preferredSize(info)

	if info.RightToLeft {
		mirrorLines(info)
	}
	p.alignLines(info)
	p.alignVertically(info)

	info.Decorations = decorate(info, p.cfg.Font)
	info.Meshes = buildMeshes(info, p.cfg.MaxVerticesPerBuffer)
	info.Bounds = inkBounds(info)
	if m := p.cfg.Overflow; m == OverflowMasking || m == OverflowScrollRect {
		info.Clip = p.clipRect(info)
		info.HasClip = true
	}
	return info
}

// measureLines fills the per-line counts and extents.
func measureLines(info *TextInfo) {
	for li := range info.Lines {
		ln := &info.Lines[li]
		ln.CharacterCount = ln.LastCharacterIndex - ln.FirstCharacterIndex + 1
		ln.Length, ln.MaxAdvance = 0, 0
		for k := ln.FirstCharacterIndex; k <= ln.LastCharacterIndex; k++ {
			c := &info.Characters[k]
			ln.MaxAdvance = max(ln.MaxAdvance, c.XAdvance)
			if c.IsWhitespace() {
				ln.SpaceCount++
				continue
			}
			if c.Char == '\n' || isControl(c.Char) {
				continue
			}
			ln.Length = max(ln.Length, c.XAdvance)
		}
	}
}

// isWordChar reports whether c can be part of a word.
func isWordChar(c *CharacterInfo) bool {
	if c.Kind == ElementSprite {
		return true
	}
	return !c.IsWhitespace() && c.Char != '\n' && !isControl(c.Char)
}

// collectWords splits every line into maximal runs of word characters.
func collectWords(info *TextInfo) []WordInfo {
	var words []WordInfo
	for li := range info.Lines {
		ln := &info.Lines[li]
		start := -1
		flush := func(end int) {
			if start < 0 {
				return
			}
			words = append(words, WordInfo{
				FirstCharacterIndex: start,
				LastCharacterIndex:  end,
				Text:                runeText(info.Characters[start : end+1]),
			})
			ln.WordCount++
			start = -1
		}
		for k := ln.FirstCharacterIndex; k <= ln.LastCharacterIndex; k++ {
			if isWordChar(&info.Characters[k]) {
				if start < 0 {
					start = k
				}
				continue
			}
			flush(k - 1)
		}
		flush(ln.LastCharacterIndex)
	}
	return words
}

// collectLinks groups consecutive characters that share a link ID.
func collectLinks(info *TextInfo) []LinkInfo {
	var links []LinkInfo
	for k := 0; k < len(info.Characters); {
		id := info.Characters[k].Link
		if id == "" {
			k++
			continue
		}
		end := k
		for end+1 < len(info.Characters) && info.Characters[end+1].Link == id {
			end++
		}
		links = append(links, LinkInfo{
			ID:                  id,
			FirstCharacterIndex: k,
			CharacterCount:      end - k + 1,
			Text:                runeText(info.Characters[k : end+1]),
		})
		k = end + 1
	}
	return links
}

// collectPages groups lines by page.
func collectPages(info *TextInfo) []PageInfo {
	var pages []PageInfo
	for li := range info.Lines {
		ln := &info.Lines[li]
		if ln.Page >= len(pages) {
			for len(pages) <= ln.Page {
				pages = append(pages, PageInfo{
					FirstCharacterIndex: ln.FirstCharacterIndex,
					LastCharacterIndex:  ln.LastCharacterIndex,
					Ascender:            ln.Ascender,
					Descender:           ln.Descender,
				})
			}
			continue
		}
		pg := &pages[ln.Page]
		pg.LastCharacterIndex = ln.LastCharacterIndex
		pg.Ascender = min(pg.Ascender, ln.Ascender)
		pg.Descender = max(pg.Descender, ln.Descender)
	}
	return pages
}

// applyVisibility hides elements outside the displayed page and beyond
// the visible character, word and line limits.
func (p *pass) applyVisibility(info *TextInfo) {
	cfg := p.cfg
	lastWordChar := -1
	if n := cfg.MaxVisibleWords; n > 0 && n < len(info.Words) {
		lastWordChar = info.Words[n-1].LastCharacterIndex
	}
	for k := range info.Characters {
		c := &info.Characters[k]
		switch {
		case cfg.Overflow == OverflowPage && c.Page != cfg.PageToDisplay-1:
			c.Visible = false
		case cfg.MaxVisibleCharacters > 0 && k >= cfg.MaxVisibleCharacters:
			c.Visible = false
		case lastWordChar >= 0 && k > lastWordChar:
			c.Visible = false
		case cfg.MaxVisibleLines > 0 && c.Line >= cfg.MaxVisibleLines:
			c.Visible = false
		}
	}
}

// countVisible fills the visible character indices of each line.
func countVisible(info *TextInfo) {
	for li := range info.Lines {
		ln := &info.Lines[li]
		for k := ln.FirstCharacterIndex; k <= ln.LastCharacterIndex; k++ {
			c := &info.Characters[k]
			if !c.Visible || c.Char == '\n' || isControl(c.Char) {
				continue
			}
			if ln.FirstVisibleCharacterIndex < 0 {
				ln.FirstVisibleCharacterIndex = k
			}
			ln.LastVisibleCharacterIndex = k
			ln.VisibleCharacterCount++
		}
	}
}

// preferredSize is the extent of the text before alignment, including
// the container margins.
func (p *pass) preferredSize(info *TextInfo) Size {
	var w, h float64
	for li := range info.Lines {
		ln := &info.Lines[li]
		w = max(w, ln.Length+ln.MarginLeft+ln.MarginRight)
		h = max(h, ln.Descender)
	}
	m := p.cfg.Margins
	return Size{Width: w + m.Left + m.Right, Height: h + m.Top + m.Bottom}
}

func runeText(chars []CharacterInfo) string {
	rs := make([]rune, 0, len(chars))
	for i := range chars {
		rs = append(rs, chars[i].Char)
	}
	return string(rs)
}

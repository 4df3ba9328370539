package layout

import (
	"unicode"

	"github.com/go-text/typesetting/segmenter"
)

// breakContext is how many preceding characters of the line are fed to
// the segmenter along with the candidate.
const breakContext = 4

// isSpace reports space-like characters, which never cause overflow.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u3000' || r == '\u00A0' ||
		(r >= 0x2000 && r <= 0x200A) || r == '\u202F' || r == '\u205F'
}

// isControl reports characters laid out with no advance and no quad.
func isControl(r rune) bool {
	return r == '\r' || r == '\u200B' || r == '\u200D' || r == '\u2060' ||
		r == '\uFEFF' || r == '\u00AD' || (unicode.IsControl(r) && r != '\t' && r != '\n')
}

// breakRules finds line break opportunities with the Unicode line
// breaking algorithm and applies the East Asian forbidden sets on top.
// It is not safe for concurrent use.
type breakRules struct {
	leading   map[rune]bool
	following map[rune]bool

	seg segmenter.Segmenter
	buf []rune
}

func newBreakRules(leading, following string) *breakRules {
	b := &breakRules{
		leading:   make(map[rune]bool),
		following: make(map[rune]bool),
	}
	for _, r := range leading {
		b.leading[r] = true
	}
	for _, r := range following {
		b.following[r] = true
	}
	return b
}

// canBreakBefore reports whether a line may start at cur. before holds
// the characters already on the line, oldest first; only its tail is
// consulted. Nothing breaks at the start of a line.
func (b *breakRules) canBreakBefore(before []rune, cur rune) bool {
	n := len(before)
	if n == 0 {
		return false
	}
	if b.leading[cur] || b.following[before[n-1]] {
		return false
	}
	if n > breakContext {
		before = before[n-breakContext:]
		n = breakContext
	}
	b.buf = append(append(b.buf[:0], before...), cur)
	b.seg.Init(b.buf)
	it := b.seg.LineIterator()
	for it.Next() {
		l := it.Line()
		if end := l.Offset + len(l.Text); end >= n {
			return end == n
		}
	}
	return false
}

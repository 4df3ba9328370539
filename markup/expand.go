package markup

import (
	"strconv"

	"github.com/gogpu/textmesh"
)

// Control characters produced by substitution tags.
const (
	LineFeed      = '\n'
	NoBreakSpace  = '\u00A0'
	ZeroWidthSp   = '\u200B'
	ZeroWidthJoin = '\u200D'
	SoftHyphen    = '\u00AD'
)

// maxStyleDepth bounds style fragments that reference other styles.
const maxStyleDepth = 8

// ExpandOptions controls the preprocessing done by Expand.
type ExpandOptions struct {
	// RichText enables style and substitution tags. Without it the text
	// is returned unchanged apart from escapes.
	RichText bool

	// Escapes enables \n, \t, \r, \\, \uXXXX and \UXXXXXXXX.
	Escapes bool

	Styles *StyleSheet
}

// Expanded is preprocessed text. Source[i] is the index of the input rune
// that produced Text[i].
type Expanded struct {
	Text   []rune
	Source []int
}

// Expand rewrites style tags to their markup fragments, substitution tags
// (<br>, <nbsp>, <zwsp>, <zwj>, <shy>) to control characters and escape
// sequences to the characters they name. All other tags are copied for
// the Interpreter. Text inside <noparse> is copied verbatim.
func Expand(text []rune, opts ExpandOptions) Expanded {
	e := expander{opts: opts}
	e.out.Text = make([]rune, 0, len(text))
	e.out.Source = make([]int, 0, len(text))
	e.run(text, nil, 0)
	return e.out
}

type expander struct {
	opts    ExpandOptions
	out     Expanded
	noparse bool
	styles  []*Style
}

// run expands text. src maps text indices to input indices; nil means
// identity.
func (e *expander) run(text []rune, src []int, depth int) {
	at := func(i int) int {
		if src == nil {
			return i
		}
		return src[i]
	}
	for i := 0; i < len(text); i++ {
		r := text[i]
		if r == '\\' && e.opts.Escapes && !e.noparse {
			if v, n, ok := unescape(text[i:]); ok {
				e.emit(v, at(i))
				i += n - 1
				continue
			}
		}
		if r != '<' || !e.opts.RichText {
			e.emit(r, at(i))
			continue
		}
		tag, end, ok := ParseTag(text, i)
		if !ok {
			e.emit(r, at(i))
			continue
		}
		id := tagIDs[tag.NameHash]
		if e.noparse {
			if tag.Closing && id == tagNoParse {
				e.noparse = false
			}
			e.copy(text[i:end+1], src, i)
			i = end
			continue
		}
		if e.substitute(id, tag, text, src, i, depth) {
			i = end
			continue
		}
		if id == tagNoParse && !tag.Closing {
			e.noparse = true
		}
		e.copy(text[i:end+1], src, i)
		i = end
	}
}

// substitute handles style and substitution tags. It reports whether the
// tag was rewritten.
func (e *expander) substitute(id tagID, tag Tag, text []rune, src []int, i, depth int) bool {
	at := i
	if src != nil {
		at = src[i]
	}
	if tag.Closing {
		if id != tagStyle {
			return false
		}
		n := len(e.styles)
		if n == 0 {
			return true
		}
		st := e.styles[n-1]
		e.styles = e.styles[:n-1]
		e.fragment(st.Close, at, depth)
		return true
	}

	var sub rune
	switch id {
	case tagStyle:
		st, ok := e.opts.Styles.Style(tag.ValueHash)
		if !ok || depth >= maxStyleDepth {
			return false
		}
		e.fragment(st.Open, at, depth)
		e.styles = append(e.styles, st)
		return true
	case tagBreak:
		sub = LineFeed
	case tagNBSP:
		sub = NoBreakSpace
	case tagZWSP:
		sub = ZeroWidthSp
	case tagZWJ:
		sub = ZeroWidthJoin
	case tagSHY:
		sub = SoftHyphen
	default:
		return false
	}
	e.emit(sub, at)
	return true
}

// fragment expands a style fragment, attributing every rune to the
// source index of the style tag.
func (e *expander) fragment(text []rune, at, depth int) {
	if len(text) == 0 {
		return
	}
	src := make([]int, len(text))
	for k := range src {
		src[k] = at
	}
	textmesh.Logger().Debug("markup: expanding style", "runes", len(text), "depth", depth+1)
	e.run(text, src, depth+1)
}

func (e *expander) emit(r rune, at int) {
	e.out.Text = append(e.out.Text, r)
	e.out.Source = append(e.out.Source, at)
}

func (e *expander) copy(text []rune, src []int, start int) {
	for k, r := range text {
		at := start + k
		if src != nil {
			at = src[start+k]
		}
		e.emit(r, at)
	}
}

// unescape decodes the escape sequence at the start of s and returns the
// rune and the number of input runes consumed.
func unescape(s []rune) (rune, int, bool) {
	if len(s) < 2 {
		return 0, 0, false
	}
	switch s[1] {
	case 'n':
		return '\n', 2, true
	case 't':
		return '\t', 2, true
	case 'r':
		return '\r', 2, true
	case '\\':
		return '\\', 2, true
	case 'u', 'U':
		n := 4
		if s[1] == 'U' {
			n = 8
		}
		if len(s) < 2+n {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(string(s[2:2+n]), 16, 32)
		if err != nil || v > 0x10FFFF {
			return 0, 0, false
		}
		return rune(v), 2 + n, true
	}
	return 0, 0, false
}

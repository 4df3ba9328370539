package layout

import (
	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/markup"
)

// ElementKind distinguishes font characters from inline sprites.
type ElementKind uint8

const (
	ElementCharacter ElementKind = iota
	ElementSprite
)

// CharacterInfo is the layout record of one element. Positions are in
// container space with y pointing down.
type CharacterInfo struct {
	// Char is the resolved codepoint after case mapping.
	Char rune
	Kind ElementKind

	// Index is the position in the expanded text; Source the position in
	// the input text.
	Index  int
	Source int

	Asset    *fontasset.Asset
	Material *fontasset.Material
	Glyph    *fontasset.Glyph

	Sprite      *fontasset.SpriteAsset
	SpriteIndex int

	PointSize float64
	// Scale converts sampling-size pixels to layout pixels.
	Scale  float64
	Styles markup.StyleFlags
	Weight int

	TopLeft, TopRight, BottomLeft, BottomRight textmesh.Point

	// Origin is the pen position; XAdvance the pen position after the
	// element.
	Origin   float64
	XAdvance float64

	// Baseline, Ascender and Descender are absolute y coordinates.
	Baseline  float64
	Ascender  float64
	Descender float64

	Line int
	Page int

	// Visible is false for elements culled by overflow, paging or
	// visibility limits.
	Visible bool
	// Ink is set for elements that produce a quad.
	Ink bool

	Alignment Alignment

	Color              textmesh.RGBA
	Gradient           *fontasset.Gradient
	UnderlineColor     textmesh.RGBA
	StrikethroughColor textmesh.RGBA
	HighlightColor     textmesh.RGBA

	Link string

	// UV is the atlas or sprite sheet rectangle, including style padding.
	UV [4]float32
}

// IsWhitespace reports whether the element is a space-like character.
func (c *CharacterInfo) IsWhitespace() bool {
	return c.Kind == ElementCharacter && isSpace(c.Char)
}

// LineInfo describes one laid-out line.
type LineInfo struct {
	FirstCharacterIndex int
	LastCharacterIndex  int

	// Visible indices are -1 for lines without visible characters.
	FirstVisibleCharacterIndex int
	LastVisibleCharacterIndex  int

	CharacterCount        int
	VisibleCharacterCount int
	SpaceCount            int
	WordCount             int

	// Ascender, Baseline and Descender are absolute y coordinates.
	Ascender  float64
	Baseline  float64
	Descender float64

	// Width is the available width; Length the extent of the content.
	Width      float64
	Length     float64
	MaxAdvance float64

	MarginLeft  float64
	MarginRight float64

	Alignment Alignment
	// Offset is the horizontal alignment offset applied to the line.
	Offset float64

	Page int

	// EndsParagraph is set for lines ended by a line feed or the end of text.
	EndsParagraph bool
}

// WordInfo is a maximal run of non-space characters on one line.
type WordInfo struct {
	FirstCharacterIndex int
	LastCharacterIndex  int
	Text                string
}

// PageInfo describes one page in OverflowPage mode. Text without paging
// has a single page.
type PageInfo struct {
	FirstCharacterIndex int
	LastCharacterIndex  int
	Ascender            float64
	Descender           float64
}

// LinkInfo is a run of characters inside a <link> tag.
type LinkInfo struct {
	ID                  string
	FirstCharacterIndex int
	CharacterCount      int
	Text                string
}

// DecorationKind identifies a decoration run.
type DecorationKind uint8

const (
	DecorationUnderline DecorationKind = iota
	DecorationStrikethrough
	DecorationHighlight
)

// String returns the decoration name.
func (k DecorationKind) String() string {
	switch k {
	case DecorationUnderline:
		return "underline"
	case DecorationStrikethrough:
		return "strikethrough"
	case DecorationHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}

// DecorationRun is one closed underline, strikethrough or highlight run.
type DecorationRun struct {
	Kind                DecorationKind
	FirstCharacterIndex int
	LastCharacterIndex  int
	Line                int
	Rect                textmesh.Rect
	Color               textmesh.RGBA
	// Scale is the largest character scale in the run.
	Scale float64
}

// Size is a width and height.
type Size struct {
	Width, Height float64
}

// TextInfo is the result of a layout.
type TextInfo struct {
	Characters  []CharacterInfo
	Lines       []LineInfo
	Words       []WordInfo
	Pages       []PageInfo
	Links       []LinkInfo
	Decorations []DecorationRun
	Meshes      []*MeshBuffer

	// FontSize is the size used, after auto-sizing.
	FontSize float64

	// Passes is the number of layout passes run.
	Passes int
	// RetryCapReached is set when Config.MaxPasses stopped the search
	// before it converged; the best layout found is returned.
	RetryCapReached bool

	// Bounds encloses every visible quad.
	Bounds textmesh.Rect
	// PreferredSize is the extent of the laid-out text.
	PreferredSize Size

	// Clip is the container rectangle in masking modes.
	Clip    textmesh.Rect
	HasClip bool

	// FirstOverflowCharacterIndex is the input index of the first
	// character that did not fit, or -1.
	FirstOverflowCharacterIndex int
	Truncated                   bool

	RightToLeft bool
}

// CharacterCount returns the number of layout elements.
func (t *TextInfo) CharacterCount() int { return len(t.Characters) }

// LineCount returns the number of lines.
func (t *TextInfo) LineCount() int { return len(t.Lines) }

// PageCount returns the number of pages.
func (t *TextInfo) PageCount() int { return len(t.Pages) }

// WordCount returns the number of words.
func (t *TextInfo) WordCount() int { return len(t.Words) }

// Text returns the laid-out characters as a string.
func (t *TextInfo) Text() string {
	rs := make([]rune, 0, len(t.Characters))
	for i := range t.Characters {
		if t.Characters[i].Kind == ElementCharacter {
			rs = append(rs, t.Characters[i].Char)
		}
	}
	return string(rs)
}

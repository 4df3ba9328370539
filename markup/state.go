package markup

import (
	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
)

// Alignment is a horizontal line alignment.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	// AlignJustified distributes leftover width over breakable characters;
	// the last line of a paragraph stays left-aligned.
	AlignJustified
	// AlignFlush justifies every line including the last.
	AlignFlush
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustified:
		return "justified"
	case AlignFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// ParseAlignment parses an alignment name (case-insensitive).
func ParseAlignment(s string) (Alignment, bool) {
	switch Hash(s) {
	case Hash("left"):
		return AlignLeft, true
	case Hash("center"):
		return AlignCenter, true
	case Hash("right"):
		return AlignRight, true
	case Hash("justified"):
		return AlignJustified, true
	case Hash("flush"):
		return AlignFlush, true
	}
	return 0, false
}

// FontRef is the font asset and material used for a run of text.
type FontRef struct {
	Asset    *fontasset.Asset
	Material *fontasset.Material
}

// InterpreterState is the complete tag state of one layout invocation.
// It holds no global data; Clone gives an independent snapshot for
// word-wrap restarts.
type InterpreterState struct {
	Font               Stack[FontRef]
	Color              Stack[textmesh.RGBA]
	UnderlineColor     Stack[textmesh.RGBA]
	StrikethroughColor Stack[textmesh.RGBA]
	HighlightColor     Stack[textmesh.RGBA]
	Gradient           Stack[*fontasset.Gradient]
	Size               Stack[float64]
	Indent             Stack[float64]
	FontWeight         Stack[int]
	BaselineOffset     Stack[float64]
	Justification      Stack[Alignment]
	Rotation           Stack[float64]
	Scale              Stack[float64]
	Links              Stack[string]
	Actions            Stack[uint32]
	Styles             StyleStack

	// FontScaleMultiplier is the product of active sub/superscript scales.
	FontScaleMultiplier float64

	CharacterSpacing float64
	Monospace        float64
	LineIndent       float64
	MarginLeft       float64
	MarginRight      float64
	VOffset          float64
	Width            float64

	// LineHeight overrides the line advance while HasLineHeight is set.
	LineHeight    float64
	HasLineHeight bool

	NoBreak bool
	NoParse bool
}

// Defaults are the bottom values of every stack.
type Defaults struct {
	Font      FontRef
	Color     textmesh.RGBA
	Size      float64
	Alignment Alignment
	Styles    StyleFlags
	Weight    int
}

// NewInterpreterState returns a state with every stack at its default.
func NewInterpreterState(d Defaults) *InterpreterState {
	s := &InterpreterState{}
	s.Reset(d)
	return s
}

// Reset returns every stack and scalar to its default.
func (s *InterpreterState) Reset(d Defaults) {
	if d.Weight == 0 {
		d.Weight = 400
	}
	s.Font.Reset(d.Font)
	s.Color.Reset(d.Color)
	s.UnderlineColor.Reset(d.Color)
	s.StrikethroughColor.Reset(d.Color)
	s.HighlightColor.Reset(defaultHighlight)
	s.Gradient.Reset(nil)
	s.Size.Reset(d.Size)
	s.Indent.Reset(0)
	s.FontWeight.Reset(d.Weight)
	s.BaselineOffset.Reset(0)
	s.Justification.Reset(d.Alignment)
	s.Rotation.Reset(0)
	s.Scale.Reset(1)
	s.Links.Reset("")
	s.Actions.Reset(0)
	s.Styles.Reset(d.Styles)

	s.FontScaleMultiplier = 1
	s.CharacterSpacing = 0
	s.Monospace = 0
	s.LineIndent = 0
	s.MarginLeft = 0
	s.MarginRight = 0
	s.VOffset = 0
	s.Width = 0
	s.LineHeight = 0
	s.HasLineHeight = false
	s.NoBreak = false
	s.NoParse = false
}

// Clone returns a deep copy.
func (s *InterpreterState) Clone() *InterpreterState {
	c := *s
	c.Font = s.Font.Clone()
	c.Color = s.Color.Clone()
	c.UnderlineColor = s.UnderlineColor.Clone()
	c.StrikethroughColor = s.StrikethroughColor.Clone()
	c.HighlightColor = s.HighlightColor.Clone()
	c.Gradient = s.Gradient.Clone()
	c.Size = s.Size.Clone()
	c.Indent = s.Indent.Clone()
	c.FontWeight = s.FontWeight.Clone()
	c.BaselineOffset = s.BaselineOffset.Clone()
	c.Justification = s.Justification.Clone()
	c.Rotation = s.Rotation.Clone()
	c.Scale = s.Scale.Clone()
	c.Links = s.Links.Clone()
	c.Actions = s.Actions.Clone()
	return &c
}

// Depth returns the total number of pushed frames over all stacks.
// A balanced markup run leaves it unchanged.
func (s *InterpreterState) Depth() int {
	return s.Font.Depth() + s.Color.Depth() + s.UnderlineColor.Depth() +
		s.StrikethroughColor.Depth() + s.HighlightColor.Depth() +
		s.Gradient.Depth() + s.Size.Depth() + s.Indent.Depth() +
		s.FontWeight.Depth() + s.BaselineOffset.Depth() +
		s.Justification.Depth() + s.Rotation.Depth() + s.Scale.Depth() +
		s.Links.Depth() + s.Actions.Depth() + s.Styles.Depth()
}

// FontSize returns the effective font size: the size stack scaled by
// active sub/superscript multipliers.
func (s *InterpreterState) FontSize() float64 {
	return s.Size.Current() * s.FontScaleMultiplier
}

// Baseline returns the total vertical offset of the baseline (y up).
func (s *InterpreterState) Baseline() float64 {
	return s.BaselineOffset.Current() + s.VOffset
}

var defaultHighlight = textmesh.RGBA{R: 1, G: 1, B: 0, A: 0.25}

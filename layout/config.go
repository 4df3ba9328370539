package layout

import (
	"golang.org/x/text/language"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/markup"
)

// Alignment is the horizontal line alignment.
type Alignment = markup.Alignment

// Horizontal alignments.
const (
	AlignLeft      = markup.AlignLeft
	AlignCenter    = markup.AlignCenter
	AlignRight     = markup.AlignRight
	AlignJustified = markup.AlignJustified
	AlignFlush     = markup.AlignFlush
)

// VerticalAlignment positions the text block within the container height.
type VerticalAlignment uint8

const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
	// AlignBaseline puts the first baseline on the container's vertical center.
	AlignBaseline
)

// String returns the alignment name.
func (v VerticalAlignment) String() string {
	switch v {
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	case AlignBaseline:
		return "baseline"
	default:
		return "unknown"
	}
}

// Overflow selects what happens to text that does not fit the container.
type Overflow uint8

const (
	// OverflowVisible renders past the container.
	OverflowVisible Overflow = iota
	// OverflowEllipsis ends the last fitting line with an ellipsis.
	OverflowEllipsis
	// OverflowMasking renders everything and reports a clip rectangle.
	OverflowMasking
	// OverflowTruncate hides what does not fit.
	OverflowTruncate
	// OverflowScrollRect is like masking, for scrolling containers.
	OverflowScrollRect
	// OverflowPage moves lines that do not fit to a new page.
	OverflowPage
	// OverflowLinked stops at the container and reports where the rest of
	// the text starts, for continuation in a linked container.
	OverflowLinked
)

var overflowNames = [...]string{"overflow", "ellipsis", "masking", "truncate", "scrollrect", "page", "linked"}

// String returns the overflow mode name.
func (o Overflow) String() string {
	if int(o) < len(overflowNames) {
		return overflowNames[o]
	}
	return "unknown"
}

// Direction is the base text direction.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
	// DirectionAuto uses the first strong character of the text.
	DirectionAuto
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	case DirectionAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Margins are insets from the container edges.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// Default forbidden characters for East Asian line breaking.
const (
	DefaultLeadingForbidden   = "!%),.:;?]}¢°·'\"†‡›℃∶、。〃〆〕〗〞﹚﹜！＂％＇），．：；？！］｝～」』】〉》ーァィゥェォッャュョヮヵヶぁぃぅぇぉっゃゅょゎゕゖ々〻‼…"
	DefaultFollowingForbidden = "$(£¥·'\"〈《「『【〔〖〝﹙﹛＄（．［｛￡￥"
)

// Config holds every recognized layout option.
type Config struct {
	// Font is the primary font asset. Required.
	Font *fontasset.Asset

	// Material overrides the font asset's material.
	Material *fontasset.Material

	// Settings supplies the global fallback cascade and sprite asset.
	Settings *fontasset.Settings

	// Resolver resolves assets named by markup tags.
	Resolver fontasset.Resolver

	// Sprites is the default sprite asset for <sprite> tags.
	Sprites *fontasset.SpriteAsset

	// StyleSheet backs <style=name> tags.
	StyleSheet *markup.StyleSheet

	// FontStyle is always on.
	FontStyle markup.StyleFlags
	Color     textmesh.RGBA

	// FontSize is the point size. With AutoSize the size is searched in
	// [FontSizeMin, FontSizeMax] instead.
	FontSize    float64
	AutoSize    bool
	FontSizeMin float64
	FontSizeMax float64

	// Width and Height of the container. Zero means unbounded.
	Width, Height float64
	Margins       Margins

	Alignment         Alignment
	VerticalAlignment VerticalAlignment
	Overflow          Overflow
	WordWrap          bool

	// WrapRatio is the share of justification space given to characters
	// rather than spaces. Default: 0.4
	WrapRatio float64

	RichText     bool
	ParseEscapes bool
	Kerning      bool

	// Spacing values are in hundredths of an em.
	CharacterSpacing float64
	WordSpacing      float64
	LineSpacing      float64
	ParagraphSpacing float64

	// Limits on visible output. Zero means unlimited.
	MaxVisibleCharacters int
	MaxVisibleWords      int
	MaxVisibleLines      int

	// PageToDisplay is the 1-based page shown in OverflowPage mode.
	PageToDisplay int

	Direction Direction

	// Language selects case mappings for uppercase/lowercase/smallcaps.
	Language language.Tag

	// Ellipsis is the character appended in OverflowEllipsis mode.
	// Default: U+2026
	Ellipsis rune

	LeadingForbidden   string
	FollowingForbidden string

	// MaxPasses caps layout retries (auto-size steps, ellipsis
	// regeneration). Default: 20
	MaxPasses int

	// MaxVerticesPerBuffer splits mesh buckets. Default: 65532
	MaxVerticesPerBuffer int

	// ReportUnbalancedTags logs closing tags that have no opening tag.
	ReportUnbalancedTags bool
}

// DefaultConfig returns a configuration for font at size 36.
func DefaultConfig(font *fontasset.Asset) Config {
	return Config{
		Font:                 font,
		Color:                textmesh.White,
		FontSize:             36,
		FontSizeMin:          18,
		FontSizeMax:          72,
		WordWrap:             true,
		WrapRatio:            0.4,
		RichText:             true,
		Kerning:              true,
		PageToDisplay:        1,
		Ellipsis:             '\u2026',
		LeadingForbidden:     DefaultLeadingForbidden,
		FollowingForbidden:   DefaultFollowingForbidden,
		MaxPasses:            20,
		MaxVerticesPerBuffer: 65532,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Font == nil {
		return ErrNilFont
	}
	if c.FontSize <= 0 && !c.AutoSize {
		return &ConfigError{Field: "FontSize", Reason: "must be positive"}
	}
	if c.AutoSize {
		if c.FontSizeMin <= 0 {
			return &ConfigError{Field: "FontSizeMin", Reason: "must be positive"}
		}
		if c.FontSizeMax < c.FontSizeMin {
			return &ConfigError{Field: "FontSizeMax", Reason: "must be at least FontSizeMin"}
		}
	}
	if c.Width < 0 {
		return &ConfigError{Field: "Width", Reason: "must be non-negative"}
	}
	if c.Height < 0 {
		return &ConfigError{Field: "Height", Reason: "must be non-negative"}
	}
	if c.WrapRatio < 0 || c.WrapRatio > 1 {
		return &ConfigError{Field: "WrapRatio", Reason: "must be in [0, 1]"}
	}
	if c.MaxVisibleCharacters < 0 || c.MaxVisibleWords < 0 || c.MaxVisibleLines < 0 {
		return &ConfigError{Field: "MaxVisible", Reason: "must be non-negative"}
	}
	if c.PageToDisplay < 0 {
		return &ConfigError{Field: "PageToDisplay", Reason: "must be non-negative"}
	}
	if c.MaxPasses < 1 {
		return &ConfigError{Field: "MaxPasses", Reason: "must be at least 1"}
	}
	if c.MaxVerticesPerBuffer < 4 {
		return &ConfigError{Field: "MaxVerticesPerBuffer", Reason: "must be at least 4"}
	}
	if c.Direction > DirectionAuto {
		return &ConfigError{Field: "Direction", Reason: "unknown direction"}
	}
	if c.Overflow > OverflowLinked {
		return &ConfigError{Field: "Overflow", Reason: "unknown overflow mode"}
	}
	return nil
}

// material returns the material for the primary font.
func (c *Config) material() *fontasset.Material {
	if c.Material != nil {
		return c.Material
	}
	return c.Font.Material()
}

// sprites returns the default sprite asset.
func (c *Config) sprites() *fontasset.SpriteAsset {
	if c.Sprites != nil {
		return c.Sprites
	}
	if c.Settings != nil {
		return c.Settings.Sprites
	}
	return nil
}

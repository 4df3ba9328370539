package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/markup"
)

type optionSetter func(c *Config, value string) error

// options maps the recognized option names to setters.
var options = map[string]optionSetter{
	"fontSize":             floatOption(func(c *Config) *float64 { return &c.FontSize }),
	"fontSizeMin":          floatOption(func(c *Config) *float64 { return &c.FontSizeMin }),
	"fontSizeMax":          floatOption(func(c *Config) *float64 { return &c.FontSizeMax }),
	"autoSize":             boolOption(func(c *Config) *bool { return &c.AutoSize }),
	"width":                floatOption(func(c *Config) *float64 { return &c.Width }),
	"height":               floatOption(func(c *Config) *float64 { return &c.Height }),
	"marginLeft":           floatOption(func(c *Config) *float64 { return &c.Margins.Left }),
	"marginTop":            floatOption(func(c *Config) *float64 { return &c.Margins.Top }),
	"marginRight":          floatOption(func(c *Config) *float64 { return &c.Margins.Right }),
	"marginBottom":         floatOption(func(c *Config) *float64 { return &c.Margins.Bottom }),
	"wordWrap":             boolOption(func(c *Config) *bool { return &c.WordWrap }),
	"wrapRatio":            floatOption(func(c *Config) *float64 { return &c.WrapRatio }),
	"richText":             boolOption(func(c *Config) *bool { return &c.RichText }),
	"parseEscapes":         boolOption(func(c *Config) *bool { return &c.ParseEscapes }),
	"kerning":              boolOption(func(c *Config) *bool { return &c.Kerning }),
	"characterSpacing":     floatOption(func(c *Config) *float64 { return &c.CharacterSpacing }),
	"wordSpacing":          floatOption(func(c *Config) *float64 { return &c.WordSpacing }),
	"lineSpacing":          floatOption(func(c *Config) *float64 { return &c.LineSpacing }),
	"paragraphSpacing":     floatOption(func(c *Config) *float64 { return &c.ParagraphSpacing }),
	"maxVisibleCharacters": intOption(func(c *Config) *int { return &c.MaxVisibleCharacters }),
	"maxVisibleWords":      intOption(func(c *Config) *int { return &c.MaxVisibleWords }),
	"maxVisibleLines":      intOption(func(c *Config) *int { return &c.MaxVisibleLines }),
	"pageToDisplay":        intOption(func(c *Config) *int { return &c.PageToDisplay }),
	"maxPasses":            intOption(func(c *Config) *int { return &c.MaxPasses }),
	"reportUnbalancedTags": boolOption(func(c *Config) *bool { return &c.ReportUnbalancedTags }),

	"alignment": func(c *Config, v string) error {
		a, ok := markup.ParseAlignment(v)
		if !ok {
			return fmt.Errorf("unknown alignment %q", v)
		}
		c.Alignment = a
		return nil
	},
	"verticalAlignment": func(c *Config, v string) error {
		for _, va := range []VerticalAlignment{AlignTop, AlignMiddle, AlignBottom, AlignBaseline} {
			if strings.EqualFold(v, va.String()) {
				c.VerticalAlignment = va
				return nil
			}
		}
		return fmt.Errorf("unknown vertical alignment %q", v)
	},
	"overflowMode": func(c *Config, v string) error {
		for i, name := range overflowNames {
			if strings.EqualFold(v, name) {
				c.Overflow = Overflow(i)
				return nil
			}
		}
		return fmt.Errorf("unknown overflow mode %q", v)
	},
	"direction": func(c *Config, v string) error {
		for _, d := range []Direction{DirectionLTR, DirectionRTL, DirectionAuto} {
			if strings.EqualFold(v, d.String()) {
				c.Direction = d
				return nil
			}
		}
		return fmt.Errorf("unknown direction %q", v)
	},
	"isRightToLeft": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Direction = DirectionLTR
		if b {
			c.Direction = DirectionRTL
		}
		return nil
	},
	"color": func(c *Config, v string) error {
		col, ok := textmesh.ParseColor(v)
		if !ok {
			return fmt.Errorf("invalid color %q", v)
		}
		c.Color = col
		return nil
	},
	"fontStyle": func(c *Config, v string) error {
		f, err := parseStyles(v)
		if err != nil {
			return err
		}
		c.FontStyle = f
		return nil
	},
	"language": func(c *Config, v string) error {
		tag, err := language.Parse(v)
		if err != nil {
			return err
		}
		c.Language = tag
		return nil
	},
	"ellipsis": func(c *Config, v string) error {
		r, size := utf8.DecodeRuneInString(v)
		if size == 0 || size != len(v) {
			return fmt.Errorf("ellipsis must be one character, got %q", v)
		}
		c.Ellipsis = r
		return nil
	},
}

// OptionNames returns the recognized option names, sorted.
func OptionNames() []string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetOption sets a recognized option from its string form. Unknown names
// are ignored; malformed values return a *ConfigError.
func (c *Config) SetOption(name, value string) error {
	set, ok := options[name]
	if !ok {
		textmesh.Logger().Debug("layout: ignoring unknown option", "name", name)
		return nil
	}
	if err := set(c, strings.TrimSpace(value)); err != nil {
		return &ConfigError{Field: name, Reason: err.Error()}
	}
	return nil
}

// ApplyOptions sets every option in opts, in name order, stopping at the
// first malformed value.
func (c *Config) ApplyOptions(opts map[string]string) error {
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.SetOption(name, opts[name]); err != nil {
			return err
		}
	}
	return nil
}

func floatOption(field func(*Config) *float64) optionSetter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func intOption(field func(*Config) *int) optionSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolOption(field func(*Config) *bool) optionSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// parseStyles parses "bold|italic" style lists.
func parseStyles(v string) (markup.StyleFlags, error) {
	var f markup.StyleFlags
	for part := range strings.FieldsFuncSeq(v, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
		switch strings.ToLower(part) {
		case "normal":
		case "bold":
			f |= markup.Bold
		case "italic":
			f |= markup.Italic
		case "underline":
			f |= markup.Underline
		case "strikethrough":
			f |= markup.Strikethrough
		case "highlight":
			f |= markup.Highlight
		case "uppercase":
			f |= markup.Uppercase
		case "lowercase":
			f |= markup.Lowercase
		case "smallcaps":
			f |= markup.SmallCaps
		default:
			return 0, fmt.Errorf("unknown style %q", part)
		}
	}
	return f, nil
}

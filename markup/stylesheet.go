package markup

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	styleLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[{}=;]`},
	})

	styleParser = participle.MustBuild[styleFile](
		participle.Lexer(styleLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

type styleFile struct {
	Styles []*styleDecl `parser:"@@*"`
}

type styleDecl struct {
	Pos    lexer.Position `parser:""`
	Name   quoted         `parser:"'style' @(String | Ident)"`
	Fields []*styleField  `parser:"'{' ( @@ ';'? )* '}'"`
}

type styleField struct {
	Pos   lexer.Position `parser:""`
	Key   string         `parser:"@Ident '='"`
	Value quoted         `parser:"@String"`
}

// quoted unquotes Go-style strings on capture; bare identifiers pass
// through unchanged.
type quoted string

// Capture implements participle.Capture.
func (q *quoted) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("empty capture")
	}
	v := values[0]
	if len(v) > 0 && v[0] == '"' {
		s, err := strconv.Unquote(v)
		if err != nil {
			return err
		}
		v = s
	}
	*q = quoted(v)
	return nil
}

// Style is a named pair of markup fragments substituted for
// <style=Name> and </style>.
type Style struct {
	Name  string
	Open  []rune
	Close []rune
}

// StyleSheet is a set of styles keyed by name hash.
type StyleSheet struct {
	styles map[uint32]*Style
	order  []string
}

// NewStyleSheet returns a sheet holding the given styles. Later styles
// replace earlier ones with the same name.
func NewStyleSheet(styles ...Style) *StyleSheet {
	s := &StyleSheet{styles: make(map[uint32]*Style, len(styles))}
	for _, st := range styles {
		s.Add(st)
	}
	return s
}

// Add registers st.
func (s *StyleSheet) Add(st Style) {
	h := Hash(st.Name)
	if _, ok := s.styles[h]; !ok {
		s.order = append(s.order, st.Name)
	}
	s.styles[h] = &st
}

// Style returns the style with the given name hash.
func (s *StyleSheet) Style(hash uint32) (*Style, bool) {
	if s == nil {
		return nil, false
	}
	st, ok := s.styles[hash]
	return st, ok
}

// Lookup returns the style named name (case-insensitive).
func (s *StyleSheet) Lookup(name string) (*Style, bool) {
	return s.Style(Hash(name))
}

// Names returns style names in registration order.
func (s *StyleSheet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Len returns the number of styles.
func (s *StyleSheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.styles)
}

// ParseStyleSheet parses a style sheet:
//
//	// comment
//	style "H1" { open = "<size=2em><b>" close = "</b></size>" }
//	style Quote { open = "<i><color=#888>"; close = "</color></i>" }
func ParseStyleSheet(r io.Reader) (*StyleSheet, error) {
	f, err := styleParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse style sheet: %w", err)
	}
	return buildStyleSheet(f)
}

// ParseStyleSheetString parses a style sheet from a string.
func ParseStyleSheetString(src string) (*StyleSheet, error) {
	f, err := styleParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("markup: parse style sheet: %w", err)
	}
	return buildStyleSheet(f)
}

func buildStyleSheet(f *styleFile) (*StyleSheet, error) {
	sheet := NewStyleSheet()
	for _, d := range f.Styles {
		st := Style{Name: string(d.Name)}
		if st.Name == "" {
			return nil, &StyleError{Pos: d.Pos.String(), Reason: "empty style name"}
		}
		for _, fld := range d.Fields {
			switch Hash(fld.Key) {
			case Hash("open"):
				st.Open = []rune(string(fld.Value))
			case Hash("close"):
				st.Close = []rune(string(fld.Value))
			default:
				return nil, &StyleError{
					Pos:    fld.Pos.String(),
					Style:  st.Name,
					Reason: fmt.Sprintf("unknown field %q", fld.Key),
				}
			}
		}
		sheet.Add(st)
	}
	return sheet, nil
}

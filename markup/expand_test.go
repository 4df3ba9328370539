package markup

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

const sheetSource = `
// headings
style "H1" { open = "<size=2em><b>" close = "</b></size>" }
style Quote {
	open = "<i><color=#888>";
	close = "</color></i>"
}
style Nested { open = "<style=H1>[" close = "]</style>" }
`

func TestParseStyleSheet(t *testing.T) {
	sheet, err := ParseStyleSheetString(sheetSource)
	if err != nil {
		t.Fatalf("ParseStyleSheetString: %v", err)
	}
	if sheet.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sheet.Len())
	}
	if got := sheet.Names(); !slices.Equal(got, []string{"H1", "Quote", "Nested"}) {
		t.Errorf("Names() = %v", got)
	}
	h1, ok := sheet.Lookup("h1")
	if !ok {
		t.Fatal("Lookup(h1) failed")
	}
	if string(h1.Open) != "<size=2em><b>" || string(h1.Close) != "</b></size>" {
		t.Errorf("H1 = %q / %q", string(h1.Open), string(h1.Close))
	}
}

func TestParseStyleSheetErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", `style A { colour = "x" }`},
		{"missing brace", `style A { open = "x"`},
		{"missing value", `style A { open = }`},
		{"empty name", `style "" { open = "x" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseStyleSheet(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
	_, err := ParseStyleSheetString(`style A { colour = "x" }`)
	var se *StyleError
	if !errors.As(err, &se) || se.Style != "A" {
		t.Errorf("error = %v, want *StyleError for A", err)
	}
}

func TestExpand(t *testing.T) {
	sheet, err := ParseStyleSheetString(sheetSource)
	if err != nil {
		t.Fatal(err)
	}
	opts := ExpandOptions{RichText: true, Escapes: true, Styles: sheet}
	tests := []struct {
		name string
		in   string
		want string
		opts ExpandOptions
	}{
		{"plain", "abc", "abc", opts},
		{"style", "<style=H1>T</style>", "<size=2em><b>T</b></size>", opts},
		{"nested style", "<style=nested>x</style>", "<size=2em><b>[x]</b></size>", opts},
		{"unknown style", "<style=Nope>x</style>", "<style=Nope>x", opts},
		{"substitutions", "a<br>b<nbsp>c<zwsp>d<shy>e<zwj>", "a\nb\u00A0c\u200Bd\u00ADe\u200D", opts},
		{"other tags kept", "<b>x</b>", "<b>x</b>", opts},
		{"escapes", `a\nb\tc\\dA\U0001F600`, "a\nb\tc\\dA\U0001F600", opts},
		{"bad escape", `\q\u12`, `\q\u12`, opts},
		{"noparse", "<noparse><br>\\n</noparse><br>", "<noparse><br>\\n</noparse>\n", opts},
		{"rich text off", "<br>\\n", "<br>\n", ExpandOptions{Escapes: true}},
		{"escapes off", "<br>\\n", "\n\\n", ExpandOptions{RichText: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand([]rune(tt.in), tt.opts)
			if string(got.Text) != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, string(got.Text), tt.want)
			}
			if len(got.Source) != len(got.Text) {
				t.Fatalf("len(Source) = %d, len(Text) = %d", len(got.Source), len(got.Text))
			}
			for i := 1; i < len(got.Source); i++ {
				if got.Source[i] < got.Source[i-1] {
					t.Fatalf("Source not monotonic at %d: %v", i, got.Source)
				}
			}
		})
	}
}

func TestExpandSourceIndices(t *testing.T) {
	got := Expand([]rune("a<br>b\\tc"), ExpandOptions{RichText: true, Escapes: true})
	want := []int{0, 1, 5, 6, 8}
	if !slices.Equal(got.Source, want) {
		t.Errorf("Source = %v, want %v", got.Source, want)
	}
}

func TestExpandRecursiveStyleBounded(t *testing.T) {
	sheet := NewStyleSheet(Style{Name: "Loop", Open: []rune("<style=Loop>")})
	got := Expand([]rune("<style=Loop>x"), ExpandOptions{RichText: true, Styles: sheet})
	if !strings.HasSuffix(string(got.Text), "<style=Loop>x") {
		t.Errorf("Expand = %q", string(got.Text))
	}
}

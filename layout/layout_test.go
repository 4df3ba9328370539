package layout

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/internal/testfont"
	"github.com/gogpu/textmesh/markup"
	"github.com/gogpu/textmesh/typeface"
)

// The test face samples at 10px: at FontSize 10 every glyph advances 10,
// has an 8x8 ink box starting at x=1 and the line is 10 high with the
// baseline 8 below its top.

func newTestFont(t testing.TB) *fontasset.Asset {
	t.Helper()
	face := testfont.New()
	a, err := fontasset.New(face,
		fontasset.WithRasterizer(face),
		fontasset.WithAtlas(atlas.Config{Width: 256, Height: 256, Padding: 1, MaxPages: 1}))
	if err != nil {
		t.Fatalf("fontasset.New: %v", err)
	}
	return a
}

func testConfig(t testing.TB) Config {
	t.Helper()
	cfg := DefaultConfig(newTestFont(t))
	cfg.FontSize = 10
	return cfg
}

func generate(t testing.TB, text string, cfg Config) *TextInfo {
	t.Helper()
	info, err := Generate(context.Background(), text, cfg)
	if err != nil {
		t.Fatalf("Generate(%q): %v", text, err)
	}
	return info
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func lineText(info *TextInfo, li int) string {
	ln := info.Lines[li]
	return runeText(info.Characters[ln.FirstCharacterIndex : ln.LastCharacterIndex+1])
}

func TestGenerateSingleLine(t *testing.T) {
	info := generate(t, "AB", testConfig(t))

	if got := info.CharacterCount(); got != 2 {
		t.Fatalf("CharacterCount() = %d, want 2", got)
	}
	if got := info.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	a, b := info.Characters[0], info.Characters[1]
	if a.TopLeft != textmesh.Pt(1, 0) || a.BottomRight != textmesh.Pt(9, 8) {
		t.Errorf("A quad = %v..%v, want (1,0)..(9,8)", a.TopLeft, a.BottomRight)
	}
	if b.Origin != 10 || b.XAdvance != 20 {
		t.Errorf("B pen = %v..%v, want 10..20", b.Origin, b.XAdvance)
	}
	ln := info.Lines[0]
	if ln.Baseline != 8 || ln.Ascender != 0 || ln.Descender != 10 {
		t.Errorf("line metrics = %v/%v/%v, want 0/8/10", ln.Ascender, ln.Baseline, ln.Descender)
	}
	if ln.Length != 20 {
		t.Errorf("Length = %v, want 20", ln.Length)
	}
	if info.PreferredSize != (Size{Width: 20, Height: 10}) {
		t.Errorf("PreferredSize = %+v, want 20x10", info.PreferredSize)
	}
	if info.Passes != 1 {
		t.Errorf("Passes = %d, want 1", info.Passes)
	}
}

func TestGenerateCharacterWrap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 15
	info := generate(t, "AB", cfg)

	if got := info.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	b := info.Characters[1]
	if b.Line != 1 {
		t.Errorf("B on line %d, want 1", b.Line)
	}
	if b.TopLeft != textmesh.Pt(1, 10) {
		t.Errorf("B TopLeft = %v, want (1,10)", b.TopLeft)
	}
}

func TestGenerateWordWrap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 60
	info := generate(t, "hello world", cfg)

	if got := info.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	if got := lineText(info, 0); got != "hello " {
		t.Errorf("line 0 = %q, want %q", got, "hello ")
	}
	if got := lineText(info, 1); got != "world" {
		t.Errorf("line 1 = %q, want %q", got, "world")
	}
	if got := info.Lines[0].Length; got != 50 {
		t.Errorf("line 0 Length = %v, want 50 (trailing space excluded)", got)
	}
	if got := info.WordCount(); got != 2 {
		t.Errorf("WordCount() = %d, want 2", got)
	}
	if info.Words[1].Text != "world" {
		t.Errorf("Words[1] = %q, want %q", info.Words[1].Text, "world")
	}
}

func TestGenerateNoWrapOverflows(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 15
	cfg.WordWrap = false
	info := generate(t, "AB", cfg)

	if got := info.LineCount(); got != 1 {
		t.Errorf("LineCount() = %d, want 1", got)
	}
	if info.FirstOverflowCharacterIndex != 1 {
		t.Errorf("FirstOverflowCharacterIndex = %d, want 1", info.FirstOverflowCharacterIndex)
	}
	if !info.Characters[1].Visible {
		t.Error("overflowing character hidden in visible mode")
	}
}

func TestGenerateJustifiedTolerance(t *testing.T) {
	tests := []struct {
		align     Alignment
		wantLines int
	}{
		{AlignLeft, 2},
		{AlignJustified, 1},
		{AlignFlush, 1},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Width = 38
			cfg.Alignment = tt.align
			info := generate(t, "AAAA", cfg)
			if got := info.LineCount(); got != tt.wantLines {
				t.Errorf("LineCount() = %d, want %d", got, tt.wantLines)
			}
		})
	}
}

func TestGenerateLineFeed(t *testing.T) {
	tests := []struct {
		text      string
		wantLines int
	}{
		{"A\nB", 2},
		{"A\n", 2},
		{"A\n\nB", 3},
		{"A<br>B", 2},
		{"A<page>B", 2},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			info := generate(t, tt.text, testConfig(t))
			if got := info.LineCount(); got != tt.wantLines {
				t.Errorf("LineCount() = %d, want %d", got, tt.wantLines)
			}
			if tt.wantLines > 1 && !info.Lines[0].EndsParagraph {
				t.Error("line ended by a line feed does not end a paragraph")
			}
		})
	}
}

func TestGenerateParagraphSpacing(t *testing.T) {
	cfg := testConfig(t)
	cfg.LineSpacing = 10
	cfg.ParagraphSpacing = 50
	info := generate(t, "A\nB", cfg)
	// 10 line + 1 line spacing + 5 paragraph spacing.
	if got := info.Lines[1].Ascender; !near(got, 16) {
		t.Errorf("second line top = %v, want 16", got)
	}
}

func TestGenerateHorizontalAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		wantX float64
	}{
		{AlignLeft, 1},
		{AlignCenter, 11},
		{AlignRight, 21},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Width = 40
			cfg.Alignment = tt.align
			info := generate(t, "AB", cfg)
			if got := info.Characters[0].TopLeft.X; got != tt.wantX {
				t.Errorf("A left = %v, want %v", got, tt.wantX)
			}
		})
	}
}

func TestGenerateJustify(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 55
	cfg.Alignment = AlignJustified
	info := generate(t, "AA AA AA", cfg)

	if got := info.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	// Line 0 is "AA AA " with 5px to spread: 60% to the one space gap,
	// 40% over the three character gaps.
	if got := info.Characters[4].XAdvance; !near(got, 55) {
		t.Errorf("last justified character ends at %v, want 55", got)
	}
	if got := info.Characters[3].Origin; !near(got, 33+4.0/3) {
		t.Errorf("first character after the space starts at %v, want %v", got, 33+4.0/3)
	}
	// The paragraph's last line stays left aligned.
	if got := info.Characters[6].Origin; got != 0 {
		t.Errorf("last line starts at %v, want 0", got)
	}

	cfg.Alignment = AlignFlush
	info = generate(t, "AA AA AA", cfg)
	if got := info.Characters[7].XAdvance; !near(got, 55) {
		t.Errorf("flush last line ends at %v, want 55", got)
	}
}

func TestGenerateMargins(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 40
	cfg.Margins = Margins{Left: 5, Top: 3, Right: 5}
	info := generate(t, "AB", cfg)

	if got := info.Characters[0].TopLeft; got != textmesh.Pt(6, 3) {
		t.Errorf("A TopLeft = %v, want (6,3)", got)
	}
	if info.Lines[0].Width != 30 {
		t.Errorf("line Width = %v, want 30", info.Lines[0].Width)
	}
}

func TestGenerateVerticalAlignment(t *testing.T) {
	tests := []struct {
		align   VerticalAlignment
		wantTop float64
	}{
		{AlignTop, 0},
		{AlignMiddle, 20},
		{AlignBottom, 40},
		{AlignBaseline, 17},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Height = 50
			cfg.VerticalAlignment = tt.align
			info := generate(t, "A", cfg)
			if got := info.Lines[0].Ascender; got != tt.wantTop {
				t.Errorf("line top = %v, want %v", got, tt.wantTop)
			}
		})
	}
}

func TestGenerateBold(t *testing.T) {
	info := generate(t, "<b>X</b>Y", testConfig(t))

	x, y := info.Characters[0], info.Characters[1]
	if !x.Styles.Has(markup.Bold) || x.Weight != 700 {
		t.Errorf("X styles = %v weight %d, want bold 700", x.Styles, x.Weight)
	}
	if y.Styles.Has(markup.Bold) || y.Weight != 400 {
		t.Errorf("Y styles = %v weight %d, want regular 400", y.Styles, y.Weight)
	}
	// Emulated bold adds 7% of an em of spacing and 0.75% of padding.
	if !near(x.XAdvance, 10.7) {
		t.Errorf("X XAdvance = %v, want 10.7", x.XAdvance)
	}
	if !near(x.TopLeft.X, 0.925) {
		t.Errorf("X left = %v, want 0.925", x.TopLeft.X)
	}
	if !near(y.Origin, 10.7) {
		t.Errorf("Y Origin = %v, want 10.7", y.Origin)
	}
}

func TestGenerateItalicShear(t *testing.T) {
	info := generate(t, "<i>X</i>", testConfig(t))
	x := info.Characters[0]
	if !near(x.TopLeft.X, 3.8) || !near(x.BottomLeft.X, 1) {
		t.Errorf("italic left edge = %v top, %v bottom; want 3.8, 1", x.TopLeft.X, x.BottomLeft.X)
	}
}

func TestGenerateColorRestore(t *testing.T) {
	info := generate(t, "<color=#FF0000>A</color>B", testConfig(t))
	if got := info.Characters[0].Color; got != textmesh.Red {
		t.Errorf("A color = %v, want red", got)
	}
	if got := info.Characters[1].Color; got != textmesh.White {
		t.Errorf("B color = %v, want white", got)
	}
}

func TestGenerateUnknownTagIsLiteral(t *testing.T) {
	tests := []string{"<foo>bar", "a < b", "<color=nope>x", "</b>x"}
	want := []string{"<foo>bar", "a < b", "<color=nope>x", "x"}
	for i, text := range tests {
		info := generate(t, text, testConfig(t))
		if got := info.Text(); got != want[i] {
			t.Errorf("Generate(%q).Text() = %q, want %q", text, got, want[i])
		}
	}
}

func TestGenerateRichTextOff(t *testing.T) {
	cfg := testConfig(t)
	cfg.RichText = false
	info := generate(t, "<b>x</b>", cfg)
	if got := info.Text(); got != "<b>x</b>" {
		t.Errorf("Text() = %q, want markup kept", got)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 80
	text := "<b>Hello</b> <u>wide</u> <color=#00FF00>world</color>\nagain"
	a := generate(t, text, cfg)
	b := generate(t, text, cfg)
	if !reflect.DeepEqual(a.Characters, b.Characters) {
		t.Error("character records differ between identical runs")
	}
	if !reflect.DeepEqual(a.Lines, b.Lines) {
		t.Error("line records differ between identical runs")
	}
	if !reflect.DeepEqual(a.Decorations, b.Decorations) {
		t.Error("decorations differ between identical runs")
	}
}

func TestGenerateSoftHyphen(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 35
	info := generate(t, "AB<shy>CD", cfg)
	if got := info.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	if got := lineText(info, 0); got != "AB-" {
		t.Errorf("line 0 = %q, want %q", got, "AB-")
	}
}

func TestGenerateSoftHyphenMustFit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"earlier break", "A B<shy>C", 30, []string{"A ", "B\u00ADC"}},
		{"no earlier break", "AB<shy>C", 25, []string{"AB\u00AD", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Width = tt.width
			info := generate(t, tt.text, cfg)

			if got := info.LineCount(); got != len(tt.want) {
				t.Fatalf("LineCount() = %d, want %d", got, len(tt.want))
			}
			for i, want := range tt.want {
				if got := lineText(info, i); got != want {
					t.Errorf("line %d = %q, want %q", i, got, want)
				}
			}
			for _, c := range info.Characters {
				if c.Ink && c.TopRight.X > tt.width+epsilon {
					t.Errorf("%q ends at %v, past the container", c.Char, c.TopRight.X)
				}
			}
		})
	}
}

func TestGenerateCasing(t *testing.T) {
	info := generate(t, "<uppercase>ab</uppercase><smallcaps>c</smallcaps>", testConfig(t))
	if got := info.Text(); got != "ABC" {
		t.Errorf("Text() = %q, want %q", got, "ABC")
	}
	if got := info.Characters[2].PointSize; !near(got, 8) {
		t.Errorf("small caps size = %v, want 8", got)
	}
}

func TestGenerateSuperscript(t *testing.T) {
	info := generate(t, "A<sup>2</sup>", testConfig(t))
	a, two := info.Characters[0], info.Characters[1]
	if two.PointSize != 5 {
		t.Errorf("superscript size = %v, want 5", two.PointSize)
	}
	if got := a.Baseline - two.Baseline; !near(got, 4) {
		t.Errorf("superscript raised by %v, want 4", got)
	}
}

func TestGenerateTab(t *testing.T) {
	info := generate(t, "A\tB", testConfig(t))
	if got := info.Characters[2].Origin; got != 40 {
		t.Errorf("B after tab at %v, want 40", got)
	}
}

func TestGenerateKerning(t *testing.T) {
	face := testfont.New()
	face.Kerning = map[uint64]typeface.PairAdjustment{
		typeface.PairKey('A', 'V'): {First: typeface.Adjustment{XAdvance: -2}},
	}
	font, err := fontasset.New(face, fontasset.WithRasterizer(face))
	if err != nil {
		t.Fatalf("fontasset.New: %v", err)
	}
	cfg := DefaultConfig(font)
	cfg.FontSize = 20

	info := generate(t, "AV", cfg)
	if got := info.Characters[1].Origin; got != 16 {
		t.Errorf("kerned V origin = %v, want 16", got)
	}
	cfg.Kerning = false
	info = generate(t, "AV", cfg)
	if got := info.Characters[1].Origin; got != 20 {
		t.Errorf("unkerned V origin = %v, want 20", got)
	}
}

func TestGenerateSprite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sprites = fontasset.NewSpriteAsset("Icons", 32, 16, []fontasset.Sprite{
		{Name: "smile", Rect: atlas.Rect{W: 16, H: 16}, BearingY: 16, Advance: 16},
	})
	info := generate(t, "A<sprite=0>B", cfg)

	if got := info.CharacterCount(); got != 3 {
		t.Fatalf("CharacterCount() = %d, want 3", got)
	}
	sp := info.Characters[1]
	if sp.Kind != ElementSprite || sp.Sprite != cfg.Sprites {
		t.Errorf("element 1 = %v from %v, want sprite", sp.Kind, sp.Sprite)
	}
	// The 16px sheet ascent is scaled to the 8px font ascent.
	if sp.XAdvance-sp.Origin != 8 {
		t.Errorf("sprite advance = %v, want 8", sp.XAdvance-sp.Origin)
	}
	if got := info.Characters[2].Origin; got != 18 {
		t.Errorf("B origin = %v, want 18", got)
	}
	if len(info.Meshes) != 2 {
		t.Errorf("len(Meshes) = %d, want 2 (font and sprite)", len(info.Meshes))
	}
}

func TestGenerateFallbackMaterial(t *testing.T) {
	primaryFace := testfont.New().Only('a')
	primary, err := fontasset.New(primaryFace, fontasset.WithRasterizer(primaryFace), fontasset.WithName("primary"))
	if err != nil {
		t.Fatalf("fontasset.New: %v", err)
	}
	fallbackFace := testfont.New().Only('b')
	fallback, err := fontasset.New(fallbackFace, fontasset.WithRasterizer(fallbackFace), fontasset.WithName("fallback"))
	if err != nil {
		t.Fatalf("fontasset.New: %v", err)
	}
	cfg := DefaultConfig(primary)
	cfg.Settings = &fontasset.Settings{Fallbacks: []*fontasset.Asset{fallback}}

	info := generate(t, "ab", cfg)
	b := info.Characters[1]
	if b.Asset != fallback || b.Material != fallback.Material() {
		t.Errorf("b resolved from %q with %q, want the fallback asset and material", b.Asset.Name(), b.Material.Name)
	}
	if len(info.Meshes) != 2 {
		t.Errorf("len(Meshes) = %d, want 2", len(info.Meshes))
	}
}

func TestGenerateVisibilityLimits(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		visible []bool
	}{
		{"characters", func(c *Config) { c.MaxVisibleCharacters = 2 }, []bool{true, true, false, false, false}},
		{"words", func(c *Config) { c.MaxVisibleWords = 1 }, []bool{true, true, false, false, false}},
		{"lines", func(c *Config) { c.Width = 25; c.MaxVisibleLines = 1 }, []bool{true, true, true, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			info := generate(t, "AB CD", cfg)
			for i, want := range tt.visible {
				if got := info.Characters[i].Visible; got != want {
					t.Errorf("Characters[%d].Visible = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestGenerateLinks(t *testing.T) {
	info := generate(t, `go <link="docs">here</link> now`, testConfig(t))
	if len(info.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(info.Links))
	}
	l := info.Links[0]
	if l.ID != "docs" || l.Text != "here" || l.FirstCharacterIndex != 3 || l.CharacterCount != 4 {
		t.Errorf("link = %+v, want docs/here at 3 len 4", l)
	}
}

func TestGenerateRightToLeft(t *testing.T) {
	cfg := testConfig(t)
	cfg.Direction = DirectionRTL
	info := generate(t, "AB", cfg)
	if !info.RightToLeft {
		t.Fatal("RightToLeft = false")
	}
	if a, b := info.Characters[0], info.Characters[1]; a.Origin != 10 || b.Origin != 0 {
		t.Errorf("mirrored origins = %v, %v; want 10, 0", a.Origin, b.Origin)
	}

	cfg.Direction = DirectionAuto
	if info := generate(t, "\u05D0\u05D1 ab", cfg); !info.RightToLeft {
		t.Error("Hebrew text not detected as right-to-left")
	}
	if info := generate(t, "ab \u05D0", cfg); info.RightToLeft {
		t.Error("Latin-first text detected as right-to-left")
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(context.Background(), "x", Config{}); !errors.Is(err, ErrNilFont) {
		t.Errorf("Generate without font = %v, want ErrNilFont", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, "x", testConfig(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate with canceled context = %v, want context.Canceled", err)
	}
}

func TestMeasure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 60
	size, err := Measure(context.Background(), "hello world", cfg)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if size.Width != 110 {
		t.Errorf("Width = %v, want 110", size.Width)
	}
	if size.Height != 20 {
		t.Errorf("Height = %v, want 20", size.Height)
	}
}

func TestGenerateGoRegular(t *testing.T) {
	face, err := typeface.NewSFNT(goregular.TTF, typeface.WithPointSize(32))
	if err != nil {
		t.Fatalf("NewSFNT: %v", err)
	}
	font, err := fontasset.New(face, fontasset.WithAtlas(atlas.Config{Width: 512, Height: 512, Padding: 2, MaxPages: 2}))
	if err != nil {
		t.Fatalf("fontasset.New: %v", err)
	}
	cfg := DefaultConfig(font)
	cfg.FontSize = 32

	info := generate(t, "Hello, <b>world</b>!", cfg)
	if got := info.Text(); got != "Hello, world!" {
		t.Errorf("Text() = %q", got)
	}
	if info.LineCount() != 1 || info.Bounds.Empty() {
		t.Errorf("LineCount() = %d, Bounds = %v; want one inked line", info.LineCount(), info.Bounds)
	}
	for i := 1; i < len(info.Characters); i++ {
		if info.Characters[i].Origin < info.Characters[i-1].Origin {
			t.Errorf("pen moved backwards at %d", i)
		}
	}

	cfg.Width = 100
	info = generate(t, "Hello, world! Hello, world!", cfg)
	if info.LineCount() < 2 {
		t.Errorf("LineCount() = %d at width 100, want wrapping", info.LineCount())
	}
	for _, c := range info.Characters {
		if c.Ink && c.TopRight.X > 100*1.0001 {
			t.Errorf("%q ends at %v, past the container", c.Char, c.TopRight.X)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	cfg := testConfig(b)
	cfg.Width = 300
	text := "The <b>quick</b> brown fox <color=#FF8000>jumps</color> over the <u>lazy</u> dog. "
	for range 4 {
		text += text
	}
	ctx := context.Background()
	b.ResetTimer()
	for range b.N {
		if _, err := Generate(ctx, text, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

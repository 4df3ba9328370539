package fontasset

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/internal/testfont"
	"github.com/gogpu/textmesh/typeface"
)

func newMono(t *testing.T, face *testfont.Monospace, opts ...Option) *Asset {
	t.Helper()
	opts = append([]Option{WithRasterizer(face)}, opts...)
	a, err := New(face, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewNilProvider(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("New(nil) error = %v, want ErrNilProvider", err)
	}
}

func TestNewInvalidAtlas(t *testing.T) {
	_, err := New(testfont.New(), WithAtlas(atlas.Config{}))
	var ce *atlas.ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("error = %v, want *atlas.ConfigError", err)
	}
}

func TestControlCharacters(t *testing.T) {
	a := newMono(t, testfont.New().Only('A'))
	for _, r := range []rune{'\t', '\n', '\r', '\u200B', '\u200D'} {
		c, ok := a.Cached(r)
		if !ok {
			t.Errorf("control character %U not synthesized", r)
			continue
		}
		if !c.Glyph.Region.Empty() || !c.Glyph.Metrics.IsEmpty() {
			t.Errorf("control character %U has non-empty glyph %+v", r, c.Glyph)
		}
	}
}

func TestRequestGlyph(t *testing.T) {
	face := testfont.New().Only('A', 'B')
	a := newMono(t, face, WithAtlas(atlas.Config{Width: 64, Height: 64, Padding: 1, MaxPages: 1}))

	c, err := a.RequestGlyph('A')
	if err != nil {
		t.Fatalf("RequestGlyph('A'): %v", err)
	}
	if c.Glyph.Region.Width != 8 || c.Glyph.Region.Height != 8 {
		t.Errorf("region = %+v, want 8x8", c.Glyph.Region)
	}
	if face.Rasterized != 1 {
		t.Errorf("Rasterized = %d, want 1", face.Rasterized)
	}

	again, _ := a.RequestGlyph('A')
	if again != c || face.Rasterized != 1 {
		t.Error("second request was not served from the cache")
	}

	_, err = a.RequestGlyph('Z')
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("RequestGlyph('Z') error = %v, want ErrGlyphNotFound", err)
	}

	sp, err := a.RequestGlyph(' ')
	if err != nil {
		t.Fatalf("RequestGlyph(' '): %v", err)
	}
	if !sp.Glyph.Region.Empty() {
		t.Errorf("space occupies atlas region %+v", sp.Glyph.Region)
	}
	if got := a.Atlas().Page(0).Count(); got != 1 {
		t.Errorf("packed rectangles = %d, want 1 (space must not be packed)", got)
	}
}

func TestRequestGlyphAtlasFull(t *testing.T) {
	face := testfont.New()
	a := newMono(t, face, WithAtlas(atlas.Config{Width: 16, Height: 16, MaxPages: 1}))
	for _, r := range "ABCD" {
		if _, err := a.RequestGlyph(r); err != nil {
			t.Fatalf("RequestGlyph(%q): %v", r, err)
		}
	}
	_, err := a.RequestGlyph('E')
	var fe *atlas.FullError
	if !errors.As(err, &fe) {
		t.Fatalf("fifth glyph error = %v, want *atlas.FullError", err)
	}
	if _, ok := a.Lookup('E'); ok {
		t.Error("Lookup succeeded on a full atlas")
	}
}

func TestTryAddCharacters(t *testing.T) {
	face := testfont.New().Only('a', 'b', 'c')
	a := newMono(t, face, WithAtlas(atlas.Config{Width: 32, Height: 32, MaxPages: 1}))

	missing, err := a.TryAddCharacters([]rune("abcab x?"))
	if err != nil {
		t.Fatalf("TryAddCharacters: %v", err)
	}
	if string(missing) != "x?" {
		t.Errorf("missing = %q, want %q", string(missing), "x?")
	}
	for _, r := range "abc " {
		if _, ok := a.Cached(r); !ok {
			t.Errorf("%q not added", r)
		}
	}
	if face.Rasterized != 3 {
		t.Errorf("Rasterized = %d, want 3", face.Rasterized)
	}
}

func TestTryAddCharactersOverflow(t *testing.T) {
	a := newMono(t, testfont.New(), WithAtlas(atlas.Config{Width: 16, Height: 16, MaxPages: 1}))
	missing, err := a.TryAddCharacters([]rune("ABCDEF"))
	var fe *atlas.FullError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *atlas.FullError", err)
	}
	if len(missing) != 2 {
		t.Errorf("missing = %q, want two characters", string(missing))
	}
}

func TestManyCodepointsOneGlyph(t *testing.T) {
	// Two codepoints mapping to one glyph index share the glyph record.
	face := &aliasFace{Monospace: testfont.New()}
	a := newMono(t, face.Monospace)
	a.provider = face

	c1, err := a.RequestGlyph('A')
	if err != nil {
		t.Fatal(err)
	}
	c2, err := a.RequestGlyph('Å')
	if err != nil {
		t.Fatal(err)
	}
	if c1.Glyph != c2.Glyph {
		t.Error("aliased codepoints have different glyph records")
	}
	if a.GlyphCount() != 1 {
		t.Errorf("GlyphCount() = %d, want 1", a.GlyphCount())
	}
}

type aliasFace struct{ *testfont.Monospace }

func (f *aliasFace) GlyphIndex(r rune) uint32 {
	if r == 'Å' {
		r = 'A'
	}
	return f.Monospace.GlyphIndex(r)
}

func TestWeightVariant(t *testing.T) {
	bold := newMono(t, testfont.New())
	a := newMono(t, testfont.New(), WithWeight(700, bold))
	if v, ok := a.WeightVariant(680, false); !ok || v != bold {
		t.Error("WeightVariant(680) did not round to the 700 variant")
	}
	if _, ok := a.WeightVariant(700, true); ok {
		t.Error("italic 700 variant found, none registered")
	}
}

func TestSFNTAsset(t *testing.T) {
	face, err := typeface.NewSFNT(goregular.TTF, typeface.WithPointSize(24))
	if err != nil {
		t.Fatalf("NewSFNT: %v", err)
	}
	a, err := New(face, WithAtlas(atlas.Config{Width: 256, Height: 256, Padding: 2, MaxPages: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Name() != "Go Regular" {
		t.Errorf("Name() = %q, want %q", a.Name(), "Go Regular")
	}
	c, err := a.RequestGlyph('g')
	if err != nil {
		t.Fatalf("RequestGlyph('g'): %v", err)
	}
	page := a.Atlas().Page(c.Glyph.Page())
	r := c.Glyph.Region
	ink := 0
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if page.Image.AlphaAt(x, y).A > 0 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("glyph region has no coverage")
	}
}

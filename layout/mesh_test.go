package layout

import (
	"encoding/binary"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
)

func TestMeshSingleBucket(t *testing.T) {
	info := generate(t, "AB", testConfig(t))
	if len(info.Meshes) != 1 {
		t.Fatalf("len(Meshes) = %d, want 1", len(info.Meshes))
	}
	m := info.Meshes[0]
	if m.VertexCount() != 8 || m.QuadCount() != 2 || len(m.Indices) != 12 {
		t.Errorf("vertices %d quads %d indices %d, want 8/2/12", m.VertexCount(), m.QuadCount(), len(m.Indices))
	}
	want := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	for i, idx := range want {
		if m.Indices[i] != idx {
			t.Fatalf("Indices = %v, want %v", m.Indices, want)
		}
	}
	a := info.Characters[0]
	wantPos := []textmesh.Point{a.BottomLeft, a.TopLeft, a.TopRight, a.BottomRight}
	for i, p := range wantPos {
		if m.Positions[i] != p {
			t.Errorf("Positions[%d] = %v, want %v", i, m.Positions[i], p)
		}
	}
	if m.Asset != info.Characters[0].Asset || m.Material != m.Asset.Material() {
		t.Error("bucket does not carry the font asset and its material")
	}
}

func TestMeshSkipsBlankAndHidden(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxVisibleCharacters = 3
	info := generate(t, "A BC", cfg)
	if got := info.Meshes[0].QuadCount(); got != 2 {
		t.Errorf("QuadCount() = %d, want 2 (space and hidden C emit nothing)", got)
	}
}

func TestMeshSplitsAtVertexLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxVerticesPerBuffer = 4
	info := generate(t, "AB", cfg)
	if len(info.Meshes) != 2 {
		t.Fatalf("len(Meshes) = %d, want 2", len(info.Meshes))
	}
	for i, m := range info.Meshes {
		if m.VertexCount() != 4 {
			t.Errorf("Meshes[%d] has %d vertices, want 4", i, m.VertexCount())
		}
		if m.Indices[5] != 0 {
			t.Errorf("Meshes[%d] indices not rebased: %v", i, m.Indices)
		}
	}
}

func TestMeshFlags(t *testing.T) {
	info := generate(t, "<mark><b><i>A</i></b></mark><u>B</u>", testConfig(t))
	m := info.Meshes[0]
	// Highlight first, then A and B, then the underline.
	if got := m.QuadCount(); got != 4 {
		t.Fatalf("QuadCount() = %d, want 4", got)
	}
	flags := func(q int) float32 { return m.UV1[q*4][1] }
	if got := flags(0); got != FlagDecoration {
		t.Errorf("highlight flags = %v, want %v", got, FlagDecoration)
	}
	if got := flags(1); got != FlagBold+FlagItalic {
		t.Errorf("bold italic flags = %v, want %v", got, FlagBold+FlagItalic)
	}
	if got := flags(2); got != 0 {
		t.Errorf("regular flags = %v, want 0", got)
	}
	if got := flags(3); got != FlagDecoration {
		t.Errorf("underline flags = %v, want %v", got, FlagDecoration)
	}
	if uv := m.UV0[12]; uv != [2]float32{} {
		t.Errorf("decoration UV0 = %v, want zero", uv)
	}
}

func TestMeshGradient(t *testing.T) {
	reg := fontasset.NewRegistry()
	reg.AddGradient("Sunset", fontasset.Gradient{
		TopLeft:     textmesh.Red,
		TopRight:    textmesh.Yellow,
		BottomLeft:  textmesh.Blue,
		BottomRight: textmesh.Green,
	})
	cfg := testConfig(t)
	cfg.Resolver = reg
	info := generate(t, "<gradient=Sunset>A</gradient>", cfg)

	cols := info.Meshes[0].Colors
	want := []color.NRGBA{
		{0, 0, 255, 255},
		{255, 0, 0, 255},
		{255, 255, 0, 255},
		{0, 255, 0, 255},
	}
	for i, c := range want {
		if cols[i] != c {
			t.Errorf("Colors[%d] = %v, want %v", i, cols[i], c)
		}
	}
}

func TestMeshVertexData(t *testing.T) {
	info := generate(t, "<color=#FF000080>A</color>", testConfig(t))
	m := info.Meshes[0]

	data := m.VertexData()
	if len(data) != 4*VertexStride {
		t.Fatalf("len(VertexData()) = %d, want %d", len(data), 4*VertexStride)
	}
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	tl := data[VertexStride:]
	if x, y := f(VertexStride), f(VertexStride+4); x != 1 || y != 0 {
		t.Errorf("top-left position = (%v, %v), want (1, 0)", x, y)
	}
	if u, v := f(VertexStride+8), f(VertexStride+12); u != m.UV0[1][0] || v != m.UV0[1][1] {
		t.Errorf("top-left UV = (%v, %v), want %v", u, v, m.UV0[1])
	}
	if s := f(VertexStride + 16); s != 1 {
		t.Errorf("scale = %v, want 1", s)
	}
	if got := [4]byte{tl[24], tl[25], tl[26], tl[27]}; got != [4]byte{255, 0, 0, 128} {
		t.Errorf("color bytes = %v, want [255 0 0 128]", got)
	}

	idx := m.IndexData()
	if len(idx) != 24 || binary.LittleEndian.Uint32(idx[8:]) != 2 {
		t.Errorf("IndexData() = %v", idx)
	}
	if (&MeshBuffer{}).VertexData() != nil {
		t.Error("empty buffer serialized vertices")
	}
}

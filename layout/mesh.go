package layout

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/markup"
)

// Vertex flags stored in UV1[1].
const (
	FlagBold       = 1
	FlagItalic     = 2
	FlagDecoration = 4
)

// VertexStride is the size in bytes of one vertex in VertexData:
// position, UV0 and UV1 as float32 pairs followed by an RGBA8 color.
const VertexStride = 28

// MeshBuffer holds the quads of one bucket: a font or sprite asset, a
// material and an atlas page. Every quad is four vertices in the order
// bottom-left, top-left, top-right, bottom-right.
type MeshBuffer struct {
	Asset    *fontasset.Asset
	Sprite   *fontasset.SpriteAsset
	Material *fontasset.Material
	// AtlasPage is the atlas texture the quads sample.
	AtlasPage int

	Positions []textmesh.Point
	UV0       [][2]float32
	// UV1 carries the character scale and the vertex flags.
	UV1     [][2]float32
	Colors  []color.NRGBA
	Indices []uint32
}

// VertexCount returns the number of vertices.
func (b *MeshBuffer) VertexCount() int { return len(b.Positions) }

// QuadCount returns the number of quads.
func (b *MeshBuffer) QuadCount() int { return len(b.Positions) / 4 }

// addQuad appends a quad. pts and uv are in bottom-left, top-left,
// top-right, bottom-right order.
func (b *MeshBuffer) addQuad(pts [4]textmesh.Point, uv [4][2]float32, cols [4]color.NRGBA, scale float32, flags float32) {
	base := uint32(len(b.Positions))
	for v := range 4 {
		b.Positions = append(b.Positions, pts[v])
		b.UV0 = append(b.UV0, uv[v])
		b.UV1 = append(b.UV1, [2]float32{scale, flags})
		b.Colors = append(b.Colors, cols[v])
	}
	// Two triangles: 0,1,2 and 2,3,0.
	b.Indices = append(b.Indices, base, base+1, base+2, base+2, base+3, base)
}

// VertexData serializes the vertices for upload, VertexStride bytes each,
// little endian.
func (b *MeshBuffer) VertexData() []byte {
	if len(b.Positions) == 0 {
		return nil
	}
	data := make([]byte, len(b.Positions)*VertexStride)
	for i := range b.Positions {
		buf := data[i*VertexStride:]
		putFloat(buf[0:], float32(b.Positions[i].X))
		putFloat(buf[4:], float32(b.Positions[i].Y))
		putFloat(buf[8:], b.UV0[i][0])
		putFloat(buf[12:], b.UV0[i][1])
		putFloat(buf[16:], b.UV1[i][0])
		putFloat(buf[20:], b.UV1[i][1])
		c := b.Colors[i]
		buf[24], buf[25], buf[26], buf[27] = c.R, c.G, c.B, c.A
	}
	return data
}

// IndexData serializes the indices as little endian uint32 values.
func (b *MeshBuffer) IndexData() []byte {
	data := make([]byte, len(b.Indices)*4)
	for i, idx := range b.Indices {
		binary.LittleEndian.PutUint32(data[i*4:], idx)
	}
	return data
}

func putFloat(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

type meshKey struct {
	asset    *fontasset.Asset
	sprite   *fontasset.SpriteAsset
	material *fontasset.Material
	page     int
}

// meshBuilder routes quads to buckets, starting a new buffer for a bucket
// when the vertex limit would be exceeded.
type meshBuilder struct {
	limit   int
	buffers []*MeshBuffer
	current map[meshKey]*MeshBuffer
}

func (m *meshBuilder) buffer(key meshKey) *MeshBuffer {
	b := m.current[key]
	if b == nil || len(b.Positions)+4 > m.limit {
		b = &MeshBuffer{Asset: key.asset, Sprite: key.sprite, Material: key.material, AtlasPage: key.page}
		m.current[key] = b
		m.buffers = append(m.buffers, b)
	}
	return b
}

func keyOf(c *CharacterInfo) meshKey {
	if c.Kind == ElementSprite {
		return meshKey{sprite: c.Sprite, material: c.Material}
	}
	k := meshKey{asset: c.Asset, material: c.Material}
	if c.Glyph != nil {
		k.page = c.Glyph.Page()
	}
	return k
}

// buildMeshes emits highlight quads, then glyph and sprite quads, then
// underline and strikethrough quads, so that highlights render beneath the
// text and lines above it within each bucket.
func buildMeshes(info *TextInfo, limit int) []*MeshBuffer {
	m := &meshBuilder{limit: limit, current: make(map[meshKey]*MeshBuffer)}

	emitDecorations := func(highlight bool) {
		for i := range info.Decorations {
			d := &info.Decorations[i]
			if (d.Kind == DecorationHighlight) != highlight {
				continue
			}
			c := &info.Characters[d.FirstCharacterIndex]
			col := d.Color.NRGBA()
			r := d.Rect
			pts := [4]textmesh.Point{
				textmesh.Pt(r.Min.X, r.Max.Y), r.Min,
				textmesh.Pt(r.Max.X, r.Min.Y), r.Max,
			}
			m.buffer(keyOf(c)).addQuad(pts, [4][2]float32{}, [4]color.NRGBA{col, col, col, col}, float32(d.Scale), FlagDecoration)
		}
	}

	emitDecorations(true)
	for k := range info.Characters {
		c := &info.Characters[k]
		if !c.Visible || !c.Ink {
			continue
		}
		pts := [4]textmesh.Point{c.BottomLeft, c.TopLeft, c.TopRight, c.BottomRight}
		u0, v0, u1, v1 := c.UV[0], c.UV[1], c.UV[2], c.UV[3]
		uv := [4][2]float32{{u0, v1}, {u0, v0}, {u1, v0}, {u1, v1}}
		var flags float32
		if c.Styles.Has(markup.Bold) {
			flags += FlagBold
		}
		if c.Styles.Has(markup.Italic) {
			flags += FlagItalic
		}
		m.buffer(keyOf(c)).addQuad(pts, uv, vertexColors(c), float32(c.Scale), flags)
	}
	emitDecorations(false)
	return m.buffers
}

// vertexColors returns the bottom-left, top-left, top-right and
// bottom-right colors of c with its gradient applied.
func vertexColors(c *CharacterInfo) [4]color.NRGBA {
	base := c.Color
	if c.Gradient == nil {
		n := base.NRGBA()
		return [4]color.NRGBA{n, n, n, n}
	}
	g := c.Gradient
	return [4]color.NRGBA{
		base.Multiply(g.BottomLeft).NRGBA(),
		base.Multiply(g.TopLeft).NRGBA(),
		base.Multiply(g.TopRight).NRGBA(),
		base.Multiply(g.BottomRight).NRGBA(),
	}
}

package typeface

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// VectorRasterizer renders SFNT glyph outlines with golang.org/x/image/vector.
type VectorRasterizer struct {
	face *SFNT
}

// NewVectorRasterizer returns a Rasterizer drawing the outlines of face.
func NewVectorRasterizer(face *SFNT) *VectorRasterizer {
	return &VectorRasterizer{face: face}
}

// Rasterize implements Rasterizer.
//
// Coverage is written with draw.Src so a reused atlas rectangle never keeps
// stale pixels. r must be at least as large as the glyph's ink box.
func (v *VectorRasterizer) Rasterize(index uint32, dst draw.Image, r image.Rectangle, mode RenderMode) error {
	if r.Empty() {
		return nil
	}
	hinting := font.HintingNone
	if mode == RenderHinted {
		hinting = font.HintingFull
	}

	return v.face.withSegments(index, hinting, func(segs sfnt.Segments, b fixed.Rectangle26_6) error {
		if len(segs) == 0 {
			return ErrNoOutline
		}
		minX := math.Floor(fixedToFloat(b.Min.X))
		minY := math.Floor(fixedToFloat(b.Min.Y))
		w := int(math.Ceil(fixedToFloat(b.Max.X)) - minX)
		h := int(math.Ceil(fixedToFloat(b.Max.Y)) - minY)
		if w > r.Dx() || h > r.Dy() {
			return fmt.Errorf("%w: glyph %d needs %dx%d, got %dx%d",
				ErrTargetTooSmall, index, w, h, r.Dx(), r.Dy())
		}

		ras := vector.NewRasterizer(r.Dx(), r.Dy())
		ras.DrawOp = draw.Src
		pt := func(p fixed.Point26_6) (float32, float32) {
			x := fixedToFloat(p.X) - minX
			y := fixedToFloat(p.Y) - minY
			if mode == RenderHinted {
				y = math.Round(y)
			}
			return float32(x), float32(y)
		}
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				ras.MoveTo(pt(seg.Args[0]))
			case sfnt.SegmentOpLineTo:
				ras.LineTo(pt(seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				bx, by := pt(seg.Args[0])
				cx, cy := pt(seg.Args[1])
				ras.QuadTo(bx, by, cx, cy)
			case sfnt.SegmentOpCubeTo:
				bx, by := pt(seg.Args[0])
				cx, cy := pt(seg.Args[1])
				dx, dy := pt(seg.Args[2])
				ras.CubeTo(bx, by, cx, cy, dx, dy)
			}
		}
		ras.ClosePath()

		if mode != RenderMono {
			ras.Draw(dst, r, image.Opaque, image.Point{})
			return nil
		}

		mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
		ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
		for i, a := range mask.Pix {
			if a >= 128 {
				mask.Pix[i] = 0xff
			} else {
				mask.Pix[i] = 0
			}
		}
		draw.Draw(dst, r, mask, image.Point{}, draw.Src)
		return nil
	})
}

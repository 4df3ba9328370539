// Command textmeshdemo lays out a marked-up string with Go Regular and
// rasterizes the resulting mesh buckets into a PNG preview.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/fontasset"
	"github.com/gogpu/textmesh/layout"
	"github.com/gogpu/textmesh/typeface"
)

const sample = `<size=150%><b>textmesh</b></size>
Rich text with <color=#FF8040>colors</color>, <i>italics</i>, <u>underlines</u>,
<s>strikes</s> and <mark=#40A0FF60>highlights</mark>. Long paragraphs wrap at the
container width and <align=right>lines can be aligned</align>.`

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 400, "image height")
		size    = flag.Float64("size", 28, "font size in pixels")
		text    = flag.String("text", sample, "marked-up text to lay out")
		output  = flag.String("output", "textmesh.png", "output file")
		atlasFn = flag.String("atlas", "", "also write atlas page 0 to this file")
		verbose = flag.Bool("v", false, "log layout passes")
	)
	flag.Parse()

	if *verbose {
		textmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	face, err := typeface.NewSFNT(goregular.TTF, typeface.WithPointSize(*size))
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	font, err := fontasset.New(face, fontasset.WithAtlas(atlas.Config{Width: 1024, Height: 1024, Padding: 2, MaxPages: 4}))
	if err != nil {
		log.Fatalf("Failed to create font asset: %v", err)
	}

	cfg := layout.DefaultConfig(font)
	cfg.FontSize = *size
	cfg.Width = float64(*width)
	cfg.Height = float64(*height)
	cfg.Margins = layout.Margins{Left: 20, Top: 20, Right: 20, Bottom: 20}
	cfg.Overflow = layout.OverflowEllipsis

	info, err := layout.Generate(context.Background(), *text, cfg)
	if err != nil {
		log.Fatalf("Layout failed: %v", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, *width, *height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{24, 26, 32, 255}), image.Point{}, draw.Src)
	for _, m := range info.Meshes {
		drawBuffer(dst, m)
	}

	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *atlasFn != "" {
		if err := savePNG(*atlasFn, font.Atlas().Page(0).Image); err != nil {
			log.Fatalf("Failed to save atlas: %v", err)
		}
	}

	log.Printf("Layout saved to %s (%dx%d): %d characters, %d lines, %d buffers, %d passes\n",
		*output, *width, *height, info.CharacterCount(), info.LineCount(), len(info.Meshes), info.Passes)
}

// drawBuffer composites every quad of m. Glyph quads sample the atlas
// page as a coverage mask; decoration quads are solid fills.
func drawBuffer(dst *image.RGBA, m *layout.MeshBuffer) {
	if m.Sprite != nil || m.Asset == nil {
		return
	}
	page := m.Asset.Atlas().Page(m.AtlasPage)
	if page == nil {
		return
	}
	pw, ph := float32(page.Image.Rect.Dx()), float32(page.Image.Rect.Dy())
	for q := range m.QuadCount() {
		tl, br := m.Positions[q*4+1], m.Positions[q*4+3]
		dr := image.Rect(int(tl.X), int(tl.Y), int(br.X+0.5), int(br.Y+0.5))
		if dr.Empty() {
			continue
		}
		src := image.NewUniform(m.Colors[q*4+1])
		if int(m.UV1[q*4][1])&layout.FlagDecoration != 0 {
			draw.Draw(dst, dr, src, image.Point{}, draw.Over)
			continue
		}
		uvTL, uvBR := m.UV0[q*4+1], m.UV0[q*4+3]
		sr := image.Rect(int(uvTL[0]*pw), int(uvTL[1]*ph), int(uvBR[0]*pw+0.5), int(uvBR[1]*ph+0.5))
		mask := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
		draw.BiLinear.Scale(mask, mask.Bounds(), page.Image, sr, draw.Src, nil)
		draw.DrawMask(dst, dr, src, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

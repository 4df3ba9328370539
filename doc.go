// Package textmesh is a rich-text layout engine.
//
// Given a Unicode string annotated with inline markup tags (bold, color,
// size, sprites, alignment, wrapping hints, ...) and a source of glyph
// metrics, textmesh produces a fully resolved per-character layout:
// positions, advances, line breaks, visibility and decoration runs,
// plus per-material vertex buffers ready for a rasterizer.
//
// The root package holds the primitives shared by all sub-packages:
// colors, affine transforms and the package-wide logger.
//
// The pipeline is split into sub-packages:
//
//   - typeface: metrics provider and glyph rasterizer contracts, with
//     implementations backed by golang.org/x/image and go-text/typesetting
//   - atlas: rectangle bin-packing of glyphs into atlas pages
//   - fontasset: character/glyph cache, kerning pairs and fallback chains
//   - markup: the inline tag interpreter and style sheets
//   - layout: line layout, word wrap, auto-size, alignment and decorations
//
// # Example usage
//
//	face, err := typeface.NewSFNT(goregular.TTF, typeface.WithPointSize(90))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	asset, err := fontasset.New(face, fontasset.WithName("Go Regular"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := layout.DefaultConfig(asset)
//	cfg.Width, cfg.Height = 320, 200
//	info, err := layout.Generate(ctx, "Hello <b>bold</b> <color=#f00>world</color>", cfg)
package textmesh

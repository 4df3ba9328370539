package atlas

import (
	"image"

	"golang.org/x/image/draw"
)

// Page is one atlas surface: an alpha-coverage image plus its packer.
type Page struct {
	// Index is the page's position in its allocator. It never changes.
	Index int

	// Image holds glyph coverage. Renderers upload it as a single-channel texture.
	Image *image.Alpha

	packer *Packer
	dirty  bool
}

func newPage(index, width, height int) *Page {
	return &Page{
		Index:  index,
		Image:  image.NewAlpha(image.Rect(0, 0, width, height)),
		packer: NewPacker(width, height),
	}
}

// Blit copies src, starting at sp, into the region's glyph rectangle.
func (p *Page) Blit(r Region, src image.Image, sp image.Point) {
	draw.Draw(p.Image, r.Rect().ImageRect(), src, sp, draw.Src)
	p.dirty = true
}

// Used returns the packed rectangles (padding included).
func (p *Page) Used() []Rect { return p.packer.Used() }

// Free returns the free rectangle list.
func (p *Page) Free() []Rect { return p.packer.Free() }

// Occupancy returns the used fraction of the page area.
func (p *Page) Occupancy() float64 { return p.packer.Occupancy() }

// Count returns the number of rectangles packed on the page.
func (p *Page) Count() int { return len(p.packer.used) }

// IsDirty reports whether the page changed since the last MarkClean.
func (p *Page) IsDirty() bool { return p.dirty }

// MarkClean clears the dirty flag, typically after a texture upload.
func (p *Page) MarkClean() { p.dirty = false }

// clear resets packing state and coverage.
func (p *Page) clear() {
	p.packer.Reset()
	clear(p.Image.Pix)
	p.dirty = true
}

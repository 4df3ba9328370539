package atlas

import (
	"fmt"

	"github.com/gogpu/textmesh"
)

// Region describes a glyph's location in the atlas.
type Region struct {
	// Page is the index of the page holding the glyph.
	Page int

	// Pixel coordinates of the glyph rectangle, padding excluded.
	X, Y, Width, Height int

	// UV coordinates [0, 1] of the glyph rectangle.
	U0, V0, U1, V1 float32
}

// Rect returns the glyph rectangle in page pixels.
func (r Region) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

// Empty reports whether the region holds no pixels.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Allocator manages atlas pages and places padded rectangles on them.
type Allocator struct {
	config Config
	pages  []*Page
}

// New creates an allocator with one empty page.
func New(config Config) (*Allocator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	a := &Allocator{
		config: config,
		pages:  make([]*Page, 0, config.MaxPages),
	}
	a.addPage()
	return a, nil
}

// Config returns the allocator configuration.
func (a *Allocator) Config() Config {
	return a.config
}

// Allocate reserves a w x h glyph rectangle plus padding on every side.
//
// Existing pages are tried in index order; a new page is added when none
// fits and MaxPages allows it. Previously returned regions stay valid.
func (a *Allocator) Allocate(w, h int) (Region, error) {
	pw, ph, err := a.padded(w, h)
	if err != nil {
		return Region{}, err
	}

	for _, p := range a.pages {
		if r, ok := p.packer.Insert(pw, ph, a.config.Heuristic); ok {
			return a.region(p, r), nil
		}
	}

	p, err := a.grow(w, h)
	if err != nil {
		return Region{}, err
	}
	r, ok := p.packer.Insert(pw, ph, a.config.Heuristic)
	if !ok {
		return Region{}, &FullError{Pages: len(a.pages), Width: w, Height: h}
	}
	return a.region(p, r), nil
}

// AllocateBatch reserves many rectangles at once using the contact-point
// rule. The result is aligned with sizes; rectangles that could not be
// placed have an empty Region. The error is a *FullError when any
// rectangle was left out, or ErrTooLarge / ErrInvalidSize for the first
// offending size.
func (a *Allocator) AllocateBatch(sizes []Size) ([]Region, error) {
	out := make([]Region, len(sizes))
	padded := make([]Size, len(sizes))
	remaining := 0
	var firstErr error
	for i, s := range sizes {
		pw, ph, err := a.padded(s.W, s.H)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("size %d: %w", i, err)
			}
			continue
		}
		padded[i] = Size{W: pw, H: ph}
		remaining++
	}

	for pi := 0; remaining > 0; pi++ {
		if pi == len(a.pages) {
			if _, err := a.grow(0, 0); err != nil {
				break
			}
		}
		p := a.pages[pi]
		for i, pl := range p.packer.InsertBatch(padded, ContactPoint) {
			if !pl.OK {
				continue
			}
			out[i] = a.region(p, pl.Rect)
			padded[i] = Size{}
			remaining--
		}
	}

	if firstErr != nil {
		return out, firstErr
	}
	if remaining > 0 {
		return out, &FullError{Pages: len(a.pages)}
	}
	return out, nil
}

// Page returns the page with the given index, or nil.
func (a *Allocator) Page(i int) *Page {
	if i < 0 || i >= len(a.pages) {
		return nil
	}
	return a.pages[i]
}

// PageCount returns the number of pages.
func (a *Allocator) PageCount() int {
	return len(a.pages)
}

// Pages returns all pages in index order.
func (a *Allocator) Pages() []*Page {
	return append([]*Page(nil), a.pages...)
}

// Reset drops every page but the first and clears it.
func (a *Allocator) Reset() {
	a.pages = a.pages[:1]
	a.pages[0].clear()
}

func (a *Allocator) padded(w, h int) (int, int, error) {
	if w <= 0 || h <= 0 {
		return 0, 0, ErrInvalidSize
	}
	pw, ph := w+2*a.config.Padding, h+2*a.config.Padding
	if pw > a.config.Width || ph > a.config.Height {
		return 0, 0, fmt.Errorf("%w: %dx%d padded to %dx%d exceeds %dx%d",
			ErrTooLarge, w, h, pw, ph, a.config.Width, a.config.Height)
	}
	return pw, ph, nil
}

func (a *Allocator) grow(w, h int) (*Page, error) {
	if len(a.pages) >= a.config.MaxPages {
		return nil, &FullError{Pages: len(a.pages), Width: w, Height: h}
	}
	return a.addPage(), nil
}

func (a *Allocator) addPage() *Page {
	p := newPage(len(a.pages), a.config.Width, a.config.Height)
	a.pages = append(a.pages, p)
	textmesh.Logger().Debug("atlas: page added",
		"page", p.Index, "width", a.config.Width, "height", a.config.Height)
	return p
}

// region converts a packed (padded) rectangle on p into a glyph region.
func (a *Allocator) region(p *Page, packed Rect) Region {
	r := packed.Inset(a.config.Padding)
	w, h := float32(a.config.Width), float32(a.config.Height)
	p.dirty = true
	return Region{
		Page:   p.Index,
		X:      r.X,
		Y:      r.Y,
		Width:  r.W,
		Height: r.H,
		U0:     float32(r.X) / w,
		V0:     float32(r.Y) / h,
		U1:     float32(r.Right()) / w,
		V1:     float32(r.Bottom()) / h,
	}
}

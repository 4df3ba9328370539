// Package atlas implements the dynamic glyph atlas: rectangle bin packing
// into one or more alpha-coverage pages.
//
// # Packing
//
// [Packer] is a MaxRects packer. It tracks used rectangles and a list of
// maximal free rectangles; every insertion splits the free rectangles it
// touches and prunes those contained in others. Single insertions use
// [BestShortSideFit] by default; bulk pre-population uses [ContactPoint],
// which prefers positions touching already-used area and reduces
// fragmentation.
//
// # Pages
//
// An [Allocator] owns the pages. Allocation tries existing pages in order
// and adds a page when none fits, up to [Config].MaxPages. Page indices
// never change once assigned. When no page can take the rectangle the
// allocator returns a [*FullError].
//
//	a, err := atlas.New(atlas.Config{Width: 512, Height: 512, Padding: 2, MaxPages: 4})
//	region, err := a.Allocate(18, 24)
//	page := a.Page(region.Page)
//
// Allocator is not safe for concurrent use. Font assets serialize access.
package atlas

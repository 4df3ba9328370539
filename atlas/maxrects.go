package atlas

import "math"

// Heuristic selects the free rectangle a new rectangle is placed into.
type Heuristic uint8

const (
	// BestShortSideFit minimizes the shorter leftover side.
	BestShortSideFit Heuristic = iota

	// BestLongSideFit minimizes the longer leftover side.
	BestLongSideFit

	// BestAreaFit minimizes the leftover area.
	BestAreaFit

	// BottomLeft places at the lowest, then leftmost, position (Tetris style).
	BottomLeft

	// ContactPoint maximizes the perimeter touching page edges and used rectangles.
	ContactPoint
)

// String returns the heuristic name.
func (h Heuristic) String() string {
	switch h {
	case BestShortSideFit:
		return "BestShortSideFit"
	case BestLongSideFit:
		return "BestLongSideFit"
	case BestAreaFit:
		return "BestAreaFit"
	case BottomLeft:
		return "BottomLeft"
	case ContactPoint:
		return "ContactPoint"
	default:
		return "Unknown"
	}
}

// Placement is the outcome of one rectangle in a batch insertion.
type Placement struct {
	Rect Rect
	OK   bool
}

// Packer implements MaxRects rectangle packing for one page.
//
// Used rectangles never overlap each other or any free rectangle; free
// rectangles may overlap each other (each one is maximal).
type Packer struct {
	width, height int
	used          []Rect
	free          []Rect
	usedArea      int
}

// NewPacker creates a packer for a width x height area.
func NewPacker(width, height int) *Packer {
	p := &Packer{width: width, height: height}
	p.Reset()
	return p
}

// Reset empties the packer.
func (p *Packer) Reset() {
	p.used = p.used[:0]
	p.free = append(p.free[:0], Rect{W: p.width, H: p.height})
	p.usedArea = 0
}

// Width returns the packing area width.
func (p *Packer) Width() int { return p.width }

// Height returns the packing area height.
func (p *Packer) Height() int { return p.height }

// Insert places a w x h rectangle using heuristic h.
// Returns false if no free rectangle can hold it.
func (p *Packer) Insert(w, h int, heuristic Heuristic) (Rect, bool) {
	if w <= 0 || h <= 0 {
		return Rect{}, false
	}
	node, _, _ := p.findPosition(w, h, heuristic)
	if node.Empty() {
		return Rect{}, false
	}
	p.place(node)
	return node, true
}

// InsertBatch places as many of sizes as possible. At each step it picks
// the (rectangle, position) pair with the globally best score, so the
// result does not depend on input order. The returned placements are
// aligned with sizes.
func (p *Packer) InsertBatch(sizes []Size, heuristic Heuristic) []Placement {
	out := make([]Placement, len(sizes))
	pending := make([]int, 0, len(sizes))
	for i, s := range sizes {
		if s.W > 0 && s.H > 0 {
			pending = append(pending, i)
		}
	}

	for len(pending) > 0 {
		bestK := -1
		var best Rect
		bestS1, bestS2 := math.MaxInt, math.MaxInt
		for k, idx := range pending {
			node, s1, s2 := p.findPosition(sizes[idx].W, sizes[idx].H, heuristic)
			if node.Empty() {
				continue
			}
			if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
				bestK, best, bestS1, bestS2 = k, node, s1, s2
			}
		}
		if bestK < 0 {
			break
		}
		p.place(best)
		out[pending[bestK]] = Placement{Rect: best, OK: true}
		pending = append(pending[:bestK], pending[bestK+1:]...)
	}
	return out
}

// Used returns a copy of the used rectangles in insertion order.
func (p *Packer) Used() []Rect {
	return append([]Rect(nil), p.used...)
}

// Free returns a copy of the free rectangle list.
func (p *Packer) Free() []Rect {
	return append([]Rect(nil), p.free...)
}

// Occupancy returns the fraction of the area covered by used rectangles.
func (p *Packer) Occupancy() float64 {
	return float64(p.usedArea) / float64(p.width*p.height)
}

// findPosition scores every free rectangle that can hold w x h. Lower
// scores are better; the zero Rect means nothing fits.
func (p *Packer) findPosition(w, h int, heuristic Heuristic) (best Rect, bestS1, bestS2 int) {
	bestS1, bestS2 = math.MaxInt, math.MaxInt
	for _, f := range p.free {
		if f.W < w || f.H < h {
			continue
		}
		var s1, s2 int
		leftoverH := f.W - w
		leftoverV := f.H - h
		switch heuristic {
		case BestLongSideFit:
			s1, s2 = max(leftoverH, leftoverV), min(leftoverH, leftoverV)
		case BestAreaFit:
			s1, s2 = f.Area()-w*h, min(leftoverH, leftoverV)
		case BottomLeft:
			s1, s2 = f.Y+h, f.X
		case ContactPoint:
			s1, s2 = -p.contactScore(f.X, f.Y, w, h), f.Y
		default:
			s1, s2 = min(leftoverH, leftoverV), max(leftoverH, leftoverV)
		}
		if s1 < bestS1 || (s1 == bestS1 && s2 < bestS2) {
			best = Rect{X: f.X, Y: f.Y, W: w, H: h}
			bestS1, bestS2 = s1, s2
		}
	}
	return best, bestS1, bestS2
}

// contactScore sums the edge length shared with the page border and with
// used rectangles.
func (p *Packer) contactScore(x, y, w, h int) int {
	score := 0
	if x == 0 || x+w == p.width {
		score += h
	}
	if y == 0 || y+h == p.height {
		score += w
	}
	for _, u := range p.used {
		if u.X == x+w || u.Right() == x {
			score += commonInterval(u.Y, u.Bottom(), y, y+h)
		}
		if u.Y == y+h || u.Bottom() == y {
			score += commonInterval(u.X, u.Right(), x, x+w)
		}
	}
	return score
}

// place commits node: every free rectangle it overlaps is replaced by its
// maximal residual pieces, then contained free rectangles are pruned.
func (p *Packer) place(node Rect) {
	next := make([]Rect, 0, len(p.free)+4)
	for _, f := range p.free {
		if !f.Overlaps(node) {
			next = append(next, f)
			continue
		}
		next = appendSplit(next, f, node)
	}
	p.free = pruneContained(next)
	p.used = append(p.used, node)
	p.usedArea += node.Area()
}

// appendSplit appends the parts of f not covered by u.
func appendSplit(dst []Rect, f, u Rect) []Rect {
	if u.X > f.X {
		dst = append(dst, Rect{X: f.X, Y: f.Y, W: u.X - f.X, H: f.H})
	}
	if u.Right() < f.Right() {
		dst = append(dst, Rect{X: u.Right(), Y: f.Y, W: f.Right() - u.Right(), H: f.H})
	}
	if u.Y > f.Y {
		dst = append(dst, Rect{X: f.X, Y: f.Y, W: f.W, H: u.Y - f.Y})
	}
	if u.Bottom() < f.Bottom() {
		dst = append(dst, Rect{X: f.X, Y: u.Bottom(), W: f.W, H: f.Bottom() - u.Bottom()})
	}
	return dst
}

// pruneContained drops every rectangle contained in another one.
// Of two equal rectangles only the first survives.
func pruneContained(rs []Rect) []Rect {
	removed := make([]bool, len(rs))
	for i := range rs {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(rs); j++ {
			if removed[j] {
				continue
			}
			if rs[i].Contains(rs[j]) {
				removed[j] = true
			} else if rs[j].Contains(rs[i]) {
				removed[i] = true
				break
			}
		}
	}
	out := rs[:0]
	for i, r := range rs {
		if !removed[i] {
			out = append(out, r)
		}
	}
	return out
}

func commonInterval(a0, a1, b0, b1 int) int {
	if a1 < b0 || b1 < a0 {
		return 0
	}
	return min(a1, b1) - max(a0, b0)
}

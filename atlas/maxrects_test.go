package atlas

import (
	"math/rand/v2"
	"testing"
)

// checkInvariants verifies that used rectangles are in bounds and overlap
// neither each other nor any free rectangle.
func checkInvariants(t *testing.T, p *Packer) {
	t.Helper()
	bounds := Rect{W: p.Width(), H: p.Height()}
	used := p.Used()
	free := p.Free()
	for i, u := range used {
		if !bounds.Contains(u) {
			t.Fatalf("used[%d] = %+v outside page %+v", i, u, bounds)
		}
		for j := i + 1; j < len(used); j++ {
			if u.Overlaps(used[j]) {
				t.Fatalf("used[%d] = %+v overlaps used[%d] = %+v", i, u, j, used[j])
			}
		}
		for j, f := range free {
			if u.Overlaps(f) {
				t.Fatalf("used[%d] = %+v overlaps free[%d] = %+v", i, u, j, f)
			}
		}
	}
	for j, f := range free {
		if !bounds.Contains(f) {
			t.Fatalf("free[%d] = %+v outside page %+v", j, f, bounds)
		}
	}
}

func TestPackerFillsExactly(t *testing.T) {
	p := NewPacker(16, 16)
	for i := range 4 {
		if _, ok := p.Insert(8, 8, BestShortSideFit); !ok {
			t.Fatalf("insert %d failed", i)
		}
	}
	checkInvariants(t, p)
	if _, ok := p.Insert(8, 8, BestShortSideFit); ok {
		t.Error("fifth 8x8 insert succeeded on a full 16x16 packer")
	}
	if got := p.Occupancy(); got != 1 {
		t.Errorf("Occupancy() = %v, want 1", got)
	}
	if n := len(p.Free()); n != 0 {
		t.Errorf("len(Free()) = %d, want 0", n)
	}
}

func TestPackerRejectsInvalid(t *testing.T) {
	p := NewPacker(16, 16)
	tests := []struct{ w, h int }{{0, 4}, {4, 0}, {-1, 4}, {17, 1}, {1, 17}}
	for _, tt := range tests {
		if _, ok := p.Insert(tt.w, tt.h, BestShortSideFit); ok {
			t.Errorf("Insert(%d, %d) succeeded", tt.w, tt.h)
		}
	}
}

func TestPackerInvariantRandom(t *testing.T) {
	heuristics := []Heuristic{BestShortSideFit, BestLongSideFit, BestAreaFit, BottomLeft, ContactPoint}
	for _, h := range heuristics {
		t.Run(h.String(), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(1, uint64(h)))
			p := NewPacker(128, 96)
			placed := 0
			for range 300 {
				if _, ok := p.Insert(1+rng.IntN(20), 1+rng.IntN(20), h); ok {
					placed++
				}
			}
			checkInvariants(t, p)
			if placed == 0 {
				t.Fatal("nothing placed")
			}
			if len(p.Used()) != placed {
				t.Errorf("len(Used()) = %d, want %d", len(p.Used()), placed)
			}
		})
	}
}

func TestPackerInsertBatch(t *testing.T) {
	p := NewPacker(32, 32)
	sizes := []Size{{16, 16}, {16, 16}, {0, 3}, {16, 16}, {16, 16}, {4, 4}}
	got := p.InsertBatch(sizes, ContactPoint)
	if len(got) != len(sizes) {
		t.Fatalf("len = %d, want %d", len(got), len(sizes))
	}
	placed := 0
	for i, pl := range got {
		if pl.OK {
			placed++
			if pl.Rect.W != sizes[i].W || pl.Rect.H != sizes[i].H {
				t.Errorf("placement %d has size %dx%d, want %dx%d", i, pl.Rect.W, pl.Rect.H, sizes[i].W, sizes[i].H)
			}
		}
	}
	if got[2].OK {
		t.Error("zero-size entry was placed")
	}
	// Four 16x16 fill the page exactly; the 4x4 cannot fit anymore.
	if placed != 4 {
		t.Errorf("placed = %d, want 4", placed)
	}
	checkInvariants(t, p)
}

func TestContactPointPrefersCorners(t *testing.T) {
	p := NewPacker(64, 64)
	p.Insert(10, 10, ContactPoint)
	r, _ := p.Insert(10, 10, ContactPoint)
	// Touching the first rectangle and a page edge beats any free-standing spot.
	if !(r.X == 10 && r.Y == 0) && !(r.X == 0 && r.Y == 10) {
		t.Errorf("second rect at (%d,%d), want adjacent to the first", r.X, r.Y)
	}
}

func TestPackerReset(t *testing.T) {
	p := NewPacker(16, 16)
	p.Insert(16, 16, BestShortSideFit)
	p.Reset()
	if p.Occupancy() != 0 || len(p.Used()) != 0 {
		t.Error("Reset did not empty the packer")
	}
	if free := p.Free(); len(free) != 1 || free[0] != (Rect{W: 16, H: 16}) {
		t.Errorf("Free() after Reset = %+v", free)
	}
}

func BenchmarkPackerInsert(b *testing.B) {
	for b.Loop() {
		p := NewPacker(1024, 1024)
		for i := range 512 {
			p.Insert(8+i%24, 10+i%17, BestShortSideFit)
		}
	}
}

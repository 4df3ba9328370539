package fontasset

import (
	"testing"

	"github.com/gogpu/textmesh/internal/testfont"
	"github.com/gogpu/textmesh/typeface"
)

func TestKerningTableAddPair(t *testing.T) {
	kt := NewKerningTable(nil)
	adj := typeface.PairAdjustment{First: typeface.Adjustment{XAdvance: -2}}
	if !kt.AddPair('A', 'V', adj) {
		t.Fatal("first AddPair returned false")
	}
	if kt.AddPair('A', 'V', typeface.PairAdjustment{}) {
		t.Error("duplicate AddPair returned true")
	}
	if got, ok := kt.Lookup('A', 'V'); !ok || got != adj {
		t.Errorf("Lookup(A,V) = %+v, %v; want original pair", got, ok)
	}
	if _, ok := kt.Lookup('V', 'A'); ok {
		t.Error("Lookup(V,A) found the A,V pair")
	}
	if kt.Len() != 1 {
		t.Errorf("Len() = %d, want 1", kt.Len())
	}
}

func TestKerningTableSource(t *testing.T) {
	face := testfont.New()
	face.Kerning = map[uint64]typeface.PairAdjustment{
		typeface.PairKey('T', 'o'): {First: typeface.Adjustment{XAdvance: -1.5}},
	}
	kt := NewKerningTable(face)

	got, ok := kt.Lookup('T', 'o')
	if !ok || got.First.XAdvance != -1.5 {
		t.Errorf("Lookup(T,o) = %+v, %v; want -1.5 from source", got, ok)
	}

	// Explicit pairs take precedence over the source.
	explicit := typeface.PairAdjustment{First: typeface.Adjustment{XAdvance: -3}}
	if !kt.AddPair('T', 'o', explicit) {
		t.Error("AddPair over a derived pair returned false")
	}
	if got, _ := kt.Lookup('T', 'o'); got != explicit {
		t.Errorf("Lookup after AddPair = %+v, want %+v", got, explicit)
	}
}

func TestKerningTablePairsSorted(t *testing.T) {
	kt := NewKerningTable(nil)
	kt.AddPair('b', 'a', typeface.PairAdjustment{})
	kt.AddPair('a', 'z', typeface.PairAdjustment{})
	kt.AddPair('a', 'b', typeface.PairAdjustment{})
	pairs := kt.Pairs()
	want := [][2]rune{{'a', 'b'}, {'a', 'z'}, {'b', 'a'}}
	for i, p := range pairs {
		if p.First != want[i][0] || p.Second != want[i][1] {
			t.Errorf("pairs[%d] = %c%c, want %c%c", i, p.First, p.Second, want[i][0], want[i][1])
		}
	}
}

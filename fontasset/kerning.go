package fontasset

import (
	"cmp"
	"slices"
	"sync"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/typeface"
)

// KerningPair is an explicit adjustment for an ordered codepoint pair.
type KerningPair struct {
	First, Second rune
	Adjustment    typeface.PairAdjustment
}

// KerningTable holds explicit kerning pairs and, optionally, a typeface
// kerner consulted lazily for pairs without an explicit entry.
//
// Explicit pairs take precedence over the kerner. KerningTable is safe for
// concurrent use.
type KerningTable struct {
	mu       sync.RWMutex
	explicit map[uint64]typeface.PairAdjustment
	derived  map[uint64]derivedPair
	source   typeface.Kerner
}

type derivedPair struct {
	adj typeface.PairAdjustment
	ok  bool
}

// NewKerningTable creates a table backed by source, which may be nil.
func NewKerningTable(source typeface.Kerner) *KerningTable {
	return &KerningTable{
		explicit: make(map[uint64]typeface.PairAdjustment),
		derived:  make(map[uint64]derivedPair),
		source:   source,
	}
}

// AddPair registers an explicit pair. A second registration of the same
// ordered pair is ignored with a warning and reports false.
func (t *KerningTable) AddPair(first, second rune, adj typeface.PairAdjustment) bool {
	key := typeface.PairKey(first, second)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.explicit[key]; dup {
		textmesh.Logger().Warn("fontasset: duplicate kerning pair ignored",
			"first", string(first), "second", string(second))
		return false
	}
	t.explicit[key] = adj
	return true
}

// Lookup returns the adjustment for the ordered pair.
func (t *KerningTable) Lookup(first, second rune) (typeface.PairAdjustment, bool) {
	key := typeface.PairKey(first, second)

	t.mu.RLock()
	if adj, ok := t.explicit[key]; ok {
		t.mu.RUnlock()
		return adj, true
	}
	d, seen := t.derived[key]
	t.mu.RUnlock()

	if seen || t.source == nil {
		return d.adj, d.ok
	}

	adj, ok := t.source.Kern(first, second)
	t.mu.Lock()
	t.derived[key] = derivedPair{adj: adj, ok: ok}
	t.mu.Unlock()
	return adj, ok
}

// Len returns the number of explicit pairs.
func (t *KerningTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.explicit)
}

// Pairs returns the explicit pairs sorted by (First, Second).
func (t *KerningTable) Pairs() []KerningPair {
	t.mu.RLock()
	out := make([]KerningPair, 0, len(t.explicit))
	for key, adj := range t.explicit {
		out = append(out, KerningPair{
			First:      rune(key >> 32),
			Second:     rune(uint32(key)),
			Adjustment: adj,
		})
	}
	t.mu.RUnlock()

	slices.SortFunc(out, func(a, b KerningPair) int {
		if c := cmp.Compare(a.First, b.First); c != 0 {
			return c
		}
		return cmp.Compare(a.Second, b.Second)
	})
	return out
}

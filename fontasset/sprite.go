package fontasset

import (
	"strings"

	"github.com/gogpu/textmesh/atlas"
)

// Sprite is one inline image of a sprite sheet.
type Sprite struct {
	Name    string
	Unicode rune

	// Rect is the sprite's pixel rectangle in the sheet.
	Rect atlas.Rect

	// Glyph-like metrics in pixels at the sheet's native size.
	BearingX, BearingY float64
	Advance            float64
	Scale              float64
}

// SpriteAsset is a sprite sheet referenced by <sprite> tags.
type SpriteAsset struct {
	Name     string
	Material *Material

	// Width and Height of the sheet in pixels.
	Width, Height int

	// Ascent is the line ascent sprites are scaled against. Zero selects
	// the tallest sprite.
	Ascent float64

	Fallbacks []*SpriteAsset

	sprites   []Sprite
	byName    map[string]int
	byUnicode map[rune]int
}

// NewSpriteAsset builds a sprite asset. Sprite names are matched
// case-insensitively; a zero Scale is treated as 1.
func NewSpriteAsset(name string, width, height int, sprites []Sprite) *SpriteAsset {
	s := &SpriteAsset{
		Name:      name,
		Material:  NewMaterial(name + " Material"),
		Width:     width,
		Height:    height,
		sprites:   make([]Sprite, len(sprites)),
		byName:    make(map[string]int, len(sprites)),
		byUnicode: make(map[rune]int, len(sprites)),
	}
	for i, sp := range sprites {
		if sp.Scale == 0 {
			sp.Scale = 1
		}
		s.sprites[i] = sp
		if sp.Name != "" {
			s.byName[strings.ToLower(sp.Name)] = i
		}
		if sp.Unicode != 0 {
			s.byUnicode[sp.Unicode] = i
		}
		s.Ascent = max(s.Ascent, float64(sp.Rect.H))
	}
	return s
}

// Len returns the number of sprites.
func (s *SpriteAsset) Len() int { return len(s.sprites) }

// Sprite returns the sprite at index i.
func (s *SpriteAsset) Sprite(i int) (Sprite, bool) {
	if i < 0 || i >= len(s.sprites) {
		return Sprite{}, false
	}
	return s.sprites[i], true
}

// IndexByName returns the index of the named sprite, searching fallbacks
// depth-first. The returned asset is the one that holds the sprite.
func (s *SpriteAsset) IndexByName(name string) (int, *SpriteAsset, bool) {
	return s.search(func(a *SpriteAsset) (int, bool) {
		i, ok := a.byName[strings.ToLower(name)]
		return i, ok
	}, map[*SpriteAsset]bool{})
}

// IndexByUnicode returns the index of the sprite mapped to r.
func (s *SpriteAsset) IndexByUnicode(r rune) (int, *SpriteAsset, bool) {
	return s.search(func(a *SpriteAsset) (int, bool) {
		i, ok := a.byUnicode[r]
		return i, ok
	}, map[*SpriteAsset]bool{})
}

// UV returns the normalized sheet coordinates of sprite i.
func (s *SpriteAsset) UV(i int) (u0, v0, u1, v1 float32) {
	sp, ok := s.Sprite(i)
	if !ok || s.Width == 0 || s.Height == 0 {
		return 0, 0, 0, 0
	}
	w, h := float32(s.Width), float32(s.Height)
	return float32(sp.Rect.X) / w, float32(sp.Rect.Y) / h,
		float32(sp.Rect.Right()) / w, float32(sp.Rect.Bottom()) / h
}

func (s *SpriteAsset) search(match func(*SpriteAsset) (int, bool), visited map[*SpriteAsset]bool) (int, *SpriteAsset, bool) {
	if s == nil || visited[s] {
		return 0, nil, false
	}
	visited[s] = true
	if i, ok := match(s); ok {
		return i, s, true
	}
	for _, fb := range s.Fallbacks {
		if i, a, ok := fb.search(match, visited); ok {
			return i, a, true
		}
	}
	return 0, nil, false
}

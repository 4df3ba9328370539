package fontasset

import (
	"strings"
	"sync"

	"github.com/gogpu/textmesh"
)

// Resolver is the asset resolver consulted by markup tags that reference
// assets by name. A false result makes the tag literal text.
type Resolver interface {
	ResolveFont(name string) (*Asset, bool)
	ResolveMaterial(name string) (*Material, bool)
	ResolveSprite(name string) (*SpriteAsset, bool)
}

// Gradient is a four-corner color gradient applied per character quad.
type Gradient struct {
	TopLeft, TopRight, BottomLeft, BottomRight textmesh.RGBA
}

// Solid returns a gradient with all corners set to c.
func Solid(c textmesh.RGBA) Gradient {
	return Gradient{TopLeft: c, TopRight: c, BottomLeft: c, BottomRight: c}
}

// GradientResolver is optionally implemented by a Resolver to support
// <gradient=name> tags.
type GradientResolver interface {
	ResolveGradient(name string) (Gradient, bool)
}

// Registry is an in-memory Resolver and GradientResolver. Names are
// matched case-insensitively. Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	fonts     map[string]*Asset
	materials map[string]*Material
	sprites   map[string]*SpriteAsset
	gradients map[string]Gradient
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts:     make(map[string]*Asset),
		materials: make(map[string]*Material),
		sprites:   make(map[string]*SpriteAsset),
		gradients: make(map[string]Gradient),
	}
}

// AddFont registers a font asset under its name.
func (r *Registry) AddFont(a *Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[key(a.Name())] = a
}

// AddMaterial registers a material under its name.
func (r *Registry) AddMaterial(m *Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials[key(m.Name)] = m
}

// AddSprite registers a sprite asset under its name.
func (r *Registry) AddSprite(s *SpriteAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites[key(s.Name)] = s
}

// AddGradient registers a named gradient.
func (r *Registry) AddGradient(name string, g Gradient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gradients[key(name)] = g
}

// ResolveFont implements Resolver.
func (r *Registry) ResolveFont(name string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.fonts[key(name)]
	return a, ok
}

// ResolveMaterial implements Resolver.
func (r *Registry) ResolveMaterial(name string) (*Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[key(name)]
	return m, ok
}

// ResolveSprite implements Resolver.
func (r *Registry) ResolveSprite(name string) (*SpriteAsset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sprites[key(name)]
	return s, ok
}

// ResolveGradient implements GradientResolver.
func (r *Registry) ResolveGradient(name string) (Gradient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.gradients[key(name)]
	return g, ok
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

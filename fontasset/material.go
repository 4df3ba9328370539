package fontasset

import "sync/atomic"

var materialIDs atomic.Uint32

// Material identifies the shading parameters a renderer uses for a batch
// of quads. The layout core only uses it as a bucket key; the properties
// are opaque to it.
type Material struct {
	Name       string
	ID         uint32
	Properties map[string]float64
}

// NewMaterial returns a material with a process-unique ID.
func NewMaterial(name string) *Material {
	return &Material{
		Name:       name,
		ID:         materialIDs.Add(1),
		Properties: make(map[string]float64),
	}
}

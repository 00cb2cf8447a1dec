package water

import (
	"fmt"
	gomath "math"

	"github.com/waveforge/fluidsim/pkg/math"
)

// Component is one plane wave traveling along Direction at its own speed.
type Component struct {
	Amplitude float32
	Frequency float32
	Speed     float32
	Direction math.Vec2
}

// DefaultComponents returns the reference wave pair: a larger slow swell
// running mostly along X and a smaller one mostly along Z. Their
// superposition gives a non-repeating, anisotropic chop.
func DefaultComponents() []Component {
	return []Component{
		{Amplitude: 0.6, Frequency: 0.8, Speed: 0.3, Direction: math.Vec2{X: 1, Y: 0.2}},
		{Amplitude: 0.3, Frequency: 0.6, Speed: 0.2, Direction: math.Vec2{X: 0.2, Y: 1}},
	}
}

// Field is a fixed set of wave components evaluated as an analytic height
// field. Directions are normalized at construction.
type Field struct {
	components []Component
}

// NewField validates and normalizes the component set.
func NewField(components []Component) (*Field, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("wave field: no components")
	}
	normalized := make([]Component, len(components))
	for i, c := range components {
		if c.Direction.Length() == 0 {
			return nil, fmt.Errorf("wave component %d: zero-length direction", i)
		}
		c.Direction = c.Direction.Normalize()
		normalized[i] = c
	}
	return &Field{components: normalized}, nil
}

// Components returns the normalized component set.
func (f *Field) Components() []Component { return f.components }

// Height evaluates the summed wave height at world position (px, pz) and
// simulation time t. Each component samples the position shifted back along
// both axes by speed*t, then projects onto its travel direction.
func (f *Field) Height(px, pz, t float32) float32 {
	var h float32
	for _, c := range f.components {
		sample := math.Vec2{X: px - c.Speed*t, Y: pz - c.Speed*t}
		h += c.Amplitude * sinf(c.Frequency*c.Direction.Dot(sample))
	}
	return h
}

// Update recomputes every vertex height and every interior normal for
// simulation time t. It mutates the vertex array in place, allocates
// nothing, and is deterministic in t. The outermost ring of vertices keeps
// whatever normal it last held; the update never revisits it. That matches
// the observed behavior of the finite-difference pass and the shell renders
// fine with it, so it stays.
func (v *Volume) Update(t float32) {
	g := v.grid

	// Top surface heights.
	for z := 0; z < g.Depth; z++ {
		for x := 0; x < g.Width; x++ {
			p := &v.vertices[v.topIndex(x, z)]
			p.Position[1] = v.field.Height(p.Position[0], p.Position[2], t)
		}
	}

	// Bottom surface rides the top at a fixed offset.
	for z := 0; z < g.Depth; z++ {
		for x := 0; x < g.Width; x++ {
			top := v.vertices[v.topIndex(x, z)].Position[1]
			v.vertices[v.bottomIndex(x, z)].Position[1] = top - g.Thickness
		}
	}

	// Interior top normals from central differences.
	for z := 1; z < g.Depth-1; z++ {
		for x := 1; x < g.Width-1; x++ {
			dx := (v.vertices[v.topIndex(x+1, z)].Position[1] - v.vertices[v.topIndex(x-1, z)].Position[1]) * 0.5
			dz := (v.vertices[v.topIndex(x, z+1)].Position[1] - v.vertices[v.topIndex(x, z-1)].Position[1]) * 0.5
			n := math.Vec3{X: -dx, Y: 1, Z: -dz}.Normalize()
			v.vertices[v.topIndex(x, z)].Normal = [3]float32{n.X, n.Y, n.Z}
		}
	}

	// Interior bottom normals, sign-flipped since the surface faces down.
	// Differences come from the bottom's own height samples.
	for z := 1; z < g.Depth-1; z++ {
		for x := 1; x < g.Width-1; x++ {
			dx := (v.vertices[v.bottomIndex(x+1, z)].Position[1] - v.vertices[v.bottomIndex(x-1, z)].Position[1]) * 0.5
			dz := (v.vertices[v.bottomIndex(x, z+1)].Position[1] - v.vertices[v.bottomIndex(x, z-1)].Position[1]) * 0.5
			n := math.Vec3{X: dx, Y: -1, Z: dz}.Normalize()
			v.vertices[v.bottomIndex(x, z)].Normal = [3]float32{n.X, n.Y, n.Z}
		}
	}
}

func sinf(x float32) float32 {
	return float32(gomath.Sin(float64(x)))
}

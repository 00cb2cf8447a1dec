// Package water builds and animates the water slab mesh.
//
// The slab is a closed shell: a top surface driven by a sum of traveling
// sine waves, a bottom surface riding a fixed distance below it, and four
// side skirts joining their edges. Topology is built once; only vertex
// heights and normals change per tick.
package water

import (
	"fmt"
)

// Vertex is one mesh vertex in the GPU layout: position then normal,
// 24 bytes total.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// VertexSize is the byte stride of a Vertex in the vertex buffer.
const VertexSize = 6 * 4

// Grid describes the slab dimensions. Width and Depth are vertex counts
// along X and Z; SizeX and SizeZ are world-space extents; Thickness is the
// vertical gap between the top and bottom surfaces.
type Grid struct {
	Width     int
	Depth     int
	SizeX     float32
	SizeZ     float32
	Thickness float32
}

// Validate checks the grid parameters. Central-difference normals need at
// least one interior row and column, so both axes require 3+ vertices.
func (g Grid) Validate() error {
	if g.Width < 3 || g.Depth < 3 {
		return fmt.Errorf("grid %dx%d: need at least 3 vertices per axis", g.Width, g.Depth)
	}
	if g.SizeX <= 0 || g.SizeZ <= 0 {
		return fmt.Errorf("grid extents %gx%g: must be positive", g.SizeX, g.SizeZ)
	}
	if g.Thickness <= 0 {
		return fmt.Errorf("thickness %g: must be positive", g.Thickness)
	}
	return nil
}

// Volume owns the slab geometry: a single vertex array holding the top
// surface followed by the bottom surface, and an immutable triangle index
// list closing the shell.
type Volume struct {
	grid  Grid
	field *Field

	vertices    []Vertex
	indices     []uint32
	bottomStart int
}

// NewVolume builds the slab topology for the given grid and wave set.
// Passing a nil wave slice selects the reference components. The returned
// volume is fully constructed or the error describes the invalid parameter;
// there is no partial state.
func NewVolume(grid Grid, waves []Component) (*Volume, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("water volume: %w", err)
	}
	if waves == nil {
		waves = DefaultComponents()
	}
	field, err := NewField(waves)
	if err != nil {
		return nil, fmt.Errorf("water volume: %w", err)
	}

	v := &Volume{
		grid:        grid,
		field:       field,
		bottomStart: grid.Width * grid.Depth,
	}
	v.buildVertices()
	v.buildIndices()
	return v, nil
}

// Grid returns the grid parameters.
func (v *Volume) Grid() Grid { return v.grid }

// Field returns the wave field driving the top surface.
func (v *Volume) Field() *Field { return v.field }

// Vertices returns the live vertex array. The caller must treat it as
// read-only; Update mutates it in place.
func (v *Volume) Vertices() []Vertex { return v.vertices }

// Indices returns the immutable triangle index list.
func (v *Volume) Indices() []uint32 { return v.indices }

// VertexCount returns the total vertex count (top and bottom surfaces).
func (v *Volume) VertexCount() int { return len(v.vertices) }

// topIndex maps grid coordinates to the flat index of a top-surface vertex.
func (v *Volume) topIndex(x, z int) int {
	return x + z*v.grid.Width
}

// bottomIndex maps grid coordinates to the flat index of a bottom-surface
// vertex.
func (v *Volume) bottomIndex(x, z int) int {
	return v.bottomStart + x + z*v.grid.Width
}

// buildVertices lays out both surfaces centered on the origin in XZ.
// Normals start as flat placeholders; the first Update overwrites the
// interior ones.
func (v *Volume) buildVertices() {
	g := v.grid
	v.vertices = make([]Vertex, 2*g.Width*g.Depth)

	for z := 0; z < g.Depth; z++ {
		for x := 0; x < g.Width; x++ {
			fx := float32(x) / float32(g.Width-1)
			fz := float32(z) / float32(g.Depth-1)
			px := fx*g.SizeX - 0.5*g.SizeX
			pz := fz*g.SizeZ - 0.5*g.SizeZ

			v.vertices[v.topIndex(x, z)] = Vertex{
				Position: [3]float32{px, 0, pz},
				Normal:   [3]float32{0, 1, 0},
			}
			v.vertices[v.bottomIndex(x, z)] = Vertex{
				Position: [3]float32{px, -g.Thickness, pz},
				Normal:   [3]float32{0, -1, 0},
			}
		}
	}
}

// buildIndices emits the closed shell: top cap, bottom cap with reversed
// winding, then the four skirts. Shading never depends on face orientation
// (culling stays off), only on consistency within each surface.
func (v *Volume) buildIndices() {
	g := v.grid
	capTris := 2 * (g.Width - 1) * (g.Depth - 1)
	skirtQuads := 2*(g.Width-1) + 2*(g.Depth-1)
	v.indices = make([]uint32, 0, (2*capTris+2*skirtQuads)*3)

	// Top cap.
	for z := 0; z < g.Depth-1; z++ {
		for x := 0; x < g.Width-1; x++ {
			i0 := uint32(v.topIndex(x, z))
			i1 := uint32(v.topIndex(x+1, z))
			i2 := uint32(v.topIndex(x, z+1))
			i3 := uint32(v.topIndex(x+1, z+1))
			v.indices = append(v.indices, i0, i1, i2, i1, i3, i2)
		}
	}

	// Bottom cap: same corners, reversed winding.
	for z := 0; z < g.Depth-1; z++ {
		for x := 0; x < g.Width-1; x++ {
			i0 := uint32(v.bottomIndex(x, z))
			i1 := uint32(v.bottomIndex(x+1, z))
			i2 := uint32(v.bottomIndex(x, z+1))
			i3 := uint32(v.bottomIndex(x+1, z+1))
			v.indices = append(v.indices, i0, i2, i1, i1, i2, i3)
		}
	}

	// Left skirt (x=0).
	for z := 0; z < g.Depth-1; z++ {
		ta := uint32(v.topIndex(0, z))
		tb := uint32(v.topIndex(0, z+1))
		ba := uint32(v.bottomIndex(0, z))
		bb := uint32(v.bottomIndex(0, z+1))
		v.indices = append(v.indices, ta, tb, ba, tb, bb, ba)
	}

	// Right skirt (x=Width-1): mirrored order.
	for z := 0; z < g.Depth-1; z++ {
		ta := uint32(v.topIndex(g.Width-1, z))
		tb := uint32(v.topIndex(g.Width-1, z+1))
		ba := uint32(v.bottomIndex(g.Width-1, z))
		bb := uint32(v.bottomIndex(g.Width-1, z+1))
		v.indices = append(v.indices, tb, ta, bb, ta, ba, bb)
	}

	// Front skirt (z=0): mirrored order.
	for x := 0; x < g.Width-1; x++ {
		ta := uint32(v.topIndex(x, 0))
		tb := uint32(v.topIndex(x+1, 0))
		ba := uint32(v.bottomIndex(x, 0))
		bb := uint32(v.bottomIndex(x+1, 0))
		v.indices = append(v.indices, tb, ta, bb, ta, ba, bb)
	}

	// Back skirt (z=Depth-1).
	for x := 0; x < g.Width-1; x++ {
		ta := uint32(v.topIndex(x, g.Depth-1))
		tb := uint32(v.topIndex(x+1, g.Depth-1))
		ba := uint32(v.bottomIndex(x, g.Depth-1))
		bb := uint32(v.bottomIndex(x+1, g.Depth-1))
		v.indices = append(v.indices, ta, tb, ba, tb, bb, ba)
	}
}

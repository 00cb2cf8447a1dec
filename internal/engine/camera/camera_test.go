package camera

import (
	gomath "math"
	"testing"
)

func TestDefaultPosition(t *testing.T) {
	c := NewOrbitCamera()
	pos := c.Position()

	// Default pose reproduces the reference view at roughly (0, 50, 100).
	if gomath.Abs(float64(pos.X)) > 0.5 {
		t.Errorf("default X = %v, want ~0", pos.X)
	}
	if gomath.Abs(float64(pos.Y)-50) > 1 {
		t.Errorf("default Y = %v, want ~50", pos.Y)
	}
	if gomath.Abs(float64(pos.Z)-100) > 1 {
		t.Errorf("default Z = %v, want ~100", pos.Z)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch after huge drag up = %v, want clamp at %v", c.RotationX, c.MaxPitch)
	}

	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch after huge drag down = %v, want clamp at %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 1000; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance after zooming in = %v, want clamp at %v", c.Distance, c.MinDistance)
	}

	for i := 0; i < 1000; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance after zooming out = %v, want clamp at %v", c.Distance, c.MaxDistance)
	}
}

func TestFitToSlab(t *testing.T) {
	c := NewOrbitCamera()
	c.CenterX, c.CenterY, c.CenterZ = 5, 5, 5

	c.FitToSlab(300, 200)

	if c.CenterX != 0 || c.CenterY != 0 || c.CenterZ != 0 {
		t.Errorf("center = (%v,%v,%v), want origin", c.CenterX, c.CenterY, c.CenterZ)
	}
	if c.Distance != 300*0.55 {
		t.Errorf("distance = %v, want %v", c.Distance, 300*0.55)
	}

	// Tiny slabs never bring the camera inside the minimum distance.
	c.FitToSlab(1, 1)
	if c.Distance != c.MinDistance {
		t.Errorf("distance for tiny slab = %v, want %v", c.Distance, c.MinDistance)
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	view := c.ViewMatrix()
	pos := c.Position()

	// The view transform must map the camera position to the origin.
	x := view[0]*pos.X + view[4]*pos.Y + view[8]*pos.Z + view[12]
	y := view[1]*pos.X + view[5]*pos.Y + view[9]*pos.Z + view[13]
	z := view[2]*pos.X + view[6]*pos.Y + view[10]*pos.Z + view[14]
	for i, v := range []float32{x, y, z} {
		if gomath.Abs(float64(v)) > 1e-4 {
			t.Errorf("view*eye component %d = %v, want 0", i, v)
		}
	}
}

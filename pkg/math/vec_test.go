package math

import (
	gomath "math"
	"testing"
)

func TestVec2Dot(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	if got, want := a.Dot(b), float32(11); got != want {
		t.Errorf("Vec2.Dot() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := Vec2{1, 0.2}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	// Direction preserved.
	if n.Y/n.X < 0.199 || n.Y/n.X > 0.201 {
		t.Errorf("Vec2.Normalize() changed direction: %v", n)
	}
}

func TestVec2NormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Vec2{}.Normalize() = %v, want zero vector", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{-0.3, 1, 0.4}.Normalize()
	l := float64(n.Length())
	if gomath.Abs(l-1) > 1e-5 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got, want := v.Length(), float32(7); got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

package quarkgl

import "testing"

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4LookAt(V3(1, 2, 3), V3(0, 0, 0), V3(0, 0, 1))
	if got := Mat4Mul(a, b); got != b {
		t.Fatalf("identity*b mismatch")
	}
	if got := Mat4Mul(b, a); got != b {
		t.Fatalf("b*identity mismatch")
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := V3(0, -3, 0)
	m := Mat4LookAt(eye, V3(0, 0, 0), V3(0, 0, 1))
	p := Mat4MulV4(m, Vec4{X: eye.X, Y: eye.Y, Z: eye.Z, W: 1})
	if abs32(p.X) > 1e-5 || abs32(p.Y) > 1e-5 || abs32(p.Z) > 1e-5 {
		t.Fatalf("eye in view space = %+v, want origin", p)
	}
	// The target lies on -Z in view space.
	q := Mat4MulV4(m, Vec4{W: 1})
	if q.Z >= 0 {
		t.Fatalf("target view z = %v, want < 0", q.Z)
	}
}

func TestOrbitApplyZUp(t *testing.T) {
	var cam Camera
	o := OrbitController{Elevation: 90 - 1e-3, Radius: 2}
	o.Apply(&cam)
	if cam.Position.Z < 1.99 {
		t.Fatalf("camera z = %v, want near 2", cam.Position.Z)
	}
	if cam.Up != V3(0, 0, 1) {
		t.Fatalf("camera up = %+v, want +z", cam.Up)
	}
}

func TestOrbitRotateClampsElevation(t *testing.T) {
	o := OrbitController{Elevation: 80}
	o.Rotate(370, 30)
	if o.Elevation != maxElevation {
		t.Fatalf("elevation = %v, want %v", o.Elevation, maxElevation)
	}
	if o.Azimuth != 10 {
		t.Fatalf("azimuth = %v, want 10", o.Azimuth)
	}
	o.Rotate(0, -500)
	if o.Elevation != -maxElevation {
		t.Fatalf("elevation = %v, want %v", o.Elevation, -maxElevation)
	}
}

func TestOrbitZoomClamps(t *testing.T) {
	o := OrbitController{Radius: 3, MinRadius: 2, MaxRadius: 6}
	o.Zoom(-5)
	if o.Radius != 2 {
		t.Fatalf("radius = %v, want 2", o.Radius)
	}
	o.Zoom(10)
	if o.Radius != 6 {
		t.Fatalf("radius = %v, want 6", o.Radius)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

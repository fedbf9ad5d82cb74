package view

import (
	"math"

	"blochview/quarkgl"

	"gonum.org/v1/gonum/spatial/r3"
)

const coneSegments = 8

func v3(v r3.Vec) quarkgl.Vec3 {
	return quarkgl.V3(quarkgl.Scalar(v.X), quarkgl.Scalar(v.Y), quarkgl.Scalar(v.Z))
}

// newSphereWireframe samples the unit sphere on a uSteps×vSteps grid with
// u ∈ [0, 2π] and v ∈ [0, π], both inclusive, and connects grid neighbours.
func newSphereWireframe(uSteps, vSteps int) quarkgl.Mesh {
	uSteps = max(uSteps, 2)
	vSteps = max(vSteps, 2)

	verts := make([]quarkgl.Vertex, 0, uSteps*vSteps)
	for i := 0; i < uSteps; i++ {
		u := 2 * math.Pi * float64(i) / float64(uSteps-1)
		for j := 0; j < vSteps; j++ {
			v := math.Pi * float64(j) / float64(vSteps-1)
			p := r3.Vec{X: math.Cos(u) * math.Sin(v), Y: math.Sin(u) * math.Sin(v), Z: math.Cos(v)}
			verts = append(verts, quarkgl.Vertex{Pos: v3(p)})
		}
	}

	idx := func(i, j int) uint16 { return uint16(i*vSteps + j) }
	lines := make([]uint16, 0, 4*uSteps*vSteps)
	for i := 0; i < uSteps; i++ {
		for j := 0; j < vSteps; j++ {
			if j+1 < vSteps {
				lines = append(lines, idx(i, j), idx(i, j+1))
			}
			if i+1 < uSteps {
				lines = append(lines, idx(i, j), idx(i+1, j))
			}
		}
	}
	return quarkgl.Mesh{Vertices: verts, Lines: lines}
}

// newArrowMesh builds a shaft from origin to origin+dir and a cone head whose
// length is headRatio of the arrow length.
func newArrowMesh(origin, dir r3.Vec, headRatio float64) quarkgl.Mesh {
	tip := r3.Add(origin, dir)
	length := r3.Norm(dir)
	if length == 0 {
		return quarkgl.Mesh{
			Vertices: []quarkgl.Vertex{{Pos: v3(origin)}, {Pos: v3(tip)}},
			Lines:    []uint16{0, 1},
		}
	}

	axis := r3.Scale(1/length, dir)
	headLen := headRatio * length
	headRadius := 0.4 * headLen
	base := r3.Sub(tip, r3.Scale(headLen, axis))

	u, w := perpendicularBasis(axis)

	verts := make([]quarkgl.Vertex, 0, 2+coneSegments)
	verts = append(verts, quarkgl.Vertex{Pos: v3(origin)}, quarkgl.Vertex{Pos: v3(tip)})
	for k := 0; k < coneSegments; k++ {
		a := 2 * math.Pi * float64(k) / coneSegments
		off := r3.Add(r3.Scale(headRadius*math.Cos(a), u), r3.Scale(headRadius*math.Sin(a), w))
		verts = append(verts, quarkgl.Vertex{Pos: v3(r3.Add(base, off))})
	}

	indices := make([]uint16, 0, 3*coneSegments)
	for k := 0; k < coneSegments; k++ {
		a := uint16(2 + k)
		b := uint16(2 + (k+1)%coneSegments)
		indices = append(indices, 1, a, b)
	}

	return quarkgl.Mesh{
		Vertices: verts,
		Indices:  indices,
		Lines:    []uint16{0, 1},
	}
}

// perpendicularBasis returns two unit vectors orthogonal to the unit vector a
// and to each other.
func perpendicularBasis(a r3.Vec) (r3.Vec, r3.Vec) {
	ref := r3.Vec{Z: 1}
	if math.Abs(a.Z) > 0.9 {
		ref = r3.Vec{X: 1}
	}
	u := r3.Unit(r3.Cross(a, ref))
	w := r3.Cross(a, u)
	return u, w
}

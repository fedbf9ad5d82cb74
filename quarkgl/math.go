package quarkgl

import "math"

// Scalar is the float type of the pipeline. float32 keeps meshes and depth
// buffers small.
type Scalar = float32

type Vec3 struct {
	X, Y, Z Scalar
}

// Vec4 is a homogeneous clip-space point.
type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a column-major 4×4 matrix: m[col*4+row].
type Mat4 [16]Scalar

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross is right-handed.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) Scalar { return Scalar(math.Sqrt(float64(Dot(v, v)))) }

// Normalize returns the zero vector unchanged.
func Normalize(v Vec3) Vec3 {
	if l := Len(v); l != 0 {
		return v.Mul(1 / l)
	}
	return Vec3{}
}

func Clamp01(v Scalar) Scalar { return min(max(v, 0), 1) }

func Mat4Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Mat4Mul returns a·b, so b is applied first.
func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = a[row]*b[col*4] +
				a[4+row]*b[col*4+1] +
				a[8+row]*b[col*4+2] +
				a[12+row]*b[col*4+3]
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Point transforms p as a position (w = 1).
func (m Mat4) Point(p Vec3) Vec4 {
	return Mat4MulV4(m, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
}

// Mat4LookAt builds a right-handed view matrix looking from eye at target.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	f := Normalize(target.Sub(eye))
	s := Normalize(Cross(f, up))
	u := Cross(s, f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-Dot(s, eye), -Dot(u, eye), Dot(f, eye), 1,
	}
}

// Mat4Perspective maps the view frustum to clip space with depth in [-1, 1].
func Mat4Perspective(fovY, aspect, near, far Scalar) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / Scalar(math.Tan(float64(fovY)/2))
	nf := 1 / (near - far)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) * nf
	m[11] = -1
	m[14] = 2 * far * near * nf
	return m
}

// Mat4Ortho maps the box to clip space. Degenerate extents are treated as 1.
func Mat4Ortho(left, right, bottom, top, near, far Scalar) Mat4 {
	span := func(a, b Scalar) Scalar {
		if d := b - a; d != 0 {
			return d
		}
		return 1
	}
	w, h, d := span(left, right), span(bottom, top), span(near, far)

	m := Mat4Identity()
	m[0] = 2 / w
	m[5] = 2 / h
	m[10] = -2 / d
	m[12] = -(right + left) / w
	m[13] = -(top + bottom) / h
	m[14] = -(far + near) / d
	return m
}

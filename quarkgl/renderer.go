package quarkgl

// Renderer rasterizes a Scene into a Target on the CPU.
//
// Reuse one Renderer across frames; the depth buffer is only reallocated when
// the target grows.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
}

// NewRenderer creates a renderer for targets up to w×h. A depth buffer is
// allocated only when enableDepth is set.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		ClearColor: RGB(0, 0, 0),
	}
	r.EnableDepth(enableDepth, w, h)
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

// Render clears the target and draws every enabled mesh. All triangles are
// drawn before any line segment so translucent wireframes sit on top of solid
// geometry; within each pass meshes are drawn in id order.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		for i := range r.depthBuf {
			r.depthBuf[i] = 1e9
		}
	}

	s.eachMesh(func(m *Mesh) {
		if m.Enabled && len(m.Indices) >= 3 {
			r.triangles(t, newViewport(s.Camera, m.Transform, w, h), m, s.Light)
		}
	})
	s.eachMesh(func(m *Mesh) {
		if m.Enabled && len(m.Lines) >= 2 {
			r.lines(t, newViewport(s.Camera, m.Transform, w, h), m)
		}
	})
}

func (r *Renderer) triangles(t Target, vp viewport, m *Mesh, light Light) {
	n := len(m.Vertices)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		v0, v1, v2 := m.Vertices[i0].Pos, m.Vertices[i1].Pos, m.Vertices[i2].Pos

		a, okA := vp.project(v0)
		b, okB := vp.project(v1)
		c, okC := vp.project(v2)
		if !okA || !okB || !okC {
			continue
		}

		col := m.Material.BaseColor
		if light.Mode == LightAmbientDirectional {
			col = col.MulScalar(lightIntensity(light, Normalize(Cross(v1.Sub(v0), v2.Sub(v0)))))
		}

		if r.Mode == RenderWireframe {
			r.drawLine(t, a, b, col)
			r.drawLine(t, b, c, col)
			r.drawLine(t, c, a, col)
			continue
		}
		r.fillTriangle(t, vp.w, vp.h, a, b, c, col)
	}
}

func (r *Renderer) lines(t Target, vp viewport, m *Mesh) {
	n := len(m.Vertices)
	col := m.Material.BaseColor.WithAlpha(m.Material.Opacity)
	for i := 0; i+1 < len(m.Lines); i += 2 {
		i0, i1 := int(m.Lines[i]), int(m.Lines[i+1])
		if i0 >= n || i1 >= n {
			continue
		}
		a, okA := vp.project(m.Vertices[i0].Pos)
		b, okB := vp.project(m.Vertices[i1].Pos)
		if !okA || !okB {
			continue
		}
		r.drawLine(t, a, b, col)
	}
}

// lightIntensity is two-sided: thin cones are seen from both faces.
func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = -d
	}
	return Clamp01(amb + d*Clamp01(l.DirAmount))
}

// depthTest reports whether z is nearer than the stored depth at x,y and
// records it if so.
func (r *Renderer) depthTest(w, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if x < 0 || x >= w || idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	d := min(max(z*0.5+0.5, 0), 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

// drawLine is Bresenham over the whole segment; the target clips.
func (r *Renderer) drawLine(t Target, a, b screenPoint, c Color) {
	x, y := a.X, a.Y
	dx, dy := abs(b.X-x), -abs(b.Y-y)
	sx, sy := 1, 1
	if x > b.X {
		sx = -1
	}
	if y > b.Y {
		sy = -1
	}
	e := dx + dy
	for {
		t.SetPixel(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// fillTriangle fills a flat-colored triangle of either winding using edge
// functions over its clipped bounding box.
func (r *Renderer) fillTriangle(t Target, w, h int, a, b, c screenPoint, col Color) {
	minX, maxX := max(min(a.X, b.X, c.X), 0), min(max(a.X, b.X, c.X), w-1)
	minY, maxY := max(min(a.Y, b.Y, c.Y), 0), min(max(a.Y, b.Y, c.Y), h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edge(a, b, c.X, c.Y)
	if area == 0 {
		return
	}
	sign := 1
	if area < 0 {
		sign = -1
	}
	inv := 1 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			wa := edge(b, c, x, y)
			wb := edge(c, a, x, y)
			wc := edge(a, b, x, y)
			if wa*sign < 0 || wb*sign < 0 || wc*sign < 0 {
				continue
			}
			z := (float32(wa)*a.Z + float32(wb)*b.Z + float32(wc)*c.Z) * inv
			if r.depthTest(w, x, y, z) {
				t.SetPixel(x, y, col)
			}
		}
	}
}

func edge(p, q screenPoint, x, y int) int {
	return (x-p.X)*(q.Y-p.Y) - (y-p.Y)*(q.X-p.X)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

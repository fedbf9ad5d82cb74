package quarkgl

// viewport maps model-space points of one mesh to target pixels.
type viewport struct {
	mvp  Mat4
	w, h int
}

func newViewport(cam Camera, model Mat4, w, h int) viewport {
	proj := cam.Projection(Scalar(w) / Scalar(h))
	return viewport{
		mvp: Mat4Mul(proj, Mat4Mul(cam.View(), model)),
		w:   w,
		h:   h,
	}
}

// screenPoint is a projected vertex. Z is normalized device depth.
type screenPoint struct {
	X, Y int
	Z    float32
}

// project returns false for points on or behind the eye plane. Points outside
// the target are returned unclipped.
func (vp viewport) project(p Vec3) (screenPoint, bool) {
	c := vp.mvp.Point(p)
	if c.W <= 0 {
		return screenPoint{}, false
	}
	inv := 1 / c.W
	sx := (c.X*inv*0.5 + 0.5) * float32(vp.w-1)
	sy := (0.5 - c.Y*inv*0.5) * float32(vp.h-1)
	return screenPoint{X: int(sx + 0.5), Y: int(sy + 0.5), Z: c.Z * inv}, true
}

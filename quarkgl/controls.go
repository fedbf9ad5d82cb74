package quarkgl

import "math"

// OrbitController places a z-up camera on a sphere around Target.
//
// Elevation and Azimuth are in degrees, matching the usual plotting
// convention: azimuth is measured in the xy-plane from +x, elevation from the
// xy-plane towards +z.
type OrbitController struct {
	Target    Vec3
	Azimuth   Scalar
	Elevation Scalar
	Radius    Scalar

	MinRadius Scalar
	MaxRadius Scalar
}

const maxElevation = 89

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	az := float64(c.Azimuth) * math.Pi / 180
	el := float64(c.Elevation) * math.Pi / 180
	p := V3(
		Scalar(math.Cos(el)*math.Cos(az)),
		Scalar(math.Cos(el)*math.Sin(az)),
		Scalar(math.Sin(el)),
	).Mul(r)

	cam.Position = c.Target.Add(p)
	cam.Target = c.Target
	cam.Up = V3(0, 0, 1)
}

// Rotate moves the camera by the given azimuth and elevation deltas in degrees.
// Elevation is clamped short of the poles so the view never flips.
func (c *OrbitController) Rotate(deltaAzimuth, deltaElevation Scalar) {
	c.Azimuth = Scalar(math.Mod(float64(c.Azimuth+deltaAzimuth), 360))
	c.Elevation += deltaElevation
	if c.Elevation > maxElevation {
		c.Elevation = maxElevation
	}
	if c.Elevation < -maxElevation {
		c.Elevation = -maxElevation
	}
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.Radius += delta
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

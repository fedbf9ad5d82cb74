package view

import (
	"errors"
	"fmt"

	"blochview/bloch"
	"blochview/hal"
	"blochview/quarkgl"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
	"tinygo.org/x/tinyfont"
)

var ErrSceneFull = errors.New("scene full")

const (
	// Scaffold uses four meshes; the rest are for state arrows.
	sceneCapacity = 8

	sphereU = 20
	sphereV = 10

	arrowHeadRatio = 0.05

	defaultAzimuth   = 45
	defaultElevation = 20
	defaultRadius    = 3.4
)

var (
	colorBackground = quarkgl.RGB(0xFF, 0xFF, 0xFF)
	colorSphere     = quarkgl.RGBA(0xD3, 0xD3, 0xD3, 51)
	colorAxis       = quarkgl.RGB(0, 0, 0)
	colorState      = quarkgl.RGB(0xFF, 0, 0)
	colorLabel      = quarkgl.RGB(0, 0, 0)
)

type label struct {
	pos  quarkgl.Vec3
	text string
}

var axisLabels = []label{
	{pos: quarkgl.V3(0, 0, 1.2), text: "|0⟩"},
	{pos: quarkgl.V3(0, 0, -1.3), text: "|1⟩"},
	{pos: quarkgl.V3(1.2, 0, 0), text: "x"},
	{pos: quarkgl.V3(0, 1.2, 0), text: "y"},
}

// Canvas is a software-rendered Bloch sphere on an RGB565 framebuffer.
//
// Drawing calls only change the scene and mark it dirty. Render rasterizes
// into the framebuffer; presenting is left to the caller.
type Canvas struct {
	log zerolog.Logger

	target   *quarkgl.RGB565Target
	renderer *quarkgl.Renderer
	scene    *quarkgl.Scene
	orbit    quarkgl.OrbitController
	font     tinyfont.Fonter

	scaffold []int
	labels   []label
	dirty    bool
}

var _ bloch.Renderer = (*Canvas)(nil)

func NewCanvas(fb hal.Framebuffer, log zerolog.Logger) (*Canvas, error) {
	if fb == nil {
		return nil, errors.New("canvas: no framebuffer")
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("canvas: unsupported pixel format %d", fb.Format())
	}
	w, h := fb.Width(), fb.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas: bad framebuffer size %dx%d", w, h)
	}

	r := quarkgl.NewRenderer(w, h, false)
	r.SetRenderMode(quarkgl.RenderSolidFlat)
	r.ClearColor = colorBackground

	c := &Canvas{
		log: log.With().Str("component", "canvas").Logger(),
		target: &quarkgl.RGB565Target{
			Buf:    fb.Buffer(),
			Stride: fb.StrideBytes(),
			W:      w,
			H:      h,
		},
		renderer: r,
		scene:    quarkgl.CreateScene(sceneCapacity),
		orbit: quarkgl.OrbitController{
			Azimuth:   defaultAzimuth,
			Elevation: defaultElevation,
			Radius:    defaultRadius,
			MinRadius: 2,
			MaxRadius: 8,
		},
		font:  newLabelFont(),
		dirty: true,
	}
	c.scene.Light.Mode = quarkgl.LightOff
	c.orbit.Apply(&c.scene.Camera)
	return c, nil
}

// DrawStaticScaffold adds the wireframe sphere, the three axes and their
// labels. Calling it again is a no-op.
func (c *Canvas) DrawStaticScaffold() error {
	if len(c.scaffold) > 0 {
		return nil
	}

	sphere := newSphereWireframe(sphereU, sphereV)
	sphere.Material = quarkgl.Material{BaseColor: colorSphere.WithAlpha(0xFF), Opacity: colorSphere.A}
	meshes := []quarkgl.Mesh{sphere}

	for _, axis := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		m := newArrowMesh(r3.Scale(-1, axis), r3.Scale(2, axis), arrowHeadRatio)
		m.Material = quarkgl.Material{BaseColor: colorAxis}
		meshes = append(meshes, m)
	}

	ids := make([]int, 0, len(meshes))
	for _, m := range meshes {
		id := c.scene.AddMesh(m)
		if id < 0 {
			for _, added := range ids {
				c.scene.RemoveMesh(added)
			}
			return fmt.Errorf("draw scaffold: %w", ErrSceneFull)
		}
		ids = append(ids, id)
	}
	c.scaffold = ids
	c.labels = axisLabels
	c.RequestRedraw()

	c.log.Debug().Ints("meshes", ids).Msg("scaffold drawn")
	return nil
}

// DrawArrow adds a state arrow from origin along dir.
func (c *Canvas) DrawArrow(origin, dir r3.Vec) (bloch.ArrowHandle, error) {
	m := newArrowMesh(origin, dir, arrowHeadRatio)
	m.Material = quarkgl.Material{BaseColor: colorState}
	id := c.scene.AddMesh(m)
	if id < 0 {
		return 0, fmt.Errorf("draw arrow: %w", ErrSceneFull)
	}
	return bloch.ArrowHandle(id), nil
}

// RemoveArrow detaches an arrow. Unknown handles and scaffold meshes are
// ignored.
func (c *Canvas) RemoveArrow(h bloch.ArrowHandle) {
	for _, id := range c.scaffold {
		if id == int(h) {
			c.log.Warn().Int("handle", int(h)).Msg("refusing to remove scaffold mesh")
			return
		}
	}
	c.scene.RemoveMesh(int(h))
}

func (c *Canvas) RequestRedraw() { c.dirty = true }

// Dirty reports whether a redraw was requested since the last Render.
func (c *Canvas) Dirty() bool { return c.dirty }

// Orbit moves the camera by the given angles in degrees.
func (c *Canvas) Orbit(dAzimuth, dElevation float64) {
	c.orbit.Rotate(quarkgl.Scalar(dAzimuth), quarkgl.Scalar(dElevation))
	c.orbit.Apply(&c.scene.Camera)
	c.RequestRedraw()
}

// Zoom moves the camera towards or away from the sphere.
func (c *Canvas) Zoom(delta float64) {
	c.orbit.Zoom(quarkgl.Scalar(delta))
	c.orbit.Apply(&c.scene.Camera)
	c.RequestRedraw()
}

// View returns the camera azimuth and elevation in degrees.
func (c *Canvas) View() (azimuth, elevation float64) {
	return float64(c.orbit.Azimuth), float64(c.orbit.Elevation)
}

// Target is the pixel target Render draws into.
func (c *Canvas) Target() quarkgl.Target { return c.target }

// Render rasterizes the scene and labels and clears the dirty flag.
func (c *Canvas) Render() {
	c.renderer.Render(c.target, c.scene)
	for _, l := range c.labels {
		x, y, ok := c.scene.Project(l.pos, c.target.W, c.target.H)
		if !ok {
			continue
		}
		drawTextCentered(c.target, c.font, x, y, l.text, colorLabel)
	}
	c.dirty = false
}

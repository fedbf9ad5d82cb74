package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations clip out-of-bounds coordinates. SetPixel with alpha below
// 0xFF blends over the current pixel.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects how triangles are rasterized. Line segments are always
// drawn as lines.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
)

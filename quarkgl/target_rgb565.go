package quarkgl

// RGB565Target renders into a caller-owned RGB565 little-endian buffer.
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) ok() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGB565Target) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return 0, false
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return 0, false
	}
	return off, true
}

func (t *RGB565Target) Clear(c Color) {
	if !t.ok() {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			if off, ok := t.offset(x, y); ok {
				t.Buf[off] = byte(p)
				t.Buf[off+1] = byte(p >> 8)
			}
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	if !t.ok() || c.A == 0 {
		return
	}
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	if c.A != 0xFF {
		c = c.Over(rgb888From565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8))
	}
	p := rgb565From888(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// At returns the pixel at x,y, or the zero Color when out of bounds.
func (t *RGB565Target) At(x, y int) Color {
	if !t.ok() {
		return Color{}
	}
	off, ok := t.offset(x, y)
	if !ok {
		return Color{}
	}
	return rgb888From565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8)
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func rgb888From565(p uint16) Color {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return RGB(uint8(r*255/31), uint8(g*255/63), uint8(b*255/31))
}

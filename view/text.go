package view

import (
	"image/color"

	"blochview/quarkgl"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Baseline offset that roughly centers proggy's capitals on a point.
const capHeight = 7

var _ drivers.Displayer = targetDisplayer{}

// targetDisplayer lets tinyfont draw onto a quarkgl target.
type targetDisplayer struct {
	t quarkgl.Target
}

func (d targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), quarkgl.RGBA(c.R, c.G, c.B, c.A))
}

func (d targetDisplayer) Display() error { return nil }

// braKetFont renders the ket brackets and the minus sign used in control
// labels with their closest ASCII glyphs.
type braKetFont struct {
	base tinyfont.Fonter
}

func newLabelFont() tinyfont.Fonter {
	return braKetFont{base: &proggy.TinySZ8pt7b}
}

func (f braKetFont) GetGlyph(r rune) tinyfont.Glypher {
	return f.base.GetGlyph(asciiFallback(r))
}

func (f braKetFont) GetYAdvance() uint8 { return f.base.GetYAdvance() }

func asciiFallback(r rune) rune {
	switch r {
	case '⟩', '〉', '›':
		return '>'
	case '⟨', '〈', '‹':
		return '<'
	case '−', '–', '—':
		return '-'
	}
	if r < 0x20 || r > 0x7e {
		return '?'
	}
	return r
}

func rgba(c quarkgl.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func drawText(t quarkgl.Target, font tinyfont.Fonter, x, baseline int, s string, c quarkgl.Color) {
	tinyfont.WriteLine(targetDisplayer{t: t}, font, int16(x), int16(baseline), s, rgba(c))
}

// drawTextCentered centers s on (cx, cy).
func drawTextCentered(t quarkgl.Target, font tinyfont.Fonter, cx, cy int, s string, c quarkgl.Color) {
	_, w := tinyfont.LineWidth(font, s)
	drawText(t, font, cx-int(w)/2, cy+capHeight/2, s, c)
}

func fillRect(t quarkgl.Target, x0, y0, x1, y1 int, c quarkgl.Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.SetPixel(x, y, c)
		}
	}
}

func strokeRect(t quarkgl.Target, x0, y0, x1, y1 int, c quarkgl.Color) {
	for x := x0; x < x1; x++ {
		t.SetPixel(x, y0, c)
		t.SetPixel(x, y1-1, c)
	}
	for y := y0; y < y1; y++ {
		t.SetPixel(x0, y, c)
		t.SetPixel(x1-1, y, c)
	}
}

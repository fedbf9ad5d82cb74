package view

import (
	"image"

	"blochview/bloch"
	"blochview/quarkgl"

	"tinygo.org/x/tinyfont"
)

var (
	colorButton      = quarkgl.RGB(0xD9, 0xD9, 0xD9)
	colorButtonHover = quarkgl.RGB(0xF2, 0xF2, 0xF2)
	colorButtonEdge  = quarkgl.RGB(0x40, 0x40, 0x40)
	colorButtonText  = quarkgl.RGB(0, 0, 0)
)

// Placement is a button rectangle in figure fractions with the origin at the
// bottom-left corner.
type Placement struct {
	Left, Bottom, Width, Height float64
}

// Rect converts p to pixels for a w×h framebuffer with a top-left origin.
func (p Placement) Rect(w, h int) image.Rectangle {
	x0 := int(p.Left*float64(w) + 0.5)
	x1 := int((p.Left+p.Width)*float64(w) + 0.5)
	y0 := int((1-p.Bottom-p.Height)*float64(h) + 0.5)
	y1 := int((1-p.Bottom)*float64(h) + 0.5)
	return image.Rect(x0, y0, x1, y1)
}

const (
	buttonWidth  = 0.10
	buttonHeight = 0.075
)

var defaultPlacements = map[bloch.ControlID]Placement{
	bloch.ControlZero:  {Left: 0.70, Bottom: 0.05, Width: buttonWidth, Height: buttonHeight},
	bloch.ControlOne:   {Left: 0.81, Bottom: 0.05, Width: buttonWidth, Height: buttonHeight},
	bloch.ControlPlus:  {Left: 0.70, Bottom: 0.15, Width: buttonWidth, Height: buttonHeight},
	bloch.ControlMinus: {Left: 0.81, Bottom: 0.15, Width: buttonWidth, Height: buttonHeight},
	bloch.ControlProbA: {Left: 0.70, Bottom: 0.25, Width: buttonWidth, Height: buttonHeight},
	bloch.ControlProbB: {Left: 0.81, Bottom: 0.25, Width: buttonWidth, Height: buttonHeight},
}

// DefaultPlacement returns the standard position of a control button.
func DefaultPlacement(id bloch.ControlID) (Placement, bool) {
	p, ok := defaultPlacements[id]
	return p, ok
}

type button struct {
	ctrl bloch.Control
	rect image.Rectangle
}

// Panel lays out the control buttons and tracks pointer hover and press.
type Panel struct {
	buttons []button
	font    tinyfont.Fonter

	hover   int
	pressed int
}

// NewPanel places controls on a w×h framebuffer. Controls without a known
// placement are skipped.
func NewPanel(controls []bloch.Control, w, h int) *Panel {
	p := &Panel{font: newLabelFont(), hover: -1, pressed: -1}
	for _, c := range controls {
		pl, ok := DefaultPlacement(c.ID)
		if !ok {
			continue
		}
		p.buttons = append(p.buttons, button{ctrl: c, rect: pl.Rect(w, h)})
	}
	return p
}

// Len returns the number of placed buttons.
func (p *Panel) Len() int { return len(p.buttons) }

// Rect returns the pixel rectangle of a control's button.
func (p *Panel) Rect(id bloch.ControlID) (image.Rectangle, bool) {
	for _, b := range p.buttons {
		if b.ctrl.ID == id {
			return b.rect, true
		}
	}
	return image.Rectangle{}, false
}

func (p *Panel) index(x, y int) int {
	pt := image.Pt(x, y)
	for i, b := range p.buttons {
		if pt.In(b.rect) {
			return i
		}
	}
	return -1
}

// HitTest returns the control under x,y.
func (p *Panel) HitTest(x, y int) (bloch.ControlID, bool) {
	i := p.index(x, y)
	if i < 0 {
		return 0, false
	}
	return p.buttons[i].ctrl.ID, true
}

// Hover updates the hovered button and reports whether it changed.
func (p *Panel) Hover(x, y int) bool {
	i := p.index(x, y)
	if i == p.hover {
		return false
	}
	p.hover = i
	return true
}

// Press records a pointer press at x,y.
func (p *Panel) Press(x, y int) {
	p.pressed = p.index(x, y)
}

// Release ends a press. A control is activated only when the pointer is
// released over the same button it was pressed on.
func (p *Panel) Release(x, y int) (bloch.ControlID, bool) {
	pressed := p.pressed
	p.pressed = -1
	if pressed < 0 || p.index(x, y) != pressed {
		return 0, false
	}
	return p.buttons[pressed].ctrl.ID, true
}

// Draw paints every button onto t.
func (p *Panel) Draw(t quarkgl.Target) {
	for i, b := range p.buttons {
		bg := colorButton
		if i == p.hover {
			bg = colorButtonHover
		}
		r := b.rect
		fillRect(t, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bg)
		strokeRect(t, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, colorButtonEdge)
		c := r.Min.Add(r.Max).Div(2)
		drawTextCentered(t, p.font, c.X, c.Y, b.ctrl.Label, colorButtonText)
	}
}

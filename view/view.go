// Package view renders the Bloch sphere viewer into a framebuffer and turns
// pointer and keyboard input into control activations.
package view

import (
	"errors"
	"fmt"

	"blochview/bloch"
	"blochview/hal"
	"blochview/quarkgl"

	"github.com/rs/zerolog"
	"tinygo.org/x/tinyfont"
)

const (
	orbitStep = 5
	zoomStep  = 0.2
)

var (
	colorStatus = quarkgl.RGB(0x20, 0x20, 0x20)
	colorHint   = quarkgl.RGB(0x80, 0x80, 0x80)
)

const hint = "1-6 select  arrows orbit  +/- zoom  esc quit"

// Config wires a View to its collaborators.
type Config struct {
	Framebuffer hal.Framebuffer
	Input       hal.Input
	Canvas      *Canvas
	Overlay     *bloch.Overlay
	Dispatcher  *bloch.Dispatcher
	Controls    []bloch.Control
	Log         zerolog.Logger
}

// View is the viewer's per-frame task: it turns input into control
// activations and repaints the framebuffer when something changed.
type View struct {
	log zerolog.Logger

	fb      hal.Framebuffer
	keys    <-chan hal.KeyEvent
	pointer <-chan hal.PointerEvent

	canvas   *Canvas
	panel    *Panel
	overlay  *bloch.Overlay
	disp     *bloch.Dispatcher
	controls []bloch.Control
	font     tinyfont.Fonter

	selected bloch.ControlID
	frames   uint64
}

func New(cfg Config) *View {
	v := &View{
		log:      cfg.Log.With().Str("component", "view").Logger(),
		fb:       cfg.Framebuffer,
		canvas:   cfg.Canvas,
		overlay:  cfg.Overlay,
		disp:     cfg.Dispatcher,
		controls: cfg.Controls,
		font:     newLabelFont(),
	}
	if cfg.Input != nil {
		if kbd := cfg.Input.Keyboard(); kbd != nil {
			v.keys = kbd.Events()
		}
		if ptr := cfg.Input.Pointer(); ptr != nil {
			v.pointer = ptr.Events()
		}
	}
	v.panel = NewPanel(cfg.Controls, cfg.Framebuffer.Width(), cfg.Framebuffer.Height())
	return v
}

// Frames returns how many frames were presented.
func (v *View) Frames() uint64 { return v.frames }

// Step handles pending input and presents a frame if anything changed.
func (v *View) Step() error {
	if err := v.drainKeys(); err != nil {
		return err
	}
	if err := v.drainPointer(); err != nil {
		return err
	}
	if !v.canvas.Dirty() {
		return nil
	}
	return v.present()
}

func (v *View) drainKeys() error {
	if v.keys == nil {
		return nil
	}
	for {
		select {
		case ev := <-v.keys:
			if err := v.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (v *View) drainPointer() error {
	if v.pointer == nil {
		return nil
	}
	for {
		select {
		case ev := <-v.pointer:
			if err := v.handlePointer(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (v *View) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyLeft:
		v.canvas.Orbit(-orbitStep, 0)
		return nil
	case hal.KeyRight:
		v.canvas.Orbit(orbitStep, 0)
		return nil
	case hal.KeyUp:
		v.canvas.Orbit(0, orbitStep)
		return nil
	case hal.KeyDown:
		v.canvas.Orbit(0, -orbitStep)
		return nil
	}

	switch ev.Rune {
	case 0:
		return nil
	case '+', '=':
		v.canvas.Zoom(-zoomStep)
		return nil
	case '-', '_':
		v.canvas.Zoom(zoomStep)
		return nil
	case 'q':
		return hal.ErrQuit
	}
	for _, c := range v.controls {
		if c.Key == ev.Rune {
			return v.activate(c.ID)
		}
	}
	v.log.Debug().Str("key", string(ev.Rune)).Msg("unbound key")
	return nil
}

func (v *View) handlePointer(ev hal.PointerEvent) error {
	switch ev.Kind {
	case hal.PointerMove:
		if v.panel.Hover(ev.X, ev.Y) {
			v.canvas.RequestRedraw()
		}
	case hal.PointerDown:
		v.panel.Press(ev.X, ev.Y)
	case hal.PointerUp:
		if id, ok := v.panel.Release(ev.X, ev.Y); ok {
			return v.activate(id)
		}
	}
	return nil
}

// activate runs one control to completion. Unknown controls are logged and
// dropped; renderer failures end the run.
func (v *View) activate(id bloch.ControlID) error {
	err := v.disp.Activate(id)
	if errors.Is(err, bloch.ErrUnknownControl) {
		v.log.Warn().Err(err).Msg("control ignored")
		return nil
	}
	if err != nil {
		return err
	}
	v.selected = id
	return nil
}

func (v *View) present() error {
	v.canvas.Render()
	t := v.canvas.Target()
	v.panel.Draw(t)
	drawText(t, v.font, 6, 14, v.status(), colorStatus)
	_, h := t.Size()
	drawText(t, v.font, 6, h-6, hint, colorHint)

	if err := v.fb.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	v.frames++
	return nil
}

func (v *View) status() string {
	coord, ok := v.overlay.Current()
	if !ok {
		return "state: none"
	}
	name := v.selected.String()
	for _, c := range v.controls {
		if c.ID == v.selected {
			name = c.Label
			break
		}
	}
	return fmt.Sprintf("state: %s (%.3f, %.3f, %.3f)", name, coord.X, coord.Y, coord.Z)
}

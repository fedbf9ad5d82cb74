package bloch

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ControlID identifies one of the fixed selection controls.
type ControlID uint8

const (
	ControlZero ControlID = iota + 1
	ControlOne
	ControlPlus
	ControlMinus
	ControlProbA
	ControlProbB
)

var ErrUnknownControl = errors.New("unknown control")

var controlNames = map[ControlID]string{
	ControlZero:  "zero",
	ControlOne:   "one",
	ControlPlus:  "plus",
	ControlMinus: "minus",
	ControlProbA: "probA",
	ControlProbB: "probB",
}

func (id ControlID) String() string {
	if s, ok := controlNames[id]; ok {
		return s
	}
	return fmt.Sprintf("control(%d)", uint8(id))
}

// ParseControl maps a control name such as "plus" to its id.
func ParseControl(name string) (ControlID, error) {
	for id, s := range controlNames {
		if s == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("parse control %q: %w", name, ErrUnknownControl)
}

// Control describes a selectable button.
type Control struct {
	ID     ControlID
	Label  string
	Preset PresetID
	Key    rune
}

var defaultControls = [...]Control{
	{ID: ControlZero, Label: "|0⟩", Preset: PresetZero, Key: '1'},
	{ID: ControlOne, Label: "|1⟩", Preset: PresetOne, Key: '2'},
	{ID: ControlPlus, Label: "|+⟩", Preset: PresetPlus, Key: '3'},
	{ID: ControlMinus, Label: "|−⟩", Preset: PresetMinus, Key: '4'},
	{ID: ControlProbA, Label: "<P(0)", Preset: PresetProbA, Key: '5'},
	{ID: ControlProbB, Label: "<P(1)", Preset: PresetProbB, Key: '6'},
}

// DefaultControls returns the six viewer controls.
func DefaultControls() []Control {
	out := make([]Control, len(defaultControls))
	copy(out, defaultControls[:])
	return out
}

// Binding maps controls to presets.
type Binding map[ControlID]PresetID

// BindingFor builds a binding from a control list.
func BindingFor(controls []Control) Binding {
	b := make(Binding, len(controls))
	for _, c := range controls {
		b[c.ID] = c.Preset
	}
	return b
}

// Dispatcher turns control activations into overlay updates.
type Dispatcher struct {
	binding Binding
	res     Resolver
	overlay *Overlay
	log     zerolog.Logger
}

// NewDispatcher copies b; later changes to b have no effect.
func NewDispatcher(b Binding, res Resolver, overlay *Overlay, log zerolog.Logger) *Dispatcher {
	own := make(Binding, len(b))
	for k, v := range b {
		own[k] = v
	}
	return &Dispatcher{
		binding: own,
		res:     res,
		overlay: overlay,
		log:     log.With().Str("component", "dispatcher").Logger(),
	}
}

// Preset returns the preset bound to id.
func (d *Dispatcher) Preset(id ControlID) (PresetID, bool) {
	p, ok := d.binding[id]
	return p, ok
}

// Activate handles one control activation to completion.
func (d *Dispatcher) Activate(id ControlID) error {
	preset, ok := d.binding[id]
	if !ok {
		return fmt.Errorf("activate %s: %w", id, ErrUnknownControl)
	}
	v := d.res.Resolve(preset)
	if err := d.overlay.Update(v); err != nil {
		return fmt.Errorf("activate %s: %w", id, err)
	}
	d.log.Info().
		Str("control", id.String()).
		Str("preset", string(preset)).
		Float64("x", v.X).
		Float64("y", v.Y).
		Float64("z", v.Z).
		Msg("state selected")
	return nil
}

// Package bloch maps named qubit presets onto the Bloch sphere and keeps the
// single displayed state vector in sync with operator selections.
package bloch

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// PresetID names a selectable state.
type PresetID string

const (
	PresetZero  PresetID = "zero"
	PresetOne   PresetID = "one"
	PresetPlus  PresetID = "plus"
	PresetMinus PresetID = "minus"
	PresetProbA PresetID = "probA"
	PresetProbB PresetID = "probB"
)

var ErrUnknownPreset = errors.New("unknown preset")

// PresetState is a named point on the unit sphere.
type PresetState struct {
	ID    PresetID
	Coord r3.Vec
}

// Resolver resolves a preset id to its coordinate.
type Resolver interface {
	Resolve(id PresetID) r3.Vec
}

// Table is an immutable preset registry. The zero value is empty.
type Table struct {
	states []PresetState
}

var invSqrt2 = 1 / math.Sqrt2

// probA repeats plus and probB is not the antipode of minus. Both are kept
// exactly as the selectable values the viewer has always shown.
var defaultStates = [...]PresetState{
	{ID: PresetZero, Coord: r3.Vec{X: 0, Y: 0, Z: 1}},
	{ID: PresetOne, Coord: r3.Vec{X: 0, Y: 0, Z: -1}},
	{ID: PresetPlus, Coord: r3.Vec{X: invSqrt2, Y: 0, Z: invSqrt2}},
	{ID: PresetMinus, Coord: r3.Vec{X: -invSqrt2, Y: 0, Z: invSqrt2}},
	{ID: PresetProbA, Coord: r3.Vec{X: invSqrt2, Y: 0, Z: invSqrt2}},
	{ID: PresetProbB, Coord: r3.Vec{X: invSqrt2, Y: 0, Z: -invSqrt2}},
}

// DefaultTable returns the six viewer presets.
func DefaultTable() Table {
	return NewTable(defaultStates[:]...)
}

// NewTable copies states into a new table. Later duplicates of an id are ignored.
func NewTable(states ...PresetState) Table {
	out := make([]PresetState, 0, len(states))
	seen := make(map[PresetID]bool, len(states))
	for _, s := range states {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return Table{states: out}
}

// States returns a copy of the table entries in registration order.
func (t Table) States() []PresetState {
	out := make([]PresetState, len(t.states))
	copy(out, t.states)
	return out
}

// Lookup returns the coordinate for id.
func (t Table) Lookup(id PresetID) (r3.Vec, bool) {
	for _, s := range t.states {
		if s.ID == id {
			return s.Coord, true
		}
	}
	return r3.Vec{}, false
}

// Resolve returns the coordinate for id. Ids only come from the fixed control
// bindings, so an unknown id is a programming error and panics.
func (t Table) Resolve(id PresetID) r3.Vec {
	v, ok := t.Lookup(id)
	if !ok {
		panic(fmt.Errorf("resolve %q: %w", id, ErrUnknownPreset))
	}
	return v
}

// Validate reports every entry whose squared norm is not 1 within tol.
func (t Table) Validate(tol float64) error {
	var bad []string
	for _, s := range t.states {
		n2 := r3.Dot(s.Coord, s.Coord)
		if !scalar.EqualWithinAbs(n2, 1, tol) {
			bad = append(bad, fmt.Sprintf("%s (|v|^2=%.6f)", s.ID, n2))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("preset table: off unit sphere: %s", strings.Join(bad, ", "))
	}
	return nil
}

package bloch

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestDispatcher() (*Dispatcher, *fakeRenderer, *Overlay) {
	r := newFakeRenderer()
	o := NewOverlay(r, zerolog.Nop())
	d := NewDispatcher(BindingFor(DefaultControls()), DefaultTable(), o, zerolog.Nop())
	return d, r, o
}

func assertVec(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

func TestDispatcherScenarios(t *testing.T) {
	h := 1 / math.Sqrt2
	tests := []struct {
		name string
		seq  []ControlID
		want r3.Vec
	}{
		{"zero", []ControlID{ControlZero}, r3.Vec{Z: 1}},
		{"zero then one", []ControlID{ControlZero, ControlOne}, r3.Vec{Z: -1}},
		{"plus then probA", []ControlID{ControlPlus, ControlProbA}, r3.Vec{X: h, Z: h}},
		{"minus", []ControlID{ControlMinus}, r3.Vec{X: -h, Z: h}},
		{"probB", []ControlID{ControlProbB}, r3.Vec{X: h, Z: -h}},
		{"zero one plus", []ControlID{ControlZero, ControlOne, ControlPlus}, r3.Vec{X: h, Z: h}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r, o := newTestDispatcher()
			for _, id := range tt.seq {
				require.NoError(t, d.Activate(id))
				assert.Len(t, r.live, 1)
			}
			assertVec(t, tt.want, r.only(t))
			got, shown := o.Current()
			require.True(t, shown)
			assertVec(t, tt.want, got)
			assert.Equal(t, 1, r.maxLive)
			assert.Equal(t, len(tt.seq), r.redraws)
		})
	}
}

func TestDispatcherPlusAndProbAShareCoordinate(t *testing.T) {
	d, r, _ := newTestDispatcher()

	require.NoError(t, d.Activate(ControlPlus))
	plus := r.only(t)
	require.NoError(t, d.Activate(ControlProbA))
	probA := r.only(t)

	assert.Equal(t, plus, probA)
}

func TestDispatcherNoCrossTalk(t *testing.T) {
	d, _, _ := newTestDispatcher()
	table := DefaultTable()

	before := make(map[ControlID]r3.Vec)
	for _, c := range DefaultControls() {
		p, ok := d.Preset(c.ID)
		require.True(t, ok)
		before[c.ID] = table.Resolve(p)
	}

	for _, c := range DefaultControls() {
		require.NoError(t, d.Activate(c.ID))
		for id, want := range before {
			p, ok := d.Preset(id)
			require.True(t, ok)
			assert.Equal(t, want, table.Resolve(p))
		}
	}
}

func TestDispatcherUnknownControl(t *testing.T) {
	d, r, o := newTestDispatcher()

	err := d.Activate(ControlID(42))
	require.ErrorIs(t, err, ErrUnknownControl)
	assert.Empty(t, r.live)
	assert.Zero(t, r.redraws)
	_, shown := o.Current()
	assert.False(t, shown)
}

func TestDispatcherBindingIsCopied(t *testing.T) {
	r := newFakeRenderer()
	b := BindingFor(DefaultControls())
	d := NewDispatcher(b, DefaultTable(), NewOverlay(r, zerolog.Nop()), zerolog.Nop())

	b[ControlZero] = PresetOne
	require.NoError(t, d.Activate(ControlZero))
	assert.Equal(t, r3.Vec{Z: 1}, r.only(t))
}

func TestDefaultControls(t *testing.T) {
	controls := DefaultControls()
	require.Len(t, controls, 6)

	labels := make([]string, 0, len(controls))
	keys := make(map[rune]bool)
	for _, c := range controls {
		labels = append(labels, c.Label)
		assert.False(t, keys[c.Key], "duplicate key %q", c.Key)
		keys[c.Key] = true
		_, ok := DefaultTable().Lookup(c.Preset)
		assert.True(t, ok, "control %s bound to unknown preset", c.ID)
	}
	assert.Equal(t, []string{"|0⟩", "|1⟩", "|+⟩", "|−⟩", "<P(0)", "<P(1)"}, labels)
}

func TestParseControl(t *testing.T) {
	for _, c := range DefaultControls() {
		id, err := ParseControl(c.ID.String())
		require.NoError(t, err)
		assert.Equal(t, c.ID, id)
	}

	_, err := ParseControl("three")
	assert.ErrorIs(t, err, ErrUnknownControl)
	assert.Equal(t, "control(42)", ControlID(42).String())
}

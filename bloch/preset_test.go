package bloch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestDefaultTableOnUnitSphere(t *testing.T) {
	table := DefaultTable()
	require.Len(t, table.States(), 6)
	for _, s := range table.States() {
		n := r3.Norm(s.Coord)
		assert.Truef(t, scalar.EqualWithinAbs(n, 1, tol), "%s norm = %v", s.ID, n)
	}
	assert.NoError(t, table.Validate(tol))
}

func TestDefaultTableValues(t *testing.T) {
	h := 1 / math.Sqrt2
	tests := []struct {
		id   PresetID
		want r3.Vec
	}{
		{PresetZero, r3.Vec{X: 0, Y: 0, Z: 1}},
		{PresetOne, r3.Vec{X: 0, Y: 0, Z: -1}},
		{PresetPlus, r3.Vec{X: h, Y: 0, Z: h}},
		{PresetMinus, r3.Vec{X: -h, Y: 0, Z: h}},
		{PresetProbA, r3.Vec{X: h, Y: 0, Z: h}},
		{PresetProbB, r3.Vec{X: h, Y: 0, Z: -h}},
	}

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got := table.Resolve(tt.id)
			assert.InDelta(t, tt.want.X, got.X, tol)
			assert.InDelta(t, tt.want.Y, got.Y, tol)
			assert.InDelta(t, tt.want.Z, got.Z, tol)
		})
	}
}

func TestProbAMatchesPlusExactly(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, table.Resolve(PresetPlus), table.Resolve(PresetProbA))
	assert.NotEqual(t, table.Resolve(PresetMinus), table.Resolve(PresetProbB))
	assert.NotEqual(t, r3.Scale(-1, table.Resolve(PresetPlus)), table.Resolve(PresetMinus))
}

func TestResolveDeterministic(t *testing.T) {
	table := DefaultTable()
	for _, s := range table.States() {
		a := table.Resolve(s.ID)
		b := table.Resolve(s.ID)
		assert.Equal(t, math.Float64bits(a.X), math.Float64bits(b.X))
		assert.Equal(t, math.Float64bits(a.Y), math.Float64bits(b.Y))
		assert.Equal(t, math.Float64bits(a.Z), math.Float64bits(b.Z))
	}
}

func TestResolveUnknownPanics(t *testing.T) {
	table := DefaultTable()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrUnknownPreset)
	}()
	table.Resolve("bogus")
}

func TestLookupUnknown(t *testing.T) {
	_, ok := DefaultTable().Lookup("bogus")
	assert.False(t, ok)
}

func TestValidateFlagsBadEntry(t *testing.T) {
	table := NewTable(
		PresetState{ID: "ok", Coord: r3.Vec{Z: 1}},
		PresetState{ID: "long", Coord: r3.Vec{X: 1, Z: 1}},
	)
	err := table.Validate(1e-9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "long")
	assert.NotContains(t, err.Error(), "ok (")
}

func TestNewTableKeepsFirstDuplicate(t *testing.T) {
	table := NewTable(
		PresetState{ID: "a", Coord: r3.Vec{Z: 1}},
		PresetState{ID: "a", Coord: r3.Vec{Z: -1}},
	)
	assert.Len(t, table.States(), 1)
	assert.Equal(t, r3.Vec{Z: 1}, table.Resolve("a"))
}

func TestStatesReturnsCopy(t *testing.T) {
	table := DefaultTable()
	states := table.States()
	states[0].Coord = r3.Vec{X: 9}
	assert.Equal(t, r3.Vec{Z: 1}, table.Resolve(PresetZero))
}

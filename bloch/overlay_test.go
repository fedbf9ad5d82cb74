package bloch

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type fakeRenderer struct {
	next     ArrowHandle
	live     map[ArrowHandle]r3.Vec
	redraws  int
	maxLive  int
	removed  []ArrowHandle
	drawErr  error
	scaffold int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{live: make(map[ArrowHandle]r3.Vec)}
}

func (f *fakeRenderer) DrawStaticScaffold() error {
	f.scaffold++
	return nil
}

func (f *fakeRenderer) DrawArrow(origin, dir r3.Vec) (ArrowHandle, error) {
	if f.drawErr != nil {
		return 0, f.drawErr
	}
	f.next++
	f.live[f.next] = dir
	if len(f.live) > f.maxLive {
		f.maxLive = len(f.live)
	}
	return f.next, nil
}

func (f *fakeRenderer) RemoveArrow(h ArrowHandle) {
	delete(f.live, h)
	f.removed = append(f.removed, h)
}

func (f *fakeRenderer) RequestRedraw() { f.redraws++ }

func (f *fakeRenderer) only(t *testing.T) r3.Vec {
	t.Helper()
	require.Len(t, f.live, 1)
	for _, v := range f.live {
		return v
	}
	return r3.Vec{}
}

func TestOverlayFirstUpdateSkipsRemove(t *testing.T) {
	r := newFakeRenderer()
	o := NewOverlay(r, zerolog.Nop())

	_, shown := o.Current()
	assert.False(t, shown)

	require.NoError(t, o.Update(r3.Vec{Z: 1}))
	assert.Empty(t, r.removed)
	assert.Equal(t, r3.Vec{Z: 1}, r.only(t))
	assert.Equal(t, 1, r.redraws)
}

func TestOverlayAtMostOne(t *testing.T) {
	r := newFakeRenderer()
	o := NewOverlay(r, zerolog.Nop())

	seq := []r3.Vec{{Z: 1}, {Z: -1}, {X: 1}, {Y: 1}, {Z: 1}}
	for i, v := range seq {
		require.NoError(t, o.Update(v))
		assert.Equal(t, v, r.only(t))
		assert.Equal(t, i+1, r.redraws)
	}
	assert.Equal(t, 1, r.maxLive)
	assert.Len(t, r.removed, len(seq)-1)

	got, shown := o.Current()
	assert.True(t, shown)
	assert.Equal(t, seq[len(seq)-1], got)
}

func TestOverlayIdempotentCoordinate(t *testing.T) {
	r := newFakeRenderer()
	o := NewOverlay(r, zerolog.Nop())

	v := r3.Vec{X: 0.6, Z: 0.8}
	require.NoError(t, o.Update(v))
	first := r.next
	require.NoError(t, o.Update(v))

	assert.Equal(t, v, r.only(t))
	assert.NotEqual(t, first, r.next)
	assert.Equal(t, []ArrowHandle{first}, r.removed)
}

func TestOverlayDrawFailureLeavesSlotEmpty(t *testing.T) {
	r := newFakeRenderer()
	o := NewOverlay(r, zerolog.Nop())
	require.NoError(t, o.Update(r3.Vec{Z: 1}))

	boom := errors.New("scene full")
	r.drawErr = boom
	err := o.Update(r3.Vec{Z: -1})
	require.ErrorIs(t, err, boom)

	assert.Empty(t, r.live)
	_, shown := o.Current()
	assert.False(t, shown)
	assert.Equal(t, 1, r.redraws)

	r.drawErr = nil
	require.NoError(t, o.Update(r3.Vec{X: 1}))
	assert.Equal(t, r3.Vec{X: 1}, r.only(t))
	assert.Len(t, r.removed, 1)
}

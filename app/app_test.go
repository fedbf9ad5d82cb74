package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"blochview/bloch"
	"blochview/hal"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func newFakeFramebuffer(w, h int) *fakeFramebuffer {
	return &fakeFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *fakeFramebuffer) Width() int              { return f.w }
func (f *fakeFramebuffer) Height() int             { return f.h }
func (f *fakeFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *fakeFramebuffer) Buffer() []byte          { return f.buf }
func (f *fakeFramebuffer) Present() error          { f.presents++; return nil }

func (f *fakeFramebuffer) ClearRGB(r, g, b uint8) {
	p := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

type fakeHAL struct {
	log  zerolog.Logger
	fb   hal.Framebuffer
	keys chan hal.KeyEvent
	ptr  chan hal.PointerEvent
}

func newFakeHAL(out *bytes.Buffer) *fakeHAL {
	return &fakeHAL{
		log:  zerolog.New(out),
		fb:   newFakeFramebuffer(500, 400),
		keys: make(chan hal.KeyEvent, 16),
		ptr:  make(chan hal.PointerEvent, 16),
	}
}

func (h *fakeHAL) Logger() zerolog.Logger { return h.log }
func (h *fakeHAL) Display() hal.Display   { return h }
func (h *fakeHAL) Input() hal.Input       { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *fakeHAL) Pointer() hal.Pointer         { return pointer(h.ptr) }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

// selections returns the presets of every "state selected" log line.
func selections(t *testing.T, out *bytes.Buffer) []string {
	t.Helper()
	var got []string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["message"] == "state selected" {
			got = append(got, rec["preset"].(string))
		}
	}
	return got
}

func TestAppSelectsPresetsInOrder(t *testing.T) {
	var out bytes.Buffer
	h := newFakeHAL(&out)
	step := New(h, Config{})

	for _, r := range []rune{'1', '2', '3', '4', '5', '6'} {
		h.keys <- hal.KeyEvent{Press: true, Rune: r}
	}
	require.NoError(t, step())

	assert.Equal(t, []string{"zero", "one", "plus", "minus", "probA", "probB"}, selections(t, &out))
	assert.Equal(t, 1, h.fb.(*fakeFramebuffer).presents)
	assert.Contains(t, out.String(), "viewer ready")
}

func TestAppEscapeQuits(t *testing.T) {
	var out bytes.Buffer
	h := newFakeHAL(&out)
	step := New(h, Config{})
	h.keys <- hal.KeyEvent{Press: true, Code: hal.KeyEscape}
	assert.ErrorIs(t, step(), hal.ErrQuit)
}

func TestAppNoFramebuffer(t *testing.T) {
	var out bytes.Buffer
	h := newFakeHAL(&out)
	h.fb = nil
	step := New(h, Config{})
	assert.Error(t, step())
	assert.Contains(t, out.String(), "startup failed")
}

func TestAppRejectsUnboundPreset(t *testing.T) {
	var out bytes.Buffer
	h := newFakeHAL(&out)
	step := New(h, Config{
		Controls: []bloch.Control{{ID: bloch.ControlZero, Label: "?", Preset: "bogus", Key: '1'}},
	})
	assert.ErrorIs(t, step(), bloch.ErrUnknownPreset)
}

func TestGuardRecoversPanic(t *testing.T) {
	var out bytes.Buffer
	h := newFakeHAL(&out)
	step := guard(h, h.log, func() error { panic("boom") })

	err := step()
	require.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, out.String(), "step panicked")
	assert.Equal(t, 1, h.fb.(*fakeFramebuffer).presents)
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("|0⟩ state", 3)
	assert.Equal(t, "|0⟩", p)
	assert.Equal(t, " state", r)

	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}

//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var polledKeys = [...]struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
}

// poll translates this frame's ebiten input state into queued events.
// Cursor coordinates are already in framebuffer pixels because the window
// layout equals the framebuffer size.
func (in *hostInput) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		in.kbd.inject(KeyEvent{Press: true, Rune: r})
	}
	for _, k := range polledKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			in.kbd.inject(KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			in.kbd.inject(KeyEvent{Code: k.code, Press: false})
		}
	}

	x, y := ebiten.CursorPosition()
	in.ptr.moved(x, y)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.ptr.buttonDown = true
		in.ptr.inject(PointerEvent{Kind: PointerDown, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && in.ptr.buttonDown {
		in.ptr.buttonDown = false
		in.ptr.inject(PointerEvent{Kind: PointerUp, X: x, Y: y})
	}

	// A new touch is reported as a complete tap.
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		in.ptr.inject(PointerEvent{Kind: PointerDown, X: tx, Y: ty})
		in.ptr.inject(PointerEvent{Kind: PointerUp, X: tx, Y: ty})
	}
}

//go:build !cgo

package hal

import "errors"

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Scale  int
	Host   HostConfig
	Inject []KeyEvent
}

func RunWindow(_ func(HAL) func() error, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1), or use -headless")
}

func (in *hostInput) poll() {
	// No input source without the window backend.
}

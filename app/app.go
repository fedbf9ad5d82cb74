package app

import (
	"errors"
	"fmt"

	"blochview/bloch"
	"blochview/hal"
	"blochview/internal/buildinfo"
	"blochview/view"

	"github.com/rs/zerolog"
)

// Preset coordinates further than this from the unit sphere are reported at
// startup.
const presetTolerance = 1e-9

type Config struct {
	// Controls defaults to bloch.DefaultControls.
	Controls []bloch.Control
	// Presets defaults to bloch.DefaultTable.
	Presets []bloch.PresetState
}

// New builds the viewer on h and returns its per-frame step. Startup
// failures are reported by the first call to the step.
func New(h hal.HAL, cfg Config) func() error {
	log := h.Logger().With().Str("component", "app").Logger()

	step, err := newViewer(h, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return func() error { return err }
	}
	return guard(h, log, step)
}

func newViewer(h hal.HAL, cfg Config, log zerolog.Logger) (func() error, error) {
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, errors.New("app: no framebuffer")
	}
	fb := disp.Framebuffer()

	table := bloch.DefaultTable()
	if len(cfg.Presets) > 0 {
		table = bloch.NewTable(cfg.Presets...)
	}
	if err := table.Validate(presetTolerance); err != nil {
		log.Warn().Err(err).Msg("preset table")
	}

	controls := cfg.Controls
	if len(controls) == 0 {
		controls = bloch.DefaultControls()
	}
	for _, c := range controls {
		if _, ok := table.Lookup(c.Preset); !ok {
			return nil, fmt.Errorf("control %s: preset %q: %w", c.ID, c.Preset, bloch.ErrUnknownPreset)
		}
	}

	canvas, err := view.NewCanvas(fb, h.Logger())
	if err != nil {
		return nil, err
	}
	if err := canvas.DrawStaticScaffold(); err != nil {
		return nil, err
	}

	overlay := bloch.NewOverlay(canvas, h.Logger())
	dispatcher := bloch.NewDispatcher(bloch.BindingFor(controls), table, overlay, h.Logger())

	v := view.New(view.Config{
		Framebuffer: fb,
		Input:       h.Input(),
		Canvas:      canvas,
		Overlay:     overlay,
		Dispatcher:  dispatcher,
		Controls:    controls,
		Log:         h.Logger(),
	})

	log.Info().
		Str("version", buildinfo.Short()).
		Int("width", fb.Width()).
		Int("height", fb.Height()).
		Int("controls", len(controls)).
		Msg("viewer ready")
	return v.Step, nil
}

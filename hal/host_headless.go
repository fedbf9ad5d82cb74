package hal

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	Host  HostConfig
	// Inject is queued as keyboard input before the first step.
	Inject []KeyEvent
	// Snapshot, if set, is the PNG path the final framebuffer is written to.
	Snapshot string
}

// RunHeadless runs the app on a ticker without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Host)
	for _, ev := range cfg.Inject {
		if !h.in.kbd.inject(ev) {
			return fmt.Errorf("headless: input queue full after %d events", len(h.in.kbd.ch))
		}
	}
	step := newApp(h)

	err := runTicks(ctx, step, d, cfg.Ticks)
	if errors.Is(err, ErrQuit) {
		err = nil
	}
	if err != nil {
		return err
	}
	if cfg.Snapshot != "" {
		if err := writeSnapshot(h.fb, cfg.Snapshot); err != nil {
			return err
		}
		h.log.Info().Str("path", cfg.Snapshot).Msg("snapshot written")
	}
	return nil
}

func runTicks(ctx context.Context, step func() error, d time.Duration, limit uint64) error {
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if limit > 0 && tick >= limit {
				return nil
			}
		}
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, fb.snapshotRGBA(nil)); err != nil {
		f.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

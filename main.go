package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"blochview/app"
	"blochview/bloch"
	"blochview/hal"
	"blochview/internal/buildinfo"
)

func main() {
	var (
		headless  bool
		hz        int
		ticks     uint64
		scale     int
		width     int
		height    int
		selection string
		snapshot  string
		logLevel  string
		logPretty bool
		version   bool
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&scale, "scale", 2, "Window scale factor.")
	flag.IntVar(&width, "width", 500, "Framebuffer width in pixels.")
	flag.IntVar(&height, "height", 400, "Framebuffer height in pixels.")
	flag.StringVar(&selection, "select", "", "Comma-separated controls to activate at startup, e.g. plus,probB.")
	flag.StringVar(&snapshot, "snapshot", "", "Write the final headless frame to this PNG file.")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	flag.BoolVar(&logPretty, "log-pretty", false, "Human-readable console logs.")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	log := hal.NewLogger(hal.LogConfig{Level: logLevel, Pretty: logPretty})
	log.Info().Str("build", buildinfo.Short()).Bool("headless", headless).Msg("starting")

	inject, err := selectionKeys(selection, bloch.DefaultControls())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	host := hal.HostConfig{Width: width, Height: height, Log: log}
	newApp := func(h hal.HAL) func() error {
		return app.New(h, app.Config{})
	}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Hz:       hz,
			Ticks:    ticks,
			Host:     host,
			Inject:   inject,
			Snapshot: snapshot,
		})
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newApp, hal.WindowConfig{
			Title:  "Bloch sphere " + buildinfo.Short(),
			Scale:  scale,
			Host:   host,
			Inject: inject,
		})
	}
	if err != nil {
		log.Error().Err(err).Msg("exit")
		os.Exit(1)
	}
}

// selectionKeys turns a list like "plus,probB" into the key presses that
// activate those controls.
func selectionKeys(s string, controls []bloch.Control) ([]hal.KeyEvent, error) {
	var out []hal.KeyEvent
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, err := bloch.ParseControl(name)
		if err != nil {
			return nil, fmt.Errorf("-select: %w", err)
		}
		found := false
		for _, c := range controls {
			if c.ID == id {
				out = append(out, hal.KeyEvent{Press: true, Rune: c.Key})
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("-select %s: %w", name, bloch.ErrUnknownControl)
		}
	}
	return out, nil
}

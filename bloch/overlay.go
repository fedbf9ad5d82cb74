package bloch

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
)

// ArrowHandle is an opaque reference to an arrow drawn by a Renderer.
type ArrowHandle int

// Renderer draws the sphere scaffold and state arrows.
//
// RequestRedraw only marks the frame dirty; it must not block.
type Renderer interface {
	DrawStaticScaffold() error
	DrawArrow(origin, dir r3.Vec) (ArrowHandle, error)
	RemoveArrow(h ArrowHandle)
	RequestRedraw()
}

// Overlay owns the single displayed state arrow.
//
// It is not safe for concurrent use. The host loop calls Update serially.
type Overlay struct {
	r   Renderer
	log zerolog.Logger

	handle ArrowHandle
	coord  r3.Vec
	shown  bool
}

func NewOverlay(r Renderer, log zerolog.Logger) *Overlay {
	return &Overlay{
		r:   r,
		log: log.With().Str("component", "overlay").Logger(),
	}
}

// Update replaces the displayed arrow with one pointing at v.
//
// The previous arrow is detached before the new one is drawn. If drawing
// fails the slot stays empty.
func (o *Overlay) Update(v r3.Vec) error {
	if o.shown {
		o.r.RemoveArrow(o.handle)
		o.shown = false
		o.log.Debug().Int("handle", int(o.handle)).Msg("arrow removed")
	}

	h, err := o.r.DrawArrow(r3.Vec{}, v)
	if err != nil {
		return fmt.Errorf("overlay update: %w", err)
	}
	o.handle = h
	o.coord = v
	o.shown = true
	o.log.Debug().Int("handle", int(h)).Msg("arrow drawn")

	o.r.RequestRedraw()
	return nil
}

// Current returns the displayed coordinate, if any.
func (o *Overlay) Current() (r3.Vec, bool) {
	return o.coord, o.shown
}

package hal

import "github.com/rs/zerolog"

// HostConfig sizes the host framebuffer.
type HostConfig struct {
	Width  int
	Height int
	Log    zerolog.Logger
}

const (
	defaultWidth  = 500
	defaultHeight = 400
)

type hostHAL struct {
	log zerolog.Logger
	fb  *hostFramebuffer
	in  *hostInput
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	return &hostHAL{
		log: cfg.Log,
		fb:  newHostFramebuffer(cfg.Width, cfg.Height),
		in:  newHostInput(),
	}
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func (h *hostHAL) Logger() zerolog.Logger { return h.log }
func (h *hostHAL) Display() Display       { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input           { return h.in }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func newHostInput() *hostInput {
	return &hostInput{
		kbd: &hostKeyboard{ch: make(chan KeyEvent, 64)},
		ptr: &hostPointer{ch: make(chan PointerEvent, 64)},
	}
}

func (in *hostInput) Keyboard() Keyboard { return in.kbd }
func (in *hostInput) Pointer() Pointer   { return in.ptr }

type hostKeyboard struct {
	ch chan KeyEvent
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// inject queues ev, dropping it if the queue is full.
func (k *hostKeyboard) inject(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}

type hostPointer struct {
	ch         chan PointerEvent
	lastX      int
	lastY      int
	havePos    bool
	buttonDown bool
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) inject(ev PointerEvent) bool {
	select {
	case p.ch <- ev:
		return true
	default:
		return false
	}
}

// moved reports a PointerMove only when the position changed.
func (p *hostPointer) moved(x, y int) {
	if p.havePos && p.lastX == x && p.lastY == y {
		return
	}
	p.lastX, p.lastY, p.havePos = x, y, true
	p.inject(PointerEvent{Kind: PointerMove, X: x, Y: y})
}

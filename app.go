package weft

import (
	"errors"
	"io"
	"sync"
	"time"
)

// App wires the engine together. Each frame it calls the view function
// for an element tree, lays the tree out, composes it into a buffer and
// flushes the difference to the terminal. One goroutine drives all of it;
// RequestRender and Stop are the only methods safe to call from others.
type App struct {
	cfg    Config
	out    io.Writer
	inline bool
	view   func() *Element

	term *Terminal
	comp *Compositor

	win   Size
	focus string
	hits  *HitMap

	renderChan chan struct{}
	stopChan   chan struct{}
	stopOnce   sync.Once

	lastFlush time.Time
}

// Option configures an App at construction.
type Option func(*App)

// WithOutput directs frames at w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithInline renders at the prompt instead of the alternate screen. The
// frame height follows the content, capped at the window height.
func WithInline() Option {
	return func(a *App) { a.inline = true }
}

// WithView sets the function Run calls to build each frame's tree.
func WithView(view func() *Element) Option {
	return func(a *App) { a.view = view }
}

// NewApp creates an application with the given options.
func NewApp(opts ...Option) (*App, error) {
	a := &App{
		cfg:        DefaultConfig(),
		comp:       NewCompositor(),
		renderChan: make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	term, err := NewTerminal(a.out)
	if err != nil {
		return nil, err
	}
	term.SetProfile(a.cfg.profile())
	term.SetAltScreen(a.cfg.Terminal.AltScreen)
	term.SetHideCursor(a.cfg.Terminal.HideCursor)
	if a.inline {
		term.SetInline(true)
	}
	a.term = term
	a.win = term.Size()
	return a, nil
}

// SetView replaces the view function.
func (a *App) SetView(view func() *Element) *App {
	a.view = view
	return a
}

// Terminal exposes the underlying terminal for cursor control.
func (a *App) Terminal() *Terminal {
	return a.term
}

// Size returns the window size frames are laid out against.
func (a *App) Size() Size {
	return a.win
}

// SetFocus sets the focus token matched against element IDs during style
// resolution. It only affects which style branch paints; the engine does
// no focus traversal of its own.
func (a *App) SetFocus(id string) {
	if a.focus == id {
		return
	}
	a.focus = id
	a.RequestRender()
}

// Focus returns the current focus token.
func (a *App) Focus() string {
	return a.focus
}

// Measure reports the size el would take inside avail without rendering.
// Negative dimensions mean unbounded.
func (a *App) Measure(el *Element, avail Size) Size {
	return Measure(el, avail)
}

// HitTest returns the topmost element painted over the cell in the last
// completed frame, or nil before the first frame.
func (a *App) HitTest(x, y int) *Element {
	if a.hits == nil {
		return nil
	}
	return a.hits.At(x, y)
}

// Bounds returns where the element with the given id was painted in the
// last completed frame.
func (a *App) Bounds(id string) (Rect, bool) {
	if a.hits == nil {
		return Rect{}, false
	}
	return a.hits.Bounds(id)
}

// RequestRender schedules a frame. Safe from any goroutine; requests
// arriving while a frame is in flight coalesce into one.
func (a *App) RequestRender() {
	select {
	case a.renderChan <- struct{}{}:
	default:
	}
}

// Stop makes Run return after the frame in flight completes. Safe from
// any goroutine and idempotent.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stopChan) })
}

// RenderFrame lays out, paints and flushes one frame. It is the one-shot
// entry point; Run calls it for every coalesced trigger. A frame always
// completes before control returns, so no partial frame is ever visible.
func (a *App) RenderFrame(root *Element) error {
	if root == nil {
		return nil
	}
	sz := a.win
	if a.inline {
		m := Measure(root, Size{W: sz.W, H: -1})
		h := max(m.H, 1)
		h = min(h, sz.H)
		sz = Size{W: sz.W, H: h}
		a.term.Resize(sz)
	}
	tree := LayoutTree(root, sz)
	next := a.term.NextFrame()
	a.hits = a.comp.Compose(tree, next, a.focus)
	return a.term.Flush(next)
}

// Run takes over the terminal and drives the render loop until Stop is
// called or a flush fails. The terminal is restored on every exit path.
func (a *App) Run() error {
	if a.view == nil {
		return errors.New("weft: no view set")
	}
	if err := a.term.Start(); err != nil {
		return err
	}
	defer a.term.Stop()

	if err := a.renderOnce(); err != nil {
		return err
	}

	var (
		debounce  *time.Timer
		debounceC <-chan time.Time
		pending   Size
	)
	for {
		select {
		case <-a.stopChan:
			return nil

		case sz := <-a.term.ResizeChan():
			pending = sz
			d := a.cfg.resizeDebounce()
			if d <= 0 {
				a.applyResize(pending)
				if err := a.renderOnce(); err != nil {
					return err
				}
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(d)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(d)
			}
			debounceC = debounce.C

		case <-debounceC:
			debounceC = nil
			a.applyResize(pending)
			if err := a.renderOnce(); err != nil {
				return err
			}

		case <-a.renderChan:
			if err := a.renderOnce(); err != nil {
				return err
			}
		}
	}
}

// renderOnce builds the tree and renders it, honoring the frame-rate cap
// by sleeping off the remainder of the previous frame's interval. Sleeping
// on the loop goroutine is deliberate: triggers keep coalescing in the
// meantime.
func (a *App) renderOnce() error {
	if iv := a.cfg.frameInterval(); iv > 0 && !a.lastFlush.IsZero() {
		if wait := iv - time.Since(a.lastFlush); wait > 0 {
			time.Sleep(wait)
		}
	}
	err := a.RenderFrame(a.view())
	a.lastFlush = time.Now()
	return err
}

// applyResize records the new window size and resizes the terminal. In
// inline mode the frame height tracks content instead, so only the width
// is taken from the window.
func (a *App) applyResize(sz Size) {
	a.win = sz
	if !a.inline {
		a.term.Resize(sz)
	}
}

package weft

// framePool recycles the frame buffers the render loop alternates
// between. In steady state two buffers exist: the one the terminal holds
// as the previous frame and the spare handed out for the next paint. The
// displaced frame comes back through Recycle once the flush has swapped
// it out.
//
// Buffers are never resized in place; a resize drops the spare and lets
// mismatched recycles fall on the floor, so the first frame at a new size
// allocates fresh and diffs down the full-redraw path.
type framePool struct {
	w, h  int
	spare *Buffer
}

func newFramePool(w, h int) *framePool {
	return &framePool{w: w, h: h}
}

// Next returns a cleared buffer of the current frame size.
func (p *framePool) Next() *Buffer {
	if b := p.spare; b != nil {
		p.spare = nil
		b.Clear()
		return b
	}
	return NewBuffer(p.w, p.h)
}

// Recycle accepts a frame that is no longer displayed. Wrong-size buffers
// are dropped.
func (p *framePool) Recycle(b *Buffer) {
	if b == nil || b.w != p.w || b.h != p.h {
		return
	}
	if p.spare == nil {
		p.spare = b
	}
}

// Resize sets the frame size for subsequent Next calls and drops the
// spare.
func (p *framePool) Resize(w, h int) {
	if w == p.w && h == p.h {
		return
	}
	p.w, p.h = w, h
	p.spare = nil
}

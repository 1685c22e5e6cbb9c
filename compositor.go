package weft

// Compositor paints layout trees into cell buffers. It owns the layer
// arena and the per-frame layer set, so one compositor is reused across
// frames and steady-state painting does not allocate buffers.
//
// A compositor is not safe for concurrent use; the render loop is
// single-threaded and everything here assumes that.
type Compositor struct {
	arena  layerArena
	layers []layer
}

// NewCompositor returns an empty compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Compose paints the laid-out tree into dst and returns the hit map
// recording where every element landed. focus is matched against element
// IDs to pick focus style branches; pass "" for no focus.
//
// The whole frame is painted through the layer arena: the base tree goes
// into a z-0 layer, subtrees with their own layer or a non-zero z go into
// separate buffers, and everything merges back-to-front. Untouched layer
// cells are skipped during the merge, so content below shows through
// anywhere a layer never painted.
func (c *Compositor) Compose(tree *LayoutNode, dst *Buffer, focus string) *HitMap {
	dst.Clear()
	hits := &HitMap{}
	if tree == nil {
		return hits
	}

	base := c.arena.acquire(dst.w, dst.h)
	c.layers = append(c.layers[:0], layer{buf: base, hits: &HitMap{}})
	c.paint(tree, base, Style{}, c.layers[0].hits, 0, 0, focus, true)

	mergeLayers(dst, c.layers)
	for i := range c.layers {
		hits.concat(c.layers[i].hits)
		c.arena.release(c.layers[i].buf)
		c.layers[i].buf = nil
		c.layers[i].hits = nil
	}
	return hits
}

// paint draws one node and its subtree into buf. Coordinates translate by
// (dx, dy) when buf is a layer buffer whose origin is not the frame origin.
// inherited carries the resolved ancestor colors; attributes never thread
// down. layerRoot suppresses the layer split for the node that started the
// current layer.
func (c *Compositor) paint(node *LayoutNode, buf *Buffer, inherited Style, hits *HitMap, dx, dy int, focus string, layerRoot bool) {
	el := node.El

	if !layerRoot && (el.ownLayer || el.z != 0) && !node.Box.Empty() {
		lbuf := c.arena.acquire(node.Box.W, node.Box.H)
		lhits := &HitMap{}
		c.layers = append(c.layers, layer{
			z:    el.z,
			x:    node.Box.X,
			y:    node.Box.Y,
			buf:  lbuf,
			hits: lhits,
		})
		c.paint(node, lbuf, inherited, lhits, -node.Box.X, -node.Box.Y, focus, true)
		return
	}

	own := el.style
	if el.hasFocus && focus != "" && el.id == focus {
		own = el.focusStyle
	}
	style := own.over(inherited)

	if !node.Box.Empty() {
		hits.record(el, node.Box)

		if own.BG.IsSet() {
			fill := NewCell(' ', Style{FG: style.FG, BG: style.BG})
			buf.FillRect(node.Box.X+dx, node.Box.Y+dy, node.Box.W, node.Box.H, fill)
		}

		if el.hasBorder {
			bstyle := Style{FG: style.FG, BG: style.BG}
			if el.borderFG.IsSet() {
				bstyle.FG = el.borderFG
			}
			if el.borderBG.IsSet() {
				bstyle.BG = el.borderBG
			}
			buf.DrawBorder(node.Box.X+dx, node.Box.Y+dy, node.Box.W, node.Box.H, el.borderStyle, el.borderEdges, bstyle)
		}

		switch el.kind {
		case KindText:
			c.paintText(node, buf, style, dx, dy)
		case KindRule:
			c.paintRule(node, buf, style, dx, dy)
		}
	}

	// Children still recurse under a zero-area parent: positioned
	// descendants can anchor outside it and carry area of their own.
	childInherited := Style{FG: style.FG, BG: style.BG}
	for _, child := range node.Children {
		c.paint(child, buf, childInherited, hits, dx, dy, focus, false)
	}
}

func (c *Compositor) paintText(node *LayoutNode, buf *Buffer, style Style, dx, dy int) {
	content := node.Content
	if content.Empty() || node.El.text == "" {
		return
	}
	lines := wrapText(node.El.text, content.W)
	for i, line := range lines {
		if i >= content.H {
			break
		}
		buf.WriteStringClipped(content.X+dx, content.Y+i+dy, line, style, content.W)
	}
}

// paintRule draws a thin line through the middle of the content box,
// horizontal when the box is at least as wide as it is tall.
func (c *Compositor) paintRule(node *LayoutNode, buf *Buffer, style Style, dx, dy int) {
	content := node.Content
	if content.Empty() {
		return
	}
	if content.W >= content.H {
		y := content.Y + content.H/2
		buf.HLine(content.X+dx, y+dy, content.W, BoxHorizontal, style)
	} else {
		x := content.X + content.W/2
		buf.VLine(x+dx, content.Y+dy, content.H, BoxVertical, style)
	}
}

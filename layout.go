package weft

import "time"

// LayoutNode pairs an element with its computed geometry for one pass.
// Nodes mirror the element tree in document order; positioned children stay
// at their document position and the compositor handles stacking.
type LayoutNode struct {
	El       *Element
	Box      Rect // border box
	Content  Rect // box inside border and padding
	Children []*LayoutNode
}

// layoutCtx carries the per-pass state threaded down the recursion instead
// of being looked up through parent pointers.
type layoutCtx struct {
	vp     Size
	anchor Rect // content box of the nearest positioned ancestor
}

// LayoutTree computes geometry for the whole element tree against a
// viewport. The root fills the viewport unless it carries explicit sizes.
// Layout always completes: malformed inputs clamp to zero-area boxes, which
// are laid out but later skipped by painting.
func LayoutTree(root *Element, vp Size) *LayoutNode {
	var start time.Time
	if debugLayout {
		start = time.Now()
	}
	if vp.W < 0 {
		vp.W = 0
	}
	if vp.H < 0 {
		vp.H = 0
	}
	w, h := vp.W, vp.H
	if !root.width.IsAuto() {
		w = root.width.Resolve(vp.W, vp)
	}
	if !root.height.IsAuto() {
		h = root.height.Resolve(vp.H, vp)
	}
	ctx := layoutCtx{vp: vp, anchor: Rect{W: vp.W, H: vp.H}}
	node := layoutNode(root, Rect{X: 0, Y: 0, W: w, H: h}, ctx)
	if debugLayout {
		reportLayout(node, time.Since(start))
	}
	return node
}

// Measure computes the size an element would take inside the given
// available space without producing coordinates. A negative dimension
// means unbounded on that axis; percentages against an unbounded axis
// resolve to content size.
func Measure(el *Element, avail Size) Size {
	vp := Size{W: max(avail.W, 0), H: max(avail.H, 0)}
	return prefSize(el, avail, vp)
}

// layoutNode assigns the element its box, derives the content box and lays
// out children. box is the border box decided by the parent.
func layoutNode(el *Element, box Rect, ctx layoutCtx) *LayoutNode {
	if el.position == PositionRelative {
		dx, dy := 0, 0
		if el.left.set {
			dx = el.left.v
		} else if el.right.set {
			dx = -el.right.v
		}
		if el.top.set {
			dy = el.top.v
		} else if el.bottom.set {
			dy = -el.bottom.v
		}
		box.X += dx
		box.Y += dy
	}

	in := el.insets()
	node := &LayoutNode{
		El:      el,
		Box:     box,
		Content: box.Inset(in.top, in.right, in.bottom, in.left),
	}

	if el.position != PositionFlow {
		ctx.anchor = node.Content
	}

	if el.kind != KindBox || len(el.children) == 0 {
		return node
	}

	var flowBoxes map[*Element]Rect
	switch el.layout {
	case LayoutGrid:
		flowBoxes = layoutGrid(el, node.Content, ctx.vp)
	default:
		flowBoxes = layoutFlex(el, node.Content, ctx.vp)
	}

	node.Children = make([]*LayoutNode, 0, len(el.children))
	for _, child := range el.children {
		assigned := flowBoxes[child]
		if !child.inFlow() {
			assigned = positionedBox(child, assigned, ctx)
		}
		node.Children = append(node.Children, layoutNode(child, assigned, ctx))
	}
	return node
}

// positionedBox resolves an absolute or fixed child against its anchor.
// static is the box the child would occupy in flow; unset offsets fall back
// to it.
func positionedBox(el *Element, static Rect, ctx layoutCtx) Rect {
	anchor := ctx.anchor
	if el.position == PositionFixed {
		anchor = Rect{W: ctx.vp.W, H: ctx.vp.H}
	}

	w, h := static.W, static.H
	if !el.width.IsAuto() {
		w = el.width.Resolve(anchor.W, ctx.vp)
	} else if el.left.set && el.right.set {
		w = max(anchor.W-el.left.v-el.right.v, 0)
	}
	if !el.height.IsAuto() {
		h = el.height.Resolve(anchor.H, ctx.vp)
	} else if el.top.set && el.bottom.set {
		h = max(anchor.H-el.top.v-el.bottom.v, 0)
	}
	if w == 0 || h == 0 {
		pref := prefSize(el, Size{W: anchor.W, H: anchor.H}, ctx.vp)
		if w == 0 && el.width.IsAuto() {
			w = pref.W
		}
		if h == 0 && el.height.IsAuto() {
			h = pref.H
		}
	}
	w = max(w, el.minWidth)
	h = max(h, el.minHeight)

	x, y := static.X, static.Y
	switch {
	case el.left.set:
		x = anchor.X + el.left.v
	case el.right.set:
		x = anchor.X + anchor.W - el.right.v - w
	}
	switch {
	case el.top.set:
		y = anchor.Y + el.top.v
	case el.bottom.set:
		y = anchor.Y + anchor.H - el.bottom.v - h
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// prefSize returns the element's preferred outer size (border box, no
// margins) inside the available space. Explicit units win; otherwise the
// size comes from content. Negative avail marks an unbounded axis.
func prefSize(el *Element, avail Size, vp Size) Size {
	in := el.insets()
	innerAvail := Size{W: avail.W, H: avail.H}
	if innerAvail.W >= 0 {
		innerAvail.W = max(innerAvail.W-in.horizontal(), 0)
	}
	if innerAvail.H >= 0 {
		innerAvail.H = max(innerAvail.H-in.vertical(), 0)
	}

	var size Size
	switch el.kind {
	case KindText:
		size = measureText(el.text, innerAvail.W)
	case KindRule:
		size = Size{W: 1, H: 1}
	case KindBox:
		size = contentSize(el, innerAvail, vp)
	}
	size.W += in.horizontal()
	size.H += in.vertical()

	if el.width.resolvable(avail.W) {
		size.W = el.width.Resolve(avail.W, vp)
	}
	if el.height.resolvable(avail.H) {
		size.H = el.height.Resolve(avail.H, vp)
	}
	size.W = max(size.W, el.minWidth)
	size.H = max(size.H, el.minHeight)
	return size
}

// contentSize measures a box's children without placing them: the summed
// main axis plus gaps, and the widest cross axis. Wrapping is ignored, as
// is grid flow; grids measure like a flex container of their children,
// which keeps measurement single-pass.
func contentSize(el *Element, avail Size, vp Size) Size {
	var mainSum, crossMax int
	n := 0
	for _, child := range el.children {
		if !child.inFlow() {
			continue
		}
		cs := prefSize(child, avail, vp)
		outerW := cs.W + child.margin.horizontal()
		outerH := cs.H + child.margin.vertical()
		if el.direction == Horizontal {
			mainSum += outerW
			crossMax = max(crossMax, outerH)
		} else {
			mainSum += outerH
			crossMax = max(crossMax, outerW)
		}
		n++
	}
	if n > 1 {
		mainSum += el.gap * (n - 1)
	}
	if el.direction == Horizontal {
		return Size{W: mainSum, H: crossMax}
	}
	return Size{W: crossMax, H: mainSum}
}

// distribute splits free cells across items proportionally to their
// weights: floored shares first, then one leftover cell at a time to the
// earliest weighted items in document order. The returned shares always sum
// to free when total weight is positive.
func distribute(free int, weights []float64) []int {
	shares := make([]int, len(weights))
	if free <= 0 {
		return shares
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return shares
	}
	given := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		shares[i] = int(float64(free) * w / total)
		given += shares[i]
	}
	for rem := free - given; rem > 0; {
		for i, w := range weights {
			if w <= 0 || rem == 0 {
				continue
			}
			shares[i]++
			rem--
		}
	}
	return shares
}

// justifyExtra returns the main-axis offset added to item i of n when free
// cells remain after sizing. The telescoping floor arithmetic keeps offsets
// exact with no accumulated drift.
func justifyExtra(j Justify, i, n, free int) int {
	if free <= 0 || n == 0 {
		return 0
	}
	switch j {
	case JustifyEnd:
		return free
	case JustifyCenter:
		return free / 2
	case JustifySpaceBetween:
		if n == 1 {
			return 0
		}
		return free * i / (n - 1)
	case JustifySpaceAround:
		return free * (2*i + 1) / (2 * n)
	case JustifySpaceEvenly:
		return free * (i + 1) / (n + 1)
	default:
		return 0
	}
}

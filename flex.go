package weft

// flexItem is one child's working state during a flex pass.
type flexItem struct {
	el      *Element
	main    int // border-box main size
	cross   int // border-box cross size
	minMain int
	phantom bool // out-of-flow child riding along for its static position
	pref    Size
}

// flexLine is one row (or column) of items after wrapping.
type flexLine struct {
	items []*flexItem // document order, phantoms included
	flow  int         // in-flow item count
	cross int
}

// layoutFlex lays out a box's children as a flex container and returns the
// assigned border box per child. Out-of-flow children get their static
// (in-flow fallback) box; the caller resolves their real position.
func layoutFlex(el *Element, content Rect, vp Size) map[*Element]Rect {
	horizontal := el.direction == Horizontal
	mainAvail := content.W
	crossAvail := content.H
	if !horizontal {
		mainAvail, crossAvail = crossAvail, mainAvail
	}

	items := buildFlexItems(el, horizontal, mainAvail, crossAvail, vp)
	lines := wrapFlexLines(items, el, horizontal, mainAvail)

	boxes := make(map[*Element]Rect, len(el.children))
	crossCursor := 0
	for li := range lines {
		line := &lines[li]
		free := flexFree(line, horizontal, el.gap, mainAvail)
		switch {
		case free > 0:
			weights := make([]float64, len(line.items))
			for i, it := range line.items {
				if !it.phantom {
					weights[i] = it.el.grow
				}
			}
			for i, share := range distribute(free, weights) {
				line.items[i].main += share
			}
		case free < 0:
			shrinkLine(line.items, -free)
		}

		resolveCross(line, el, horizontal, crossAvail, vp)
		if len(lines) == 1 && line.cross < crossAvail {
			// A single line fills the container's cross axis so stretch
			// children reach the container edge.
			line.cross = crossAvail
		}

		leftover := max(flexFree(line, horizontal, el.gap, mainAvail), 0)

		mainCursor := 0
		flowIdx := 0
		for _, it := range line.items {
			if it.phantom {
				boxes[it.el] = placeFlexItem(it, content, horizontal, mainCursor, crossCursor, line.cross, el.align)
				continue
			}
			pos := mainCursor + justifyExtra(el.justify, flowIdx, line.flow, leftover)
			boxes[it.el] = placeFlexItem(it, content, horizontal, pos, crossCursor, line.cross, el.align)
			mainCursor += it.main + axisMargin(it.el.margin, horizontal)
			if flowIdx < line.flow-1 {
				mainCursor += el.gap
			}
			flowIdx++
		}
		crossCursor += line.cross
		if li < len(lines)-1 {
			crossCursor += el.gap
		}
	}
	return boxes
}

// buildFlexItems computes each child's flex basis: the explicit basis unit
// when resolvable, else the explicit main-axis size, else the preferred
// content size, floored by the child's minimum.
func buildFlexItems(el *Element, horizontal bool, mainAvail, crossAvail int, vp Size) []*flexItem {
	items := make([]*flexItem, 0, len(el.children))
	for _, child := range el.children {
		var pref Size
		if horizontal {
			pref = prefSize(child, Size{W: -1, H: crossAvail}, vp)
		} else {
			pref = prefSize(child, Size{W: crossAvail, H: -1}, vp)
		}
		it := &flexItem{el: child, pref: pref}
		if !child.inFlow() {
			it.phantom = true
			items = append(items, it)
			continue
		}

		mainUnit := child.width
		it.minMain = child.minWidth
		basis := pref.W
		if !horizontal {
			mainUnit = child.height
			it.minMain = child.minHeight
			basis = pref.H
		}
		switch {
		case child.basis.resolvable(mainAvail):
			basis = child.basis.Resolve(mainAvail, vp)
		case mainUnit.resolvable(mainAvail):
			basis = mainUnit.Resolve(mainAvail, vp)
		}
		it.main = max(basis, it.minMain)
		items = append(items, it)
	}
	return items
}

// wrapFlexLines splits items into lines. Without wrapping everything lands
// on one line; with it, an in-flow item that no longer fits starts the next
// line. Phantoms never force a wrap.
func wrapFlexLines(items []*flexItem, el *Element, horizontal bool, mainAvail int) []flexLine {
	lines := []flexLine{{}}
	used := 0
	for _, it := range items {
		cur := &lines[len(lines)-1]
		if it.phantom {
			cur.items = append(cur.items, it)
			continue
		}
		outer := it.main + axisMargin(it.el.margin, horizontal)
		need := outer
		if cur.flow > 0 {
			need += el.gap
		}
		if el.wrapLines && cur.flow > 0 && used+need > mainAvail {
			lines = append(lines, flexLine{})
			cur = &lines[len(lines)-1]
			used = 0
			need = outer
		}
		cur.items = append(cur.items, it)
		cur.flow++
		used += need
	}
	return lines
}

// flexFree returns the unused main-axis space on a line; negative means
// overflow.
func flexFree(line *flexLine, horizontal bool, gap, mainAvail int) int {
	used := 0
	for _, it := range line.items {
		if it.phantom {
			continue
		}
		used += it.main + axisMargin(it.el.margin, horizontal)
	}
	if line.flow > 1 {
		used += gap * (line.flow - 1)
	}
	return mainAvail - used
}

// shrinkLine removes overflow cells proportionally to shrink factors,
// never below an item's minimum. Overflow that clamped items cannot absorb
// moves to the items that still can.
func shrinkLine(items []*flexItem, overflow int) {
	for overflow > 0 {
		weights := make([]float64, len(items))
		any := false
		for i, it := range items {
			if !it.phantom && it.main > it.minMain && it.el.shrink > 0 {
				weights[i] = it.el.shrink
				any = true
			}
		}
		if !any {
			return
		}
		absorbed := 0
		for i, share := range distribute(overflow, weights) {
			if share == 0 {
				continue
			}
			take := min(share, items[i].main-items[i].minMain)
			items[i].main -= take
			absorbed += take
		}
		if absorbed == 0 {
			return
		}
		overflow -= absorbed
	}
}

// resolveCross fixes each item's cross size at its final main size and
// derives the line's cross extent.
func resolveCross(line *flexLine, el *Element, horizontal bool, crossAvail int, vp Size) {
	line.cross = 0
	for _, it := range line.items {
		if it.phantom {
			continue
		}
		child := it.el
		crossUnit := child.height
		minCross := child.minHeight
		if !horizontal {
			crossUnit = child.width
			minCross = child.minWidth
		}
		switch {
		case crossUnit.resolvable(crossAvail):
			it.cross = crossUnit.Resolve(crossAvail, vp)
		case horizontal:
			it.cross = prefSize(child, Size{W: it.main, H: -1}, vp).H
		default:
			it.cross = prefSize(child, Size{W: crossAvail, H: it.main}, vp).W
		}
		it.cross = max(it.cross, minCross)

		if outer := it.cross + crossMargin(it.el.margin, horizontal); outer > line.cross {
			line.cross = outer
		}
	}
}

// axisMargin returns the margin total along the main axis.
func axisMargin(m edges, horizontal bool) int {
	if horizontal {
		return m.horizontal()
	}
	return m.vertical()
}

// crossMargin returns the margin total across the main axis.
func crossMargin(m edges, horizontal bool) int {
	if horizontal {
		return m.vertical()
	}
	return m.horizontal()
}

// placeFlexItem turns line-relative main/cross positions into an absolute
// border box, applying margins and cross-axis alignment.
func placeFlexItem(it *flexItem, content Rect, horizontal bool, mainPos, crossPos, lineCross int, containerAlign Align) Rect {
	child := it.el
	if it.phantom {
		// Static boxes keep the preferred size and sit at the flow cursor.
		if horizontal {
			return Rect{X: content.X + mainPos, Y: content.Y + crossPos, W: it.pref.W, H: it.pref.H}
		}
		return Rect{X: content.X + crossPos, Y: content.Y + mainPos, W: it.pref.W, H: it.pref.H}
	}

	align := child.resolvedAlign(containerAlign)
	cross := it.cross
	crossMargins := crossMargin(child.margin, horizontal)
	crossUnit := child.height
	if !horizontal {
		crossUnit = child.width
	}
	if align == AlignStretch && crossUnit.IsAuto() {
		cross = max(lineCross-crossMargins, cross)
	}

	outer := cross + crossMargins
	crossOff := 0
	switch align {
	case AlignCenter:
		crossOff = (lineCross - outer) / 2
	case AlignEnd:
		crossOff = lineCross - outer
	}
	if crossOff < 0 {
		crossOff = 0
	}

	if horizontal {
		return Rect{
			X: content.X + mainPos + child.margin.left,
			Y: content.Y + crossPos + crossOff + child.margin.top,
			W: it.main,
			H: cross,
		}
	}
	return Rect{
		X: content.X + crossPos + crossOff + child.margin.left,
		Y: content.Y + mainPos + child.margin.top,
		W: cross,
		H: it.main,
	}
}

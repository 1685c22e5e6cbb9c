package weft

// resolveTracks turns a track list into concrete sizes. Fixed and
// percentage tracks resolve against the available space; what remains
// after them and the gaps is shared among fr tracks proportionally to
// their factors, floored, with leftover cells handed to the earliest fr
// tracks. Malformed tracks clamp to zero.
func resolveTracks(tracks []Unit, avail, gap int, vp Size) []int {
	n := len(tracks)
	if n == 0 {
		return nil
	}
	sizes := make([]int, n)
	weights := make([]float64, n)
	fixed := 0
	hasFr := false
	for i, t := range tracks {
		if t.Kind == UnitFr {
			if t.Value > 0 {
				weights[i] = t.Value
				hasFr = true
			}
			continue
		}
		sizes[i] = t.Resolve(avail, vp)
		fixed += sizes[i]
	}
	if hasFr {
		remaining := avail - fixed - gap*(n-1)
		if remaining > 0 {
			for i, share := range distribute(remaining, weights) {
				sizes[i] += share
			}
		}
	}
	return sizes
}

// maxGridRows caps explicit row placement so a stray descriptor cannot make
// the occupancy table allocate without bound. Rows past the cap clamp onto
// it and overlap there.
const maxGridRows = 512

// gridArea is a child's landing spot on the track grid, 0-based.
type gridArea struct {
	col, row         int
	colSpan, rowSpan int
}

// gridOccupancy tracks which cells auto-placement may still use. Rows grow
// on demand; explicit placements may overlap each other but block
// auto-placed items.
type gridOccupancy struct {
	cols int
	rows [][]bool
}

func (g *gridOccupancy) ensure(row int) {
	for len(g.rows) <= row {
		g.rows = append(g.rows, make([]bool, g.cols))
	}
}

func (g *gridOccupancy) fits(col, row, colSpan, rowSpan int) bool {
	if col < 0 || col+colSpan > g.cols {
		return false
	}
	g.ensure(row + rowSpan - 1)
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			if g.rows[r][c] {
				return false
			}
		}
	}
	return true
}

func (g *gridOccupancy) mark(col, row, colSpan, rowSpan int) {
	g.ensure(row + rowSpan - 1)
	for r := row; r < row+rowSpan; r++ {
		for c := max(col, 0); c < min(col+colSpan, g.cols); c++ {
			g.rows[r][c] = true
		}
	}
}

// findAuto scans row-major for the first span-sized opening.
func (g *gridOccupancy) findAuto(colSpan, rowSpan int) (int, int) {
	for row := 0; ; row++ {
		g.ensure(row)
		for col := 0; col+colSpan <= g.cols; col++ {
			if g.fits(col, row, colSpan, rowSpan) {
				return col, row
			}
		}
	}
}

// findInRow scans a fixed row for an opening; failing that the item lands
// at the row's left edge and overlaps.
func (g *gridOccupancy) findInRow(row, colSpan, rowSpan int) int {
	for col := 0; col+colSpan <= g.cols; col++ {
		if g.fits(col, row, colSpan, rowSpan) {
			return col
		}
	}
	return 0
}

// findInCol scans a fixed column downward for an opening.
func (g *gridOccupancy) findInCol(col, colSpan, rowSpan int) int {
	for row := 0; ; row++ {
		if g.fits(col, row, colSpan, rowSpan) {
			return row
		}
	}
}

// layoutGrid lays out a box's children on grid tracks and returns the
// assigned border box per child. Items with explicit cells claim them
// first, then single-axis placements, then row-major auto-placement into
// the remaining openings. Items overflowing the declared rows create
// implicit rows sized to their content.
func layoutGrid(el *Element, content Rect, vp Size) map[*Element]Rect {
	cols := el.gridCols
	if len(cols) == 0 {
		cols = []Unit{Fr(1)}
	}
	colWidths := resolveTracks(cols, content.W, el.gap, vp)
	nCols := len(colWidths)

	occ := &gridOccupancy{cols: nCols}
	areas := make(map[*Element]gridArea, len(el.children))

	newArea := func(child *Element) gridArea {
		return gridArea{
			colSpan: min(max(child.colSpan, 1), nCols),
			rowSpan: min(max(child.rowSpan, 1), maxGridRows),
		}
	}

	for _, child := range el.children {
		if !child.inFlow() || child.colStart == 0 || child.rowStart == 0 {
			continue
		}
		a := newArea(child)
		a.col = min(child.colStart-1, nCols-a.colSpan)
		a.row = min(child.rowStart-1, maxGridRows)
		occ.mark(a.col, a.row, a.colSpan, a.rowSpan)
		areas[child] = a
	}
	for _, child := range el.children {
		if !child.inFlow() {
			continue
		}
		if _, done := areas[child]; done {
			continue
		}
		if child.colStart == 0 && child.rowStart == 0 {
			continue
		}
		a := newArea(child)
		if child.rowStart > 0 {
			a.row = min(child.rowStart-1, maxGridRows)
			a.col = occ.findInRow(a.row, a.colSpan, a.rowSpan)
		} else {
			a.col = min(child.colStart-1, nCols-a.colSpan)
			a.row = occ.findInCol(a.col, a.colSpan, a.rowSpan)
		}
		occ.mark(a.col, a.row, a.colSpan, a.rowSpan)
		areas[child] = a
	}
	for _, child := range el.children {
		if !child.inFlow() {
			continue
		}
		if _, done := areas[child]; done {
			continue
		}
		a := newArea(child)
		a.col, a.row = occ.findAuto(a.colSpan, a.rowSpan)
		occ.mark(a.col, a.row, a.colSpan, a.rowSpan)
		areas[child] = a
	}

	rowHeights := gridRowHeights(el, areas, content, colWidths, vp)

	colX := make([]int, nCols+1)
	for i, w := range colWidths {
		colX[i+1] = colX[i] + w
	}
	rowY := make([]int, len(rowHeights)+1)
	for i, h := range rowHeights {
		rowY[i+1] = rowY[i] + h
	}

	boxes := make(map[*Element]Rect, len(el.children))
	for _, child := range el.children {
		if !child.inFlow() {
			// Static fallback for positioned children: the content origin
			// at preferred size.
			pref := prefSize(child, Size{W: content.W, H: content.H}, vp)
			boxes[child] = Rect{X: content.X, Y: content.Y, W: pref.W, H: pref.H}
			continue
		}
		a := areas[child]
		area := Rect{
			X: content.X + colX[a.col] + a.col*el.gap,
			Y: content.Y + rowY[a.row] + a.row*el.gap,
			W: colX[a.col+a.colSpan] - colX[a.col] + (a.colSpan-1)*el.gap,
			H: rowY[a.row+a.rowSpan] - rowY[a.row] + (a.rowSpan-1)*el.gap,
		}
		area = area.Inset(child.margin.top, child.margin.right, child.margin.bottom, child.margin.left)

		// Grid items stretch to their area unless explicitly sized.
		w, h := area.W, area.H
		if child.width.resolvable(area.W) {
			w = child.width.Resolve(area.W, vp)
		}
		if child.height.resolvable(area.H) {
			h = child.height.Resolve(area.H, vp)
		}
		boxes[child] = Rect{X: area.X, Y: area.Y, W: max(w, child.minWidth), H: max(h, child.minHeight)}
	}
	return boxes
}

// gridRowHeights resolves declared row tracks and appends implicit rows
// sized to the tallest content placed in them.
func gridRowHeights(el *Element, areas map[*Element]gridArea, content Rect, colWidths []int, vp Size) []int {
	rowCount := len(el.gridRows)
	for _, a := range areas {
		if end := a.row + a.rowSpan; end > rowCount {
			rowCount = end
		}
	}
	if rowCount == 0 {
		return nil
	}

	var heights []int
	if len(el.gridRows) > 0 {
		heights = resolveTracks(el.gridRows, content.H, el.gap, vp)
	}
	for len(heights) < rowCount {
		heights = append(heights, 0)
	}

	// Implicit rows grow to fit; declared rows keep their resolved size.
	for _, child := range el.children {
		a, ok := areas[child]
		if !ok {
			continue
		}
		areaW := 0
		for c := a.col; c < a.col+a.colSpan && c < len(colWidths); c++ {
			areaW += colWidths[c]
		}
		pref := prefSize(child, Size{W: areaW, H: -1}, vp)
		perRow := (pref.H + a.rowSpan - 1) / a.rowSpan
		for r := a.row; r < a.row+a.rowSpan; r++ {
			if r >= len(el.gridRows) && perRow > heights[r] {
				heights[r] = perRow
			}
		}
	}
	return heights
}

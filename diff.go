package weft

import "github.com/mattn/go-runewidth"

// DiffOp is one contiguous run of cells to repaint on a single row. The
// run covers columns [StartCol, StartCol+len(Cells)).
type DiffOp struct {
	Row      int
	StartCol int
	Cells    []Cell
}

// Diff compares two frames and returns the per-row operations that turn
// prev into next. Equal buffers produce no ops, and op coverage matches
// the set of differing cells exactly, except that a change touching either
// half of a wide-rune pair always carries both halves so a pair is never
// split across a repaint.
//
// A nil prev or a dimension mismatch yields a full redraw: one op per row
// of next.
func Diff(prev, next *Buffer) []DiffOp {
	if next == nil {
		return nil
	}
	if prev == nil || prev.w != next.w || prev.h != next.h {
		return fullRedraw(next)
	}
	var ops []DiffOp
	changed := make([]bool, next.w)
	for y := 0; y < next.h; y++ {
		ops = appendRowDiff(ops, prev, next, y, changed)
	}
	return ops
}

func fullRedraw(next *Buffer) []DiffOp {
	ops := make([]DiffOp, 0, next.h)
	for y := 0; y < next.h; y++ {
		row := next.cells[y*next.w : (y+1)*next.w]
		cells := make([]Cell, len(row))
		copy(cells, row)
		ops = append(ops, DiffOp{Row: y, Cells: cells})
	}
	return ops
}

func appendRowDiff(ops []DiffOp, prev, next *Buffer, y int, changed []bool) []DiffOp {
	w := next.w
	po := prev.cells[y*w : (y+1)*w]
	no := next.cells[y*w : (y+1)*w]

	any := false
	for x := 0; x < w; x++ {
		changed[x] = po[x] != no[x]
		any = any || changed[x]
	}
	if !any {
		return ops
	}
	widenWidePairs(po, changed)
	widenWidePairs(no, changed)

	for x := 0; x < w; {
		if !changed[x] {
			x++
			continue
		}
		start := x
		for x < w && changed[x] {
			x++
		}
		cells := make([]Cell, x-start)
		copy(cells, no[start:x])
		ops = append(ops, DiffOp{Row: y, StartCol: start, Cells: cells})
	}
	return ops
}

// widenWidePairs marks both cells of a wide-rune pair changed when either
// one is. A pair is a two-column rune followed by its continuation cell.
func widenWidePairs(row []Cell, changed []bool) {
	for x := 0; x+1 < len(row); x++ {
		if runewidth.RuneWidth(row[x].Rune) != 2 || row[x+1].Rune != 0 {
			continue
		}
		if changed[x] || changed[x+1] {
			changed[x] = true
			changed[x+1] = true
		}
	}
}

package weft

import "strings"

// Buffer is a fixed-size grid of cells. Dimensions never change after
// construction; resizing means allocating a new buffer and copying the
// overlap, so a buffer held elsewhere (the previous frame, a diff in
// progress) is never reshaped underneath its holder.
type Buffer struct {
	cells []Cell
	w, h  int
}

// NewBuffer returns a buffer filled with blank cells.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{cells: make([]Cell, w*h), w: w, h: h}
	b.Clear()
	return b
}

// NewLayerBuffer returns a buffer of untouched (zero) cells. Untouched
// cells are skipped when the layer merges down, so whatever lies under the
// layer shows through.
func NewLayerBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{cells: make([]Cell, w*h), w: w, h: h}
}

// Width returns the buffer width in cells.
func (b *Buffer) Width() int { return b.w }

// Height returns the buffer height in cells.
func (b *Buffer) Height() int { return b.h }

// Size returns the buffer dimensions.
func (b *Buffer) Size() Size { return Size{W: b.w, H: b.h} }

func (b *Buffer) index(x, y int) int { return y*b.w + x }

func (b *Buffer) in(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// Get returns the cell at (x, y), or a blank cell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.in(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set writes the cell at (x, y). Out-of-bounds writes are dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.in(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// Clear resets every cell to blank.
func (b *Buffer) Clear() {
	empty := EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
}

// ClearUntouched resets every cell to the untouched zero state, making the
// whole buffer transparent for merging.
func (b *Buffer) ClearUntouched() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

// Resized returns a new buffer of the given size with the overlapping
// region copied over. The receiver is untouched.
func (b *Buffer) Resized(w, h int) *Buffer {
	nb := NewBuffer(w, h)
	cw := min(w, b.w)
	for y := 0; y < min(h, b.h); y++ {
		copy(nb.cells[nb.index(0, y):nb.index(0, y)+cw],
			b.cells[b.index(0, y):b.index(0, y)+cw])
	}
	return nb
}

// FillRect paints every cell of the rectangle, clipped to the buffer.
func (b *Buffer) FillRect(x, y, w, h int, c Cell) {
	x1, y1 := max(x, 0), max(y, 0)
	x2, y2 := min(x+w, b.w), min(y+h, b.h)
	for row := y1; row < y2; row++ {
		base := b.index(0, row)
		for col := x1; col < x2; col++ {
			b.cells[base+col] = c
		}
	}
}

// WriteString writes a single row of text starting at (x, y) and returns
// the number of columns written. Wide runes occupy two cells, the second
// holding a continuation marker. Cells outside the written range are
// untouched.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	return b.WriteStringClipped(x, y, s, style, b.w-x)
}

// WriteStringClipped writes at most maxWidth columns of a single row of
// text starting at (x, y), returning the columns written. A wide rune that
// would straddle the clip edge is replaced by a blank rather than torn in
// half.
func (b *Buffer) WriteStringClipped(x, y int, s string, style Style, maxWidth int) int {
	if y < 0 || y >= b.h || maxWidth <= 0 {
		return 0
	}
	limit := min(x+maxWidth, b.w)
	col := x
	for _, g := range graphemes(s) {
		if g.w == 0 {
			continue
		}
		if col+g.w > limit {
			if g.w == 2 && col < limit {
				b.Set(col, y, NewCell(' ', style))
				col++
			}
			break
		}
		b.Set(col, y, NewCell(g.r, style))
		if g.w == 2 {
			b.Set(col+1, y, continuation(style))
		}
		col += g.w
	}
	return col - x
}

// HLine draws a horizontal run of the given rune.
func (b *Buffer) HLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x+i, y, NewCell(r, style))
	}
}

// VLine draws a vertical run of the given rune.
func (b *Buffer) VLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x, y+i, NewCell(r, style))
	}
}

// Blit copies src onto the buffer with its origin at (x, y). When opaque is
// false, untouched cells in src are skipped so the destination shows
// through; this is how layers merge without erasing what is under them.
func (b *Buffer) Blit(src *Buffer, x, y int, opaque bool) {
	for sy := 0; sy < src.h; sy++ {
		dy := y + sy
		if dy < 0 || dy >= b.h {
			continue
		}
		srcBase := src.index(0, sy)
		dstBase := b.index(0, dy)
		for sx := 0; sx < src.w; sx++ {
			dx := x + sx
			if dx < 0 || dx >= b.w {
				continue
			}
			c := src.cells[srcBase+sx]
			if !opaque && c == (Cell{}) {
				continue
			}
			b.cells[dstBase+dx] = c
		}
	}
}

// GetLine returns row y as a string with trailing blanks trimmed. Zero
// runes (continuations, untouched cells) read as spaces.
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.h {
		return ""
	}
	var line []byte
	lastNonSpace := -1
	for x := 0; x < b.w; x++ {
		r := b.cells[b.index(x, y)].Rune
		if r == 0 {
			r = ' '
		}
		line = append(line, string(r)...)
		if r != ' ' {
			lastNonSpace = len(line)
		}
	}
	if lastNonSpace >= 0 {
		return string(line[:lastNonSpace])
	}
	return ""
}

// String returns the buffer contents as newline-joined rows with trailing
// spaces preserved, for tests and debug output.
func (b *Buffer) String() string {
	var result []byte
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			r := b.cells[b.index(x, y)].Rune
			if r == 0 {
				r = ' '
			}
			result = append(result, string(r)...)
		}
		if y < b.h-1 {
			result = append(result, '\n')
		}
	}
	return string(result)
}

// StringTrimmed returns the buffer contents with trailing spaces removed
// per line and trailing empty lines dropped.
func (b *Buffer) StringTrimmed() string {
	lines := make([]string, 0, b.h)
	for y := 0; y < b.h; y++ {
		lines = append(lines, b.GetLine(y))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Box-drawing runes shared by the border styles.
const (
	BoxHorizontal  = '─'
	BoxVertical    = '│'
	BoxTopLeft     = '┌'
	BoxTopRight    = '┐'
	BoxBottomLeft  = '└'
	BoxBottomRight = '┘'
	BoxCross       = '┼'
	BoxTeeLeft     = '┤'
	BoxTeeRight    = '├'
	BoxTeeDown     = '┬'
	BoxTeeUp       = '┴'
)

// BorderStyle is the set of glyphs a border is drawn with.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

var (
	// BorderSingle is a single thin line.
	BorderSingle = BorderStyle{
		Horizontal: '─', Vertical: '│',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	}
	// BorderRounded is a thin line with rounded corners.
	BorderRounded = BorderStyle{
		Horizontal: '─', Vertical: '│',
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
	}
	// BorderDouble is a double line.
	BorderDouble = BorderStyle{
		Horizontal: '═', Vertical: '║',
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
	}
	// BorderThick is a heavy line.
	BorderThick = BorderStyle{
		Horizontal: '━', Vertical: '┃',
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
	}
	// BorderDashed is a thin dashed line.
	BorderDashed = BorderStyle{
		Horizontal: '╌', Vertical: '╎',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	}
	// BorderDotted is a thin dotted line.
	BorderDotted = BorderStyle{
		Horizontal: '┄', Vertical: '┆',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	}
)

// Edge connectivity masks for the thin border family. Merging ORs the masks
// of the old and new rune and looks the union back up, which is what turns
// two touching corners into a tee or a cross.
const (
	edgeUp uint8 = 1 << iota
	edgeRight
	edgeDown
	edgeLeft
)

var borderEdges = map[rune]uint8{
	'─': edgeLeft | edgeRight,
	'│': edgeUp | edgeDown,
	'┌': edgeRight | edgeDown,
	'┐': edgeLeft | edgeDown,
	'└': edgeRight | edgeUp,
	'┘': edgeLeft | edgeUp,
	'├': edgeUp | edgeDown | edgeRight,
	'┤': edgeUp | edgeDown | edgeLeft,
	'┬': edgeLeft | edgeRight | edgeDown,
	'┴': edgeLeft | edgeRight | edgeUp,
	'┼': edgeUp | edgeDown | edgeLeft | edgeRight,
}

var edgesToBorder = map[uint8]rune{
	edgeLeft | edgeRight:                     '─',
	edgeUp | edgeDown:                        '│',
	edgeRight | edgeDown:                     '┌',
	edgeLeft | edgeDown:                      '┐',
	edgeRight | edgeUp:                       '└',
	edgeLeft | edgeUp:                        '┘',
	edgeUp | edgeDown | edgeRight:            '├',
	edgeUp | edgeDown | edgeLeft:             '┤',
	edgeLeft | edgeRight | edgeDown:          '┬',
	edgeLeft | edgeRight | edgeUp:            '┴',
	edgeUp | edgeDown | edgeLeft | edgeRight: '┼',
}

// setBorder writes a border rune, joining it with any thin border rune
// already in the cell.
func (b *Buffer) setBorder(x, y int, r rune, style Style) {
	if !b.in(x, y) {
		return
	}
	old := b.cells[b.index(x, y)].Rune
	if oldEdges, ok := borderEdges[old]; ok {
		if newEdges, ok := borderEdges[r]; ok {
			if merged, ok := edgesToBorder[oldEdges|newEdges]; ok {
				r = merged
			}
		}
	}
	b.cells[b.index(x, y)] = NewCell(r, style)
}

// DrawBorder draws the given edges of a rectangle's border. A corner glyph
// appears where two drawn edges meet; a lone edge runs through its corner
// cells. Rectangles narrower than 2 cells on an axis get no edges on that
// axis.
func (b *Buffer) DrawBorder(x, y, w, h int, bs BorderStyle, set EdgeSet, style Style) {
	if w < 2 || h < 2 {
		return
	}
	right := x + w - 1
	bottom := y + h - 1

	if set.Has(EdgeTop) {
		for cx := x + 1; cx < right; cx++ {
			b.setBorder(cx, y, bs.Horizontal, style)
		}
	}
	if set.Has(EdgeBottom) {
		for cx := x + 1; cx < right; cx++ {
			b.setBorder(cx, bottom, bs.Horizontal, style)
		}
	}
	if set.Has(EdgeLeft) {
		for cy := y + 1; cy < bottom; cy++ {
			b.setBorder(x, cy, bs.Vertical, style)
		}
	}
	if set.Has(EdgeRight) {
		for cy := y + 1; cy < bottom; cy++ {
			b.setBorder(right, cy, bs.Vertical, style)
		}
	}

	b.drawCorner(x, y, set, EdgeTop, EdgeLeft, bs.TopLeft, bs, style)
	b.drawCorner(right, y, set, EdgeTop, EdgeRight, bs.TopRight, bs, style)
	b.drawCorner(x, bottom, set, EdgeBottom, EdgeLeft, bs.BottomLeft, bs, style)
	b.drawCorner(right, bottom, set, EdgeBottom, EdgeRight, bs.BottomRight, bs, style)
}

func (b *Buffer) drawCorner(x, y int, set EdgeSet, hEdge, vEdge EdgeSet, corner rune, bs BorderStyle, style Style) {
	switch {
	case set.Has(hEdge) && set.Has(vEdge):
		b.setBorder(x, y, corner, style)
	case set.Has(hEdge):
		b.setBorder(x, y, bs.Horizontal, style)
	case set.Has(vEdge):
		b.setBorder(x, y, bs.Vertical, style)
	}
}

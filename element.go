package weft

import "fmt"

// ElementKind identifies the variant of an element descriptor. The set is
// closed: every switch over it handles all three kinds.
type ElementKind uint8

const (
	// KindBox is a container laid out by flex or grid rules.
	KindBox ElementKind = iota
	// KindText is a leaf text run.
	KindText
	// KindRule is a leaf line that fills its main axis.
	KindRule
)

// Direction is a flex container's main axis.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

// Justify positions children along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align positions children along the cross axis. The zero value stretches
// children to the container's cross size.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
	// AlignBaseline aligns first text rows. On a cell grid every inline
	// run is one row tall, so it behaves as AlignStart.
	AlignBaseline
)

// Position selects how an element participates in layout flow.
type Position uint8

const (
	// PositionFlow is normal in-flow layout.
	PositionFlow Position = iota
	// PositionRelative stays in flow but may shift by its offsets and
	// anchors absolute descendants.
	PositionRelative
	// PositionAbsolute leaves the flow and resolves against the nearest
	// positioned ancestor.
	PositionAbsolute
	// PositionFixed leaves the flow and resolves against the viewport.
	PositionFixed
)

// LayoutKind selects the layout algorithm for a box's children.
type LayoutKind uint8

const (
	LayoutFlex LayoutKind = iota
	LayoutGrid
)

// EdgeSet is a bitmask of box edges.
type EdgeSet uint8

const (
	EdgeTop EdgeSet = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft

	EdgeAll = EdgeTop | EdgeRight | EdgeBottom | EdgeLeft
)

// Has reports whether the set contains the edge.
func (e EdgeSet) Has(edge EdgeSet) bool { return e&edge != 0 }

// edges holds per-edge cell amounts for padding and margin.
type edges struct {
	top, right, bottom, left int
}

func (e edges) horizontal() int { return e.left + e.right }
func (e edges) vertical() int   { return e.top + e.bottom }

// expandEdges applies the 1/2/4-value shorthand: all; vertical, horizontal;
// top, right, bottom, left. Negative values clamp to zero.
func expandEdges(vals []int) edges {
	var e edges
	switch len(vals) {
	case 1:
		e = edges{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		e = edges{vals[0], vals[1], vals[0], vals[1]}
	case 4:
		e = edges{vals[0], vals[1], vals[2], vals[3]}
	}
	if e.top < 0 {
		e.top = 0
	}
	if e.right < 0 {
		e.right = 0
	}
	if e.bottom < 0 {
		e.bottom = 0
	}
	if e.left < 0 {
		e.left = 0
	}
	return e
}

// offsetValue is an optional positioning offset. Zero is a meaningful
// offset, so presence is tracked separately.
type offsetValue struct {
	set bool
	v   int
}

// Element is a node in the descriptor tree handed to the engine. Elements
// carry no parent pointers and no layout results; everything the engine
// derives is threaded through the render pass instead of stored back.
//
// Elements are built with the chainable setters below:
//
//	weft.Row(
//		weft.Text("status").Bold(),
//		weft.Box().Grow(1),
//		weft.Text("3 warnings").Foreground(weft.Yellow),
//	).Border(weft.BorderSingle).Padding(0, 1)
type Element struct {
	kind     ElementKind
	children []*Element
	text     string
	id       string

	width, height       Unit
	minWidth, minHeight int
	basis               Unit
	padding             edges
	margin              edges
	gap                 int

	layout    LayoutKind
	direction Direction
	wrapLines bool
	justify   Justify
	align     Align
	alignSelf Align
	selfSet   bool
	grow      float64
	shrink    float64

	gridCols           []Unit
	gridRows           []Unit
	colStart, rowStart int
	colSpan, rowSpan   int

	position Position
	left     offsetValue
	top      offsetValue
	right    offsetValue
	bottom   offsetValue

	z        int
	ownLayer bool

	style      Style
	focusStyle Style
	hasFocus   bool

	hasBorder   bool
	borderStyle BorderStyle
	borderEdges EdgeSet
	borderFG    Color
	borderBG    Color
}

// Box returns a container element. The default layout is a flex row.
func Box(children ...*Element) *Element {
	return &Element{
		kind:     KindBox,
		children: children,
		shrink:   1,
		colSpan:  1,
		rowSpan:  1,
	}
}

// Row returns a flex container with a horizontal main axis.
func Row(children ...*Element) *Element {
	return Box(children...)
}

// Col returns a flex container with a vertical main axis.
func Col(children ...*Element) *Element {
	e := Box(children...)
	e.direction = Vertical
	return e
}

// Grid returns a container laid out on grid tracks.
func Grid(children ...*Element) *Element {
	e := Box(children...)
	e.layout = LayoutGrid
	return e
}

// Text returns a leaf text element.
func Text(s string) *Element {
	return &Element{kind: KindText, text: s, shrink: 1, colSpan: 1, rowSpan: 1}
}

// Textf returns a leaf text element with printf-style formatting.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// Rule returns a line element that fills the main axis of its container.
func Rule() *Element {
	return &Element{kind: KindRule, shrink: 1, colSpan: 1, rowSpan: 1}
}

// Kind returns the element's variant.
func (e *Element) Kind() ElementKind { return e.kind }

// GetID returns the element's identity token ("" when unset).
func (e *Element) GetID() string { return e.id }

// GetText returns a text element's content.
func (e *Element) GetText() string { return e.text }

// Children returns the element's children.
func (e *Element) Children() []*Element { return e.children }

// Add appends children and returns the element.
func (e *Element) Add(children ...*Element) *Element {
	e.children = append(e.children, children...)
	return e
}

// SetText replaces a text element's content.
func (e *Element) SetText(s string) *Element {
	e.text = s
	return e
}

// ID sets the identity token used by hit testing and focus styling.
func (e *Element) ID(id string) *Element {
	e.id = id
	return e
}

// --- sizing ---

// Width sets the preferred width.
func (e *Element) Width(u Unit) *Element {
	e.width = u
	return e
}

// Height sets the preferred height.
func (e *Element) Height(u Unit) *Element {
	e.height = u
	return e
}

// MinWidth sets a lower bound in cells.
func (e *Element) MinWidth(n int) *Element {
	e.minWidth = max(n, 0)
	return e
}

// MinHeight sets a lower bound in cells.
func (e *Element) MinHeight(n int) *Element {
	e.minHeight = max(n, 0)
	return e
}

// Basis sets the flex basis, overriding the intrinsic main size.
func (e *Element) Basis(u Unit) *Element {
	e.basis = u
	return e
}

// Padding sets inner spacing: Padding(all), Padding(v, h) or
// Padding(top, right, bottom, left).
func (e *Element) Padding(vals ...int) *Element {
	e.padding = expandEdges(vals)
	return e
}

// Margin sets outer spacing with the same shorthand as Padding.
func (e *Element) Margin(vals ...int) *Element {
	e.margin = expandEdges(vals)
	return e
}

// Gap sets the spacing between children in cells.
func (e *Element) Gap(n int) *Element {
	e.gap = max(n, 0)
	return e
}

// --- flex ---

// Direction sets the main axis.
func (e *Element) Direction(d Direction) *Element {
	e.direction = d
	return e
}

// Wrap lets children that overflow the main axis start a new line.
func (e *Element) Wrap() *Element {
	e.wrapLines = true
	return e
}

// Justify sets main-axis distribution.
func (e *Element) Justify(j Justify) *Element {
	e.justify = j
	return e
}

// Align sets cross-axis alignment for the container's children.
func (e *Element) Align(a Align) *Element {
	e.align = a
	return e
}

// AlignSelf overrides the container's alignment for this element.
func (e *Element) AlignSelf(a Align) *Element {
	e.alignSelf = a
	e.selfSet = true
	return e
}

// Grow sets the share of leftover main-axis space this element takes.
func (e *Element) Grow(factor float64) *Element {
	if factor < 0 {
		factor = 0
	}
	e.grow = factor
	return e
}

// Shrink sets the share of main-axis overflow this element absorbs.
// Elements default to shrink 1.
func (e *Element) Shrink(factor float64) *Element {
	if factor < 0 {
		factor = 0
	}
	e.shrink = factor
	return e
}

// --- grid ---

// Columns declares grid column tracks and switches the container to grid
// layout. Tracks may be Cells, Ch, Pct or Fr units.
func (e *Element) Columns(tracks ...Unit) *Element {
	e.layout = LayoutGrid
	e.gridCols = tracks
	return e
}

// Rows declares grid row tracks and switches the container to grid layout.
func (e *Element) Rows(tracks ...Unit) *Element {
	e.layout = LayoutGrid
	e.gridRows = tracks
	return e
}

// At places the element at a 1-based grid cell. Zero leaves an axis
// auto-placed.
func (e *Element) At(col, row int) *Element {
	e.colStart = max(col, 0)
	e.rowStart = max(row, 0)
	return e
}

// Span makes the element cover the given number of tracks on each axis.
func (e *Element) Span(cols, rows int) *Element {
	e.colSpan = max(cols, 1)
	e.rowSpan = max(rows, 1)
	return e
}

// --- positioning ---

// Relative keeps the element in flow but shifts it by its offsets. It also
// becomes the anchor for absolute descendants.
func (e *Element) Relative() *Element {
	e.position = PositionRelative
	return e
}

// Absolute removes the element from flow; it resolves against the nearest
// positioned ancestor.
func (e *Element) Absolute() *Element {
	e.position = PositionAbsolute
	return e
}

// Fixed removes the element from flow; it resolves against the viewport.
func (e *Element) Fixed() *Element {
	e.position = PositionFixed
	return e
}

// Left sets the offset from the anchor's left edge.
func (e *Element) Left(n int) *Element {
	e.left = offsetValue{set: true, v: n}
	return e
}

// Top sets the offset from the anchor's top edge.
func (e *Element) Top(n int) *Element {
	e.top = offsetValue{set: true, v: n}
	return e
}

// Right sets the offset from the anchor's right edge.
func (e *Element) Right(n int) *Element {
	e.right = offsetValue{set: true, v: n}
	return e
}

// Bottom sets the offset from the anchor's bottom edge.
func (e *Element) Bottom(n int) *Element {
	e.bottom = offsetValue{set: true, v: n}
	return e
}

// --- layering ---

// Z sets the stacking order. Non-zero values paint on their own layer.
func (e *Element) Z(z int) *Element {
	e.z = z
	return e
}

// Layer paints the element's subtree on its own compositing layer even at
// z 0.
func (e *Element) Layer() *Element {
	e.ownLayer = true
	return e
}

// --- visual ---

// Style replaces the element's visual style.
func (e *Element) Style(s Style) *Element {
	e.style = s
	return e
}

// Foreground sets the foreground color.
func (e *Element) Foreground(c Color) *Element {
	e.style.FG = c
	return e
}

// Background sets the background color. Elements without one are
// transparent: ancestor content shows through.
func (e *Element) Background(c Color) *Element {
	e.style.BG = c
	return e
}

// Bold sets the bold attribute.
func (e *Element) Bold() *Element {
	e.style.Attr = e.style.Attr.With(AttrBold)
	return e
}

// Dim sets the dim attribute.
func (e *Element) Dim() *Element {
	e.style.Attr = e.style.Attr.With(AttrDim)
	return e
}

// Italic sets the italic attribute.
func (e *Element) Italic() *Element {
	e.style.Attr = e.style.Attr.With(AttrItalic)
	return e
}

// Underline sets the underline attribute.
func (e *Element) Underline() *Element {
	e.style.Attr = e.style.Attr.With(AttrUnderline)
	return e
}

// Blink sets the blink attribute.
func (e *Element) Blink() *Element {
	e.style.Attr = e.style.Attr.With(AttrBlink)
	return e
}

// Inverse sets the inverse attribute.
func (e *Element) Inverse() *Element {
	e.style.Attr = e.style.Attr.With(AttrInverse)
	return e
}

// Strikethrough sets the strikethrough attribute.
func (e *Element) Strikethrough() *Element {
	e.style.Attr = e.style.Attr.With(AttrStrikethrough)
	return e
}

// Focus sets the style used instead of the element's own while the engine's
// focus token equals this element's ID.
func (e *Element) Focus(s Style) *Element {
	e.focusStyle = s
	e.hasFocus = true
	return e
}

// Border draws the given border glyphs on all edges.
func (e *Element) Border(bs BorderStyle) *Element {
	e.hasBorder = true
	e.borderStyle = bs
	e.borderEdges = EdgeAll
	return e
}

// BorderEdges limits the border to the given edges.
func (e *Element) BorderEdges(set EdgeSet) *Element {
	e.borderEdges = set
	return e
}

// BorderForeground sets the border's foreground color.
func (e *Element) BorderForeground(c Color) *Element {
	e.borderFG = c
	return e
}

// BorderBackground sets the border's background color.
func (e *Element) BorderBackground(c Color) *Element {
	e.borderBG = c
	return e
}

// insets returns the total top/right/bottom/left space consumed by border
// and padding, the frame between the element's outer box and its content.
func (e *Element) insets() edges {
	in := e.padding
	if e.hasBorder {
		if e.borderEdges.Has(EdgeTop) {
			in.top++
		}
		if e.borderEdges.Has(EdgeRight) {
			in.right++
		}
		if e.borderEdges.Has(EdgeBottom) {
			in.bottom++
		}
		if e.borderEdges.Has(EdgeLeft) {
			in.left++
		}
	}
	return in
}

// resolvedAlign returns the alignment this element uses inside a container
// that aligns children with containerAlign.
func (e *Element) resolvedAlign(containerAlign Align) Align {
	if e.selfSet {
		return e.alignSelf
	}
	return containerAlign
}

// inFlow reports whether the element occupies space in its parent's layout.
func (e *Element) inFlow() bool {
	return e.position == PositionFlow || e.position == PositionRelative
}

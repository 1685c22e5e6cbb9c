// Package weft is a terminal rendering engine. It lays a tree of element
// descriptors out on a character grid, paints the result into cell buffers,
// and drives the terminal with minimal escape output by diffing successive
// frames.
package weft

// Attribute represents text styling attributes that can be combined.
type Attribute uint8

const (
	AttrNone Attribute = 0

	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns the attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns the attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ColorMode identifies how a Color value is interpreted.
type ColorMode uint8

const (
	// ColorNone is the terminal's default color. It is the zero value, so
	// an unset color means "inherit or default".
	ColorNone ColorMode = iota
	// Color16 is one of the 16 basic ANSI colors (Index 0-15).
	Color16
	// Color256 is an xterm 256-color palette index.
	Color256
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is a terminal color in one of four modes. The zero value is the
// terminal default, which painting treats as "unset": it inherits from the
// enclosing element or falls through to whatever is already on screen.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{}
}

// BasicColor returns one of the 16 basic ANSI colors (0-15).
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index & 0x0f}
}

// PaletteColor returns an xterm 256-palette color.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit color from a 0xRRGGBB literal.
func Hex(hex uint32) Color {
	return Color{
		Mode: ColorRGB,
		R:    uint8(hex >> 16),
		G:    uint8(hex >> 8),
		B:    uint8(hex),
	}
}

// IsSet reports whether the color carries a value. Unset colors inherit.
func (c Color) IsSet() bool {
	return c.Mode != ColorNone
}

// The 16 basic ANSI colors.
var (
	Black         = BasicColor(0)
	Red           = BasicColor(1)
	Green         = BasicColor(2)
	Yellow        = BasicColor(3)
	Blue          = BasicColor(4)
	Magenta       = BasicColor(5)
	Cyan          = BasicColor(6)
	White         = BasicColor(7)
	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

// Style is the visual state of a cell: foreground, background and attribute
// set. The zero value renders as the terminal default.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns the zero style.
func DefaultStyle() Style {
	return Style{}
}

// Foreground returns the style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns the style with the given background color.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Bold returns the style with the bold attribute set.
func (s Style) Bold() Style {
	s.Attr = s.Attr.With(AttrBold)
	return s
}

// Dim returns the style with the dim attribute set.
func (s Style) Dim() Style {
	s.Attr = s.Attr.With(AttrDim)
	return s
}

// Italic returns the style with the italic attribute set.
func (s Style) Italic() Style {
	s.Attr = s.Attr.With(AttrItalic)
	return s
}

// Underline returns the style with the underline attribute set.
func (s Style) Underline() Style {
	s.Attr = s.Attr.With(AttrUnderline)
	return s
}

// Blink returns the style with the blink attribute set.
func (s Style) Blink() Style {
	s.Attr = s.Attr.With(AttrBlink)
	return s
}

// Inverse returns the style with the inverse attribute set.
func (s Style) Inverse() Style {
	s.Attr = s.Attr.With(AttrInverse)
	return s
}

// Strikethrough returns the style with the strikethrough attribute set.
func (s Style) Strikethrough() Style {
	s.Attr = s.Attr.With(AttrStrikethrough)
	return s
}

// Equal reports whether two styles are identical.
func (s Style) Equal(o Style) bool {
	return s == o
}

// over returns s with unset colors filled in from the inherited style.
// Attributes do not inherit; only colors thread down the element tree.
func (s Style) over(inherited Style) Style {
	if !s.FG.IsSet() {
		s.FG = inherited.FG
	}
	if !s.BG.IsSet() {
		s.BG = inherited.BG
	}
	return s
}

// Cell is a single character cell: a rune plus its style. A zero rune marks
// either the continuation half of a wide rune or, in layer buffers, a cell
// the compositor never touched.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell: a space with the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// NewCell returns a cell with the given rune and style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}

// continuation returns the trailing cell written after a wide rune so the
// pair always moves through the diff and encoder as one unit.
func continuation(style Style) Cell {
	return Cell{Rune: 0, Style: style}
}

// Size is a width/height pair in cells.
type Size struct {
	W, H int
}

// Rect is a rectangle in absolute buffer coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (b Rect) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Contains reports whether the point lies inside the rectangle.
func (b Rect) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Inset returns the rectangle shrunk by the given edge amounts. The result
// never has negative dimensions.
func (b Rect) Inset(top, right, bottom, left int) Rect {
	b.X += left
	b.Y += top
	b.W -= left + right
	b.H -= top + bottom
	if b.W < 0 {
		b.W = 0
	}
	if b.H < 0 {
		b.H = 0
	}
	return b
}

// Intersect returns the overlap of two rectangles, which may be empty.
func (b Rect) Intersect(o Rect) Rect {
	x1 := max(b.X, o.X)
	y1 := max(b.Y, o.Y)
	x2 := min(b.X+b.W, o.X+o.W)
	y2 := min(b.Y+b.H, o.Y+o.H)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

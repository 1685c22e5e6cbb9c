package weft

// CursorShape selects the terminal cursor glyph (DECSCUSR parameter).
type CursorShape int

const (
	CursorDefault        CursorShape = 0
	CursorBlockBlink     CursorShape = 1
	CursorBlock          CursorShape = 2
	CursorUnderlineBlink CursorShape = 3
	CursorUnderline      CursorShape = 4
	CursorBarBlink       CursorShape = 5
	CursorBar            CursorShape = 6
)

// Cursor is a cursor position plus presentation state. The terminal
// applies it after each flush so the caret lands where the host
// application wants it, typically inside a focused input region.
type Cursor struct {
	X, Y    int
	Shape   CursorShape
	Visible bool
}

// DefaultCursor returns a visible block cursor at the origin.
func DefaultCursor() Cursor {
	return Cursor{Shape: CursorBlock, Visible: true}
}

package weft

import (
	"bytes"

	"github.com/mattn/go-runewidth"
)

// Encoder turns cells and cursor motion into ANSI escape bytes. It tracks
// the cursor position and the active SGR state across calls, so a run of
// same-style cells costs one style transition plus one glyph per cell.
//
// The encoder only buffers; the flush controller hands the accumulated
// bytes to the terminal in a single write.
type Encoder struct {
	buf     bytes.Buffer
	profile Profile

	active     Style
	styleKnown bool

	row, col int
	posKnown bool

	degraded map[Color]Color
}

// NewEncoder returns an encoder emitting colors for the given profile.
// Colors the profile cannot represent degrade to the nearest value it can.
func NewEncoder(p Profile) *Encoder {
	return &Encoder{profile: p, degraded: make(map[Color]Color)}
}

// Begin starts a new frame: the byte buffer empties and cursor and style
// tracking reset, so nothing is assumed about terminal state left over
// from outside the frame.
func (e *Encoder) Begin() {
	e.buf.Reset()
	e.styleKnown = false
	e.posKnown = false
}

// Bytes returns the encoded frame so far. The slice is valid until the
// next Begin.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded bytes so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// MoveTo positions the cursor at a 0-based row and column. No bytes are
// emitted when the tracked cursor is already there.
func (e *Encoder) MoveTo(row, col int) {
	if e.posKnown && e.row == row && e.col == col {
		return
	}
	e.buf.WriteString("\x1b[")
	e.writeInt(row + 1)
	e.buf.WriteByte(';')
	e.writeInt(col + 1)
	e.buf.WriteByte('H')
	e.row, e.col = row, col
	e.posKnown = true
}

// WriteCells encodes a run of cells at the current cursor position.
// Continuation cells emit nothing; the wide rune before them already
// advanced the cursor over their column.
func (e *Encoder) WriteCells(cells []Cell) {
	for _, c := range cells {
		if c.Rune == 0 {
			continue
		}
		st := e.degradeStyle(c.Style)
		if !e.styleKnown || st != e.active {
			e.writeTransition(st)
			e.active = st
			e.styleKnown = true
		}
		e.buf.WriteRune(c.Rune)
		w := runewidth.RuneWidth(c.Rune)
		if w == 0 {
			w = 1
		}
		e.col += w
	}
}

// Reset appends a full SGR reset. Every flush ends with one so no style
// leaks past a frame.
func (e *Encoder) Reset() {
	e.buf.WriteString("\x1b[0m")
	e.active = Style{}
	e.styleKnown = true
}

// writeTransition emits the cheapest escape that moves the terminal from
// the active style to st. A change in the attribute set rebuilds the whole
// style from a reset, because attribute bits cannot be cleared one by one
// across terminals. A color-only change emits only the changed colors.
func (e *Encoder) writeTransition(st Style) {
	if !e.styleKnown || st.Attr != e.active.Attr {
		e.writeFullStyle(st)
		return
	}
	e.buf.WriteString("\x1b[")
	first := true
	if st.FG != e.active.FG {
		first = e.writeColorParams(st.FG, true, first)
	}
	if st.BG != e.active.BG {
		first = e.writeColorParams(st.BG, false, first)
	}
	e.buf.WriteByte('m')
}

// writeFullStyle emits a reset followed by every attribute and both
// colors, leaving the terminal in exactly st regardless of prior state.
func (e *Encoder) writeFullStyle(st Style) {
	e.buf.WriteString("\x1b[0")
	if st.Attr.Has(AttrBold) {
		e.buf.WriteString(";1")
	}
	if st.Attr.Has(AttrDim) {
		e.buf.WriteString(";2")
	}
	if st.Attr.Has(AttrItalic) {
		e.buf.WriteString(";3")
	}
	if st.Attr.Has(AttrUnderline) {
		e.buf.WriteString(";4")
	}
	if st.Attr.Has(AttrBlink) {
		e.buf.WriteString(";5")
	}
	if st.Attr.Has(AttrInverse) {
		e.buf.WriteString(";7")
	}
	if st.Attr.Has(AttrStrikethrough) {
		e.buf.WriteString(";9")
	}
	e.buf.WriteByte(';')
	e.writeColorParams(st.FG, true, true)
	e.buf.WriteByte(';')
	e.writeColorParams(st.BG, false, true)
	e.buf.WriteByte('m')
}

// writeColorParams appends the SGR parameters for one color. first tracks
// whether a separating semicolon is needed; the return value is always
// false so callers can thread it.
func (e *Encoder) writeColorParams(c Color, fg, first bool) bool {
	if !first {
		e.buf.WriteByte(';')
	}
	switch c.Mode {
	case ColorNone:
		if fg {
			e.buf.WriteString("39")
		} else {
			e.buf.WriteString("49")
		}
	case Color16:
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		e.writeInt(base + idx)
	case Color256:
		if fg {
			e.buf.WriteString("38;5;")
		} else {
			e.buf.WriteString("48;5;")
		}
		e.writeInt(int(c.Index))
	case ColorRGB:
		if fg {
			e.buf.WriteString("38;2;")
		} else {
			e.buf.WriteString("48;2;")
		}
		e.writeInt(int(c.R))
		e.buf.WriteByte(';')
		e.writeInt(int(c.G))
		e.buf.WriteByte(';')
		e.writeInt(int(c.B))
	}
	return false
}

func (e *Encoder) degradeStyle(st Style) Style {
	st.FG = e.degradeColor(st.FG)
	st.BG = e.degradeColor(st.BG)
	return st
}

// degradeColor maps a color onto the encoder's profile, caching results
// since frames repeat the same handful of colors.
func (e *Encoder) degradeColor(c Color) Color {
	if c.Mode == ColorNone || e.profile == ProfileRGB {
		return c
	}
	if d, ok := e.degraded[c]; ok {
		return d
	}
	d := degrade(c, e.profile)
	e.degraded[c] = d
	return d
}

// writeInt writes an integer without allocation.
func (e *Encoder) writeInt(n int) {
	if n == 0 {
		e.buf.WriteByte('0')
		return
	}
	if n < 0 {
		e.buf.WriteByte('-')
		n = -n
	}
	var scratch [10]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	e.buf.Write(scratch[i:])
}

package weft

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is the flush controller: it owns the output writer, the frame
// shown on screen, the encoder and the termios state. Frames move through
// it one way; the previous frame is swapped, never mutated, so diffing
// always runs against exactly what the terminal displays.
//
// A write failure latches. The terminal contents are unknowable after a
// short write, so every later Flush returns the same error and emits
// nothing.
//
// All methods belong to the single render goroutine. The only other
// goroutine involved is the SIGWINCH watcher, which communicates solely
// through ResizeChan.
type Terminal struct {
	writer io.Writer
	fd     int
	isTTY  bool

	width, height int

	prev *Buffer
	pool *framePool
	enc  *Encoder

	profile    Profile
	altScreen  bool
	hideCursor bool
	inline     bool
	inlineRows int

	origTermios *unix.Termios
	inRawMode   bool
	started     bool

	resizeChan chan Size
	sigChan    chan os.Signal

	cursor    Cursor
	hasCursor bool

	err error
}

// NewTerminal returns a terminal writing to w. Pass nil for stdout. The
// window size is queried when w is a TTY and falls back to 80×24
// otherwise.
func NewTerminal(w io.Writer) (*Terminal, error) {
	if w == nil {
		w = os.Stdout
	}
	fd := -1
	isTTY := false
	if f, ok := w.(*os.File); ok {
		fd = int(f.Fd())
		isTTY = term.IsTerminal(fd)
	}

	width, height := 80, 24
	if isTTY {
		if ww, hh, err := terminalSize(fd); err == nil {
			width, height = ww, hh
		}
	}

	profile := DetectProfile()
	t := &Terminal{
		writer:     w,
		fd:         fd,
		isTTY:      isTTY,
		width:      width,
		height:     height,
		pool:       newFramePool(width, height),
		enc:        NewEncoder(profile),
		profile:    profile,
		altScreen:  true,
		hideCursor: true,
		resizeChan: make(chan Size, 1),
		sigChan:    make(chan os.Signal, 1),
	}
	return t, nil
}

func terminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Size returns the current frame dimensions.
func (t *Terminal) Size() Size {
	return Size{W: t.width, H: t.height}
}

// Err returns the latched write error, if any.
func (t *Terminal) Err() error {
	return t.err
}

// Profile returns the color profile the encoder degrades to.
func (t *Terminal) Profile() Profile {
	return t.profile
}

// SetProfile overrides the detected color profile. Call before Start.
func (t *Terminal) SetProfile(p Profile) {
	t.profile = p
	t.enc = NewEncoder(p)
}

// SetAltScreen controls whether Start switches to the alternate screen.
func (t *Terminal) SetAltScreen(on bool) {
	t.altScreen = on
}

// SetHideCursor controls whether Start hides the cursor.
func (t *Terminal) SetHideCursor(on bool) {
	t.hideCursor = on
}

// SetInline switches the terminal to inline mode: frames render at the
// prompt in the normal scrollback instead of the alternate screen, and
// each flush rewrites the painted lines in place.
func (t *Terminal) SetInline(on bool) {
	t.inline = on
}

// ResizeChan delivers window sizes after SIGWINCH. The channel holds one
// pending size; a newer size replaces an unconsumed older one, so readers
// always see the latest.
func (t *Terminal) ResizeChan() <-chan Size {
	return t.resizeChan
}

// NextFrame returns a cleared buffer at the current size for the
// compositor to paint.
func (t *Terminal) NextFrame() *Buffer {
	return t.pool.Next()
}

// Start prepares the terminal: raw mode and the SIGWINCH watcher when the
// output is a TTY, then the screen setup sequences. Stop undoes all of it.
func (t *Terminal) Start() error {
	if t.started {
		return nil
	}
	if t.isTTY {
		if err := t.enterRawMode(); err != nil {
			return err
		}
		signal.Notify(t.sigChan, syscall.SIGWINCH)
		go t.watchResize()
	}
	if !t.inline {
		if t.altScreen {
			t.writeString("\x1b[?1049h")
		}
		t.writeString("\x1b[2J\x1b[H")
		if t.hideCursor {
			t.writeString("\x1b[?25l")
		}
	}
	t.writeString("\x1b[0m")
	t.started = true
	return t.err
}

// Stop restores the terminal. It always runs every restore step, even
// after write failures, so a crashed renderer never strands the user in
// raw mode.
func (t *Terminal) Stop() error {
	if !t.started {
		return nil
	}
	t.started = false

	if t.inline {
		// Leave the painted lines in the scrollback and park the cursor
		// below them.
		if t.inlineRows > 0 {
			t.writeString("\r\n")
		}
		t.writeString("\x1b[0m")
	} else {
		t.writeString("\x1b[0m")
		if t.hideCursor {
			t.writeString("\x1b[?25h")
		}
		if t.altScreen {
			t.writeString("\x1b[?1049l")
		}
	}

	if t.isTTY {
		signal.Stop(t.sigChan)
	}
	var restoreErr error
	if t.inRawMode && t.origTermios != nil {
		if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, t.origTermios); err != nil {
			restoreErr = fmt.Errorf("restore termios: %w", err)
		}
		t.inRawMode = false
	}
	if t.err != nil {
		return t.err
	}
	return restoreErr
}

func (t *Terminal) enterRawMode() error {
	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	t.origTermios = termios

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	t.inRawMode = true
	return nil
}

// watchResize queries the window size on each SIGWINCH and keeps the
// latest value in resizeChan. It never applies the size itself; the
// render loop does that, so buffers only change between frames.
func (t *Terminal) watchResize() {
	for range t.sigChan {
		w, h, err := terminalSize(t.fd)
		if err != nil {
			continue
		}
		sz := Size{W: w, H: h}
		select {
		case t.resizeChan <- sz:
		default:
			select {
			case <-t.resizeChan:
			default:
			}
			select {
			case t.resizeChan <- sz:
			default:
			}
		}
	}
}

// Resize applies new frame dimensions. The previous frame keeps its old
// size, so the next Flush takes the full-redraw path. The pool drops
// buffers of the old size.
func (t *Terminal) Resize(sz Size) {
	if sz.W == t.width && sz.H == t.height {
		return
	}
	t.width, t.height = sz.W, sz.H
	t.pool.Resize(sz.W, sz.H)
	if !t.inline {
		t.writeString("\x1b[2J")
	}
}

// SetCursor sets the cursor state applied at the end of every flush.
func (t *Terminal) SetCursor(c Cursor) {
	t.cursor = c
	t.hasCursor = true
}

// MoveCursorTo places a visible cursor at the given cell after the next
// flush.
func (t *Terminal) MoveCursorTo(x, y int) {
	t.cursor.X = x
	t.cursor.Y = y
	t.cursor.Visible = true
	t.hasCursor = true
}

// ShowCursor makes the post-flush cursor visible.
func (t *Terminal) ShowCursor() {
	t.cursor.Visible = true
	t.hasCursor = true
}

// HideCursor hides the cursor after the next flush.
func (t *Terminal) HideCursor() {
	t.cursor.Visible = false
	t.hasCursor = true
}

// SetCursorShape sets the cursor glyph applied with the post-flush cursor
// state.
func (t *Terminal) SetCursorShape(shape CursorShape) {
	t.cursor.Shape = shape
	t.hasCursor = true
}

// Flush diffs next against the displayed frame and writes the encoded
// difference in a single write. On success the terminal takes ownership
// of next and recycles the displaced frame. After a write failure the
// latched error comes back from every call and nothing more is written.
func (t *Terminal) Flush(next *Buffer) error {
	if t.err != nil {
		return t.err
	}
	if next == nil {
		return nil
	}
	if t.inline {
		return t.flushInline(next)
	}

	var start time.Time
	if debugFlush {
		start = time.Now()
	}

	ops := Diff(t.prev, next)
	if len(ops) == 0 && !t.hasCursor {
		t.pool.Recycle(next)
		return nil
	}

	t.enc.Begin()
	cells := 0
	for _, op := range ops {
		t.enc.MoveTo(op.Row, op.StartCol)
		t.enc.WriteCells(op.Cells)
		cells += len(op.Cells)
	}
	t.enc.Reset()
	t.encodeCursor()

	if debugFlush {
		reportFlush(t.enc.Len(), len(ops), cells, time.Since(start))
	}

	if _, werr := t.writer.Write(t.enc.Bytes()); werr != nil {
		t.err = fmt.Errorf("terminal write: %w", werr)
		return t.err
	}

	displaced := t.prev
	t.prev = next
	t.pool.Recycle(displaced)
	return nil
}

// flushInline rewrites the painted lines in place: cursor up to the first
// line of the previous frame, then clear and repaint each row. No diffing;
// inline frames are small and the erase-line sequence keeps partial rows
// clean.
func (t *Terminal) flushInline(next *Buffer) error {
	t.enc.Begin()
	b := &t.enc.buf
	if t.inlineRows > 1 {
		b.WriteString("\x1b[")
		t.enc.writeInt(t.inlineRows - 1)
		b.WriteByte('A')
	}
	b.WriteByte('\r')
	for y := 0; y < next.h; y++ {
		if y > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString("\x1b[K")
		row := next.cells[y*next.w : (y+1)*next.w]
		t.enc.WriteCells(row[:rowEnd(row)])
	}
	// Content shrank: wipe the stale lines below, then park the cursor
	// back on the last content row.
	if stale := t.inlineRows - next.h; stale > 0 {
		for i := 0; i < stale; i++ {
			b.WriteString("\r\n\x1b[K")
		}
		b.WriteString("\x1b[")
		t.enc.writeInt(stale)
		b.WriteByte('A')
		b.WriteByte('\r')
	}
	t.enc.Reset()

	if _, werr := t.writer.Write(t.enc.Bytes()); werr != nil {
		t.err = fmt.Errorf("terminal write: %w", werr)
		return t.err
	}

	t.inlineRows = next.h
	displaced := t.prev
	t.prev = next
	t.pool.Recycle(displaced)
	return nil
}

// rowEnd trims trailing blank cells so inline repaints stop where content
// stops; the erase-line sequence already cleared the rest.
func rowEnd(row []Cell) int {
	end := len(row)
	blank := EmptyCell()
	for end > 0 && row[end-1] == blank {
		end--
	}
	return end
}

// encodeCursor appends the post-flush cursor state: shape, position,
// visibility.
func (t *Terminal) encodeCursor() {
	if !t.hasCursor {
		return
	}
	c := t.cursor
	if !c.Visible {
		t.enc.buf.WriteString("\x1b[?25l")
		return
	}
	if c.Shape != CursorDefault {
		t.enc.buf.WriteString("\x1b[")
		t.enc.writeInt(int(c.Shape))
		t.enc.buf.WriteString(" q")
	}
	t.enc.buf.WriteString("\x1b[")
	t.enc.writeInt(c.Y + 1)
	t.enc.buf.WriteByte(';')
	t.enc.writeInt(c.X + 1)
	t.enc.buf.WriteByte('H')
	t.enc.buf.WriteString("\x1b[?25h")
}

func (t *Terminal) writeString(s string) {
	if t.err != nil {
		return
	}
	if _, err := io.WriteString(t.writer, s); err != nil {
		t.err = fmt.Errorf("terminal write: %w", err)
	}
}

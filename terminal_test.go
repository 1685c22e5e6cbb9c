package weft

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func newTestTerminal(w, h int) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	t := &Terminal{
		writer:     &out,
		fd:         -1,
		width:      w,
		height:     h,
		pool:       newFramePool(w, h),
		enc:        NewEncoder(ProfileRGB),
		profile:    ProfileRGB,
		altScreen:  true,
		hideCursor: true,
		resizeChan: make(chan Size, 1),
		sigChan:    make(chan os.Signal, 1),
	}
	return t, &out
}

func TestNewTerminal(t *testing.T) {
	clearProfileEnv(t)
	var out bytes.Buffer
	term, err := NewTerminal(&out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.isTTY {
		t.Error("a bytes.Buffer is not a TTY")
	}
	if sz := term.Size(); sz != (Size{W: 80, H: 24}) {
		t.Errorf("fallback size = %+v", sz)
	}
	if term.Profile() != Profile16 {
		t.Errorf("profile = %v with a scrubbed environment", term.Profile())
	}
	if term.Err() != nil {
		t.Errorf("fresh terminal carries error %v", term.Err())
	}
}

func TestTerminalFlush(t *testing.T) {
	t.Run("first flush paints every row", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		frame := term.NextFrame()
		frame.WriteString(0, 0, "hi", Style{})

		if err := term.Flush(frame); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := out.String()
		if !strings.Contains(s, "\x1b[1;1H") || !strings.Contains(s, "\x1b[2;1H") {
			t.Errorf("missing row moves in %q", s)
		}
		if !strings.Contains(s, "hi") {
			t.Errorf("missing content in %q", s)
		}
		if !strings.HasSuffix(s, "\x1b[0m") {
			t.Errorf("flush did not end with a reset: %q", s)
		}
	})

	t.Run("unchanged frame emits nothing", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		frame := term.NextFrame()
		frame.WriteString(0, 0, "hi", Style{})
		if err := term.Flush(frame); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		next := term.NextFrame()
		next.WriteString(0, 0, "hi", Style{})
		if err := term.Flush(next); err != nil {
			t.Fatal(err)
		}
		if out.Len() != 0 {
			t.Errorf("expected no output, got %q", out.String())
		}
		// The skipped frame goes back to the pool.
		if reused := term.NextFrame(); reused != next {
			t.Error("expected the skipped frame to be recycled")
		}
	})

	t.Run("changed cell writes one positioned run", func(t *testing.T) {
		term, out := newTestTerminal(10, 1)
		frame := term.NextFrame()
		frame.WriteString(0, 0, "hello", Style{})
		if err := term.Flush(frame); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		next := term.NextFrame()
		next.WriteString(0, 0, "hellx", Style{})
		if err := term.Flush(next); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[1;5H\x1b[0;39;49mx\x1b[0m"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
	})

	t.Run("nil frame is a no-op", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		if err := term.Flush(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("expected no output, got %q", out.String())
		}
	})

	t.Run("write failure latches", func(t *testing.T) {
		term, _ := newTestTerminal(10, 1)
		broken := errors.New("broken pipe")
		term.writer = failWriter{err: broken}

		frame := term.NextFrame()
		frame.WriteString(0, 0, "x", Style{})
		err := term.Flush(frame)
		if !errors.Is(err, broken) {
			t.Fatalf("expected wrapped write error, got %v", err)
		}
		if !strings.Contains(err.Error(), "terminal write:") {
			t.Errorf("error = %q", err)
		}

		// Every later flush reports the same error without writing.
		again := term.Flush(NewBuffer(10, 1))
		if again != err {
			t.Errorf("expected latched error %v, got %v", err, again)
		}
		if term.Err() != err {
			t.Errorf("Err() = %v", term.Err())
		}
	})
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestTerminalCursor(t *testing.T) {
	t.Run("visible cursor placed after flush", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		if err := term.Flush(term.NextFrame()); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		term.MoveCursorTo(3, 1)
		if err := term.Flush(term.NextFrame()); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[0m\x1b[2;4H\x1b[?25h"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
	})

	t.Run("hidden cursor", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		if err := term.Flush(term.NextFrame()); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		term.HideCursor()
		if err := term.Flush(term.NextFrame()); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[0m\x1b[?25l"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
	})

	t.Run("cursor shape emits DECSCUSR", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		if err := term.Flush(term.NextFrame()); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		term.SetCursor(Cursor{X: 0, Y: 0, Visible: true, Shape: CursorBar})
		if err := term.Flush(term.NextFrame()); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[0m\x1b[6 q\x1b[1;1H\x1b[?25h"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
	})
}

func TestTerminalResize(t *testing.T) {
	t.Run("forces a full redraw at the new size", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		frame := term.NextFrame()
		frame.WriteString(0, 0, "hi", Style{})
		if err := term.Flush(frame); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		term.Resize(Size{W: 5, H: 2})
		if !strings.Contains(out.String(), "\x1b[2J") {
			t.Errorf("expected a clear, got %q", out.String())
		}
		if sz := term.Size(); sz != (Size{W: 5, H: 2}) {
			t.Errorf("size = %+v", sz)
		}
		out.Reset()

		next := term.NextFrame()
		if next.Width() != 5 || next.Height() != 2 {
			t.Fatalf("frame dims = %dx%d", next.Width(), next.Height())
		}
		next.WriteString(0, 0, "hi", Style{})
		if err := term.Flush(next); err != nil {
			t.Fatal(err)
		}
		// Old and new dims disagree, so every row flushes in full.
		s := out.String()
		if !strings.Contains(s, "\x1b[1;1H") || !strings.Contains(s, "\x1b[2;1H") {
			t.Errorf("expected both rows rewritten, got %q", s)
		}
	})

	t.Run("same size is a no-op", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		term.Resize(Size{W: 10, H: 2})
		if out.Len() != 0 {
			t.Errorf("expected no output, got %q", out.String())
		}
	})
}

func TestTerminalInline(t *testing.T) {
	t.Run("first flush rewrites from the carriage", func(t *testing.T) {
		term, out := newTestTerminal(10, 3)
		term.SetInline(true)

		frame := term.NextFrame()
		frame.WriteString(0, 0, "one", Style{})
		frame.WriteString(0, 1, "two", Style{})
		if err := term.Flush(frame); err != nil {
			t.Fatal(err)
		}
		want := "\r\x1b[K\x1b[0;39;49mone\r\n\x1b[Ktwo\r\n\x1b[K\x1b[0m"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
		if term.inlineRows != 3 {
			t.Errorf("inlineRows = %d", term.inlineRows)
		}
	})

	t.Run("clears stale lines when content shrinks", func(t *testing.T) {
		term, out := newTestTerminal(10, 3)
		term.SetInline(true)
		frame := term.NextFrame()
		frame.WriteString(0, 0, "one", Style{})
		frame.WriteString(0, 1, "two", Style{})
		frame.WriteString(0, 2, "three", Style{})
		if err := term.Flush(frame); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		term.Resize(Size{W: 10, H: 1})
		if out.Len() != 0 {
			t.Fatalf("inline resize wrote %q", out.String())
		}
		next := term.NextFrame()
		next.WriteString(0, 0, "four", Style{})
		if err := term.Flush(next); err != nil {
			t.Fatal(err)
		}

		want := "\x1b[2A\r\x1b[K\x1b[0;39;49mfour\r\n\x1b[K\r\n\x1b[K\x1b[2A\r\x1b[0m"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
		if got := strings.Count(out.String(), "\x1b[K"); got != 3 {
			t.Errorf("expected 3 erase-line sequences, got %d", got)
		}
		if term.inlineRows != 1 {
			t.Errorf("inlineRows = %d", term.inlineRows)
		}
	})

	t.Run("single previous row needs no cursor up", func(t *testing.T) {
		term, out := newTestTerminal(10, 1)
		term.SetInline(true)
		frame := term.NextFrame()
		frame.WriteString(0, 0, "a", Style{})
		if err := term.Flush(frame); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		next := term.NextFrame()
		next.WriteString(0, 0, "b", Style{})
		if err := term.Flush(next); err != nil {
			t.Fatal(err)
		}
		want := "\r\x1b[K\x1b[0;39;49mb\x1b[0m"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
	})
}

func TestTerminalStartStop(t *testing.T) {
	t.Run("alt screen setup and teardown", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		if err := term.Start(); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l\x1b[0m"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}

		out.Reset()
		if err := term.Start(); err != nil {
			t.Fatal(err)
		}
		if out.Len() != 0 {
			t.Errorf("second Start wrote %q", out.String())
		}

		if err := term.Stop(); err != nil {
			t.Fatal(err)
		}
		want = "\x1b[0m\x1b[?25h\x1b[?1049l"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}

		out.Reset()
		if err := term.Stop(); err != nil {
			t.Fatal(err)
		}
		if out.Len() != 0 {
			t.Errorf("second Stop wrote %q", out.String())
		}
	})

	t.Run("plain screen skips alt screen sequences", func(t *testing.T) {
		term, out := newTestTerminal(10, 2)
		term.SetAltScreen(false)
		term.SetHideCursor(false)
		if err := term.Start(); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[2J\x1b[H\x1b[0m"
		if out.String() != want {
			t.Errorf("expected %q, got %q", want, out.String())
		}
		out.Reset()
		if err := term.Stop(); err != nil {
			t.Fatal(err)
		}
		if out.String() != "\x1b[0m" {
			t.Errorf("got %q", out.String())
		}
	})

	t.Run("inline leaves painted lines in the scrollback", func(t *testing.T) {
		term, out := newTestTerminal(10, 1)
		term.SetInline(true)
		if err := term.Start(); err != nil {
			t.Fatal(err)
		}
		if out.String() != "\x1b[0m" {
			t.Errorf("inline Start wrote %q", out.String())
		}

		frame := term.NextFrame()
		frame.WriteString(0, 0, "done", Style{})
		if err := term.Flush(frame); err != nil {
			t.Fatal(err)
		}
		out.Reset()

		if err := term.Stop(); err != nil {
			t.Fatal(err)
		}
		if out.String() != "\r\n\x1b[0m" {
			t.Errorf("inline Stop wrote %q", out.String())
		}
	})
}

func TestTerminalSetProfile(t *testing.T) {
	term, out := newTestTerminal(3, 1)
	term.SetProfile(Profile16)
	if term.Profile() != Profile16 {
		t.Fatalf("profile = %v", term.Profile())
	}

	frame := term.NextFrame()
	frame.WriteString(0, 0, "x", Style{FG: RGB(255, 0, 0)})
	if err := term.Flush(frame); err != nil {
		t.Fatal(err)
	}
	want := "\x1b[1;1H\x1b[0;91;49mx\x1b[39m  \x1b[0m"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

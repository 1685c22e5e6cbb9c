package weft

import "testing"

func TestBuffer(t *testing.T) {
	t.Run("NewBuffer", func(t *testing.T) {
		buf := NewBuffer(80, 24)
		if buf.Width() != 80 || buf.Height() != 24 {
			t.Errorf("expected 80x24, got %dx%d", buf.Width(), buf.Height())
		}

		// All cells should start blank
		for y := 0; y < buf.Height(); y++ {
			for x := 0; x < buf.Width(); x++ {
				if c := buf.Get(x, y); c != EmptyCell() {
					t.Fatalf("expected blank cell at (%d,%d), got %+v", x, y, c)
				}
			}
		}
	})

	t.Run("NegativeDimensionsClampToZero", func(t *testing.T) {
		buf := NewBuffer(-5, -3)
		if buf.Width() != 0 || buf.Height() != 0 {
			t.Errorf("expected 0x0, got %dx%d", buf.Width(), buf.Height())
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		buf := NewBuffer(10, 10)
		cell := NewCell('X', DefaultStyle().Foreground(Red))

		buf.Set(5, 5, cell)
		if got := buf.Get(5, 5); got != cell {
			t.Errorf("got %+v, want %+v", got, cell)
		}

		// Out of bounds reads come back blank
		if oob := buf.Get(-1, -1); oob != EmptyCell() {
			t.Error("expected blank cell for out of bounds read")
		}
		if oob := buf.Get(10, 0); oob != EmptyCell() {
			t.Error("expected blank cell past the right edge")
		}

		// Out of bounds writes are dropped, not wrapped
		buf.Set(10, 0, cell)
		if buf.Get(0, 1) != EmptyCell() {
			t.Error("out of bounds write wrapped onto the next row")
		}
	})

	t.Run("WriteString", func(t *testing.T) {
		buf := NewBuffer(20, 5)
		style := DefaultStyle().Foreground(Green)

		written := buf.WriteString(2, 2, "Hello", style)
		if written != 5 {
			t.Errorf("expected 5 columns written, got %d", written)
		}

		for i, ch := range "Hello" {
			c := buf.Get(2+i, 2)
			if c.Rune != ch {
				t.Errorf("at %d: expected %q, got %q", i, ch, c.Rune)
			}
			if c.Style != style {
				t.Errorf("at %d: style not applied", i)
			}
		}
	})

	t.Run("WriteStringPreservesNeighbors", func(t *testing.T) {
		buf := NewBuffer(20, 1)
		red := DefaultStyle().Foreground(Red)
		blue := DefaultStyle().Foreground(Blue)

		buf.WriteString(0, 0, "AAAAA", red)
		buf.WriteString(10, 0, "BBBBB", blue)

		before := make([]Cell, 20)
		for x := 0; x < 20; x++ {
			before[x] = buf.Get(x, 0)
		}

		buf.WriteString(5, 0, "Hello", DefaultStyle())

		if got := buf.GetLine(0); got != "AAAAAHelloBBBBB" {
			t.Errorf("expected %q, got %q", "AAAAAHelloBBBBB", got)
		}
		// Cells outside the written range are byte for byte what they were.
		for x := 0; x < 5; x++ {
			if buf.Get(x, 0) != before[x] {
				t.Errorf("cell %d changed by a write that did not cover it", x)
			}
		}
		for x := 10; x < 20; x++ {
			if buf.Get(x, 0) != before[x] {
				t.Errorf("cell %d changed by a write that did not cover it", x)
			}
		}
	})

	t.Run("WriteStringWide", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		buf.WriteString(0, 0, "日本", DefaultStyle())

		if buf.Get(0, 0).Rune != '日' {
			t.Errorf("expected wide rune at 0, got %q", buf.Get(0, 0).Rune)
		}
		if buf.Get(1, 0).Rune != 0 {
			t.Error("expected continuation cell after wide rune")
		}
		if buf.Get(2, 0).Rune != '本' {
			t.Errorf("expected wide rune at 2, got %q", buf.Get(2, 0).Rune)
		}
		if buf.Get(3, 0).Rune != 0 {
			t.Error("expected continuation cell at 3")
		}
	})

	t.Run("WideRuneAtClipEdge", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		// 4 columns of room, then a wide rune that would straddle the edge.
		written := buf.WriteStringClipped(0, 0, "abc日", DefaultStyle(), 4)
		if written != 4 {
			t.Errorf("expected 4 columns written, got %d", written)
		}
		// The straddling wide rune is replaced by a blank, never torn.
		if buf.Get(3, 0).Rune != ' ' {
			t.Errorf("expected blank at clip edge, got %q", buf.Get(3, 0).Rune)
		}
		if buf.Get(4, 0) != EmptyCell() {
			t.Error("write leaked past the clip edge")
		}
	})

	t.Run("WriteStringClipped", func(t *testing.T) {
		buf := NewBuffer(20, 5)
		written := buf.WriteStringClipped(0, 0, "Hello World", DefaultStyle(), 5)
		if written != 5 {
			t.Errorf("expected 5 columns written, got %d", written)
		}
		if buf.Get(4, 0).Rune != 'o' {
			t.Error("expected 'o' at column 4")
		}
		if buf.Get(5, 0) != EmptyCell() {
			t.Error("expected untouched cell at column 5")
		}
	})

	t.Run("CombiningMarksCollapse", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		// e + combining acute is one grapheme, one cell.
		written := buf.WriteString(0, 0, "éx", DefaultStyle())
		if written != 2 {
			t.Errorf("expected 2 columns written, got %d", written)
		}
		if buf.Get(1, 0).Rune != 'x' {
			t.Errorf("expected 'x' at column 1, got %q", buf.Get(1, 0).Rune)
		}
	})

	t.Run("FillRect", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		cell := NewCell('#', DefaultStyle().Background(Blue))

		buf.FillRect(5, 5, 3, 2, cell)

		for y := 5; y < 7; y++ {
			for x := 5; x < 8; x++ {
				if buf.Get(x, y).Rune != '#' {
					t.Errorf("expected '#' at (%d,%d)", x, y)
				}
			}
		}
		if buf.Get(4, 5).Rune != ' ' {
			t.Error("fill leaked left of the rectangle")
		}
		if buf.Get(8, 5).Rune != ' ' {
			t.Error("fill leaked right of the rectangle")
		}
	})

	t.Run("FillRectClips", func(t *testing.T) {
		buf := NewBuffer(5, 5)
		buf.FillRect(-2, -2, 20, 20, NewCell('#', DefaultStyle()))
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				if buf.Get(x, y).Rune != '#' {
					t.Errorf("expected '#' at (%d,%d)", x, y)
				}
			}
		}
	})

	t.Run("Resized", func(t *testing.T) {
		buf := NewBuffer(10, 10)
		buf.WriteString(0, 0, "Test", DefaultStyle())

		nb := buf.Resized(20, 5)
		if nb.Width() != 20 || nb.Height() != 5 {
			t.Errorf("expected 20x5, got %dx%d", nb.Width(), nb.Height())
		}
		if nb.GetLine(0) != "Test" {
			t.Error("overlap not copied into the new buffer")
		}
		// New area starts blank, the receiver keeps its size.
		if nb.Get(15, 0) != EmptyCell() {
			t.Error("grown area should be blank")
		}
		if buf.Width() != 10 || buf.Height() != 10 {
			t.Error("Resized mutated the receiver")
		}
	})

	t.Run("BlitOpaque", func(t *testing.T) {
		dst := NewBuffer(10, 3)
		dst.WriteString(0, 1, "XXXXXXXXXX", DefaultStyle())

		src := NewBuffer(3, 1)
		src.WriteString(0, 0, "ab", DefaultStyle())

		dst.Blit(src, 2, 1, true)
		if got := dst.GetLine(1); got != "XXab XXXXX" {
			t.Errorf("expected %q, got %q", "XXab XXXXX", got)
		}
	})

	t.Run("BlitTransparent", func(t *testing.T) {
		dst := NewBuffer(10, 1)
		dst.WriteString(0, 0, "XXXXXXXXXX", DefaultStyle())

		// Layer buffers start untouched; only painted cells copy down.
		src := NewLayerBuffer(4, 1)
		src.Set(1, 0, NewCell('a', DefaultStyle()))
		src.Set(2, 0, NewCell('b', DefaultStyle()))

		dst.Blit(src, 3, 0, false)
		if got := dst.GetLine(0); got != "XXXXabXXXX" {
			t.Errorf("expected %q, got %q", "XXXXabXXXX", got)
		}
	})

	t.Run("BlitClips", func(t *testing.T) {
		dst := NewBuffer(4, 2)
		src := NewBuffer(4, 2)
		src.WriteString(0, 0, "abcd", DefaultStyle())
		src.WriteString(0, 1, "efgh", DefaultStyle())

		dst.Blit(src, 2, 1, true)
		if got := dst.GetLine(1); got != "  ab" {
			t.Errorf("expected %q, got %q", "  ab", got)
		}
		if got := dst.GetLine(0); got != "" {
			t.Errorf("expected empty first row, got %q", got)
		}
	})

	t.Run("GetLine", func(t *testing.T) {
		buf := NewBuffer(10, 2)
		buf.WriteString(0, 0, "hi", DefaultStyle())

		if got := buf.GetLine(0); got != "hi" {
			t.Errorf("expected %q, got %q", "hi", got)
		}
		if got := buf.GetLine(1); got != "" {
			t.Errorf("blank row should read empty, got %q", got)
		}
		if got := buf.GetLine(-1); got != "" {
			t.Error("out of range row should read empty")
		}

		// Continuation cells read as spaces.
		buf.WriteString(0, 1, "日x", DefaultStyle())
		if got := buf.GetLine(1); got != "日 x" {
			t.Errorf("expected %q, got %q", "日 x", got)
		}
	})

	t.Run("StringTrimmed", func(t *testing.T) {
		buf := NewBuffer(8, 4)
		buf.WriteString(0, 0, "top", DefaultStyle())
		buf.WriteString(2, 1, "mid", DefaultStyle())

		want := "top\n  mid"
		if got := buf.StringTrimmed(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}

func BenchmarkBufferSet(b *testing.B) {
	buf := NewBuffer(200, 50)
	cell := NewCell('X', DefaultStyle().Foreground(Red))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := i % 200
		y := (i / 200) % 50
		buf.Set(x, y, cell)
	}
}

func BenchmarkBufferFillRect(b *testing.B) {
	buf := NewBuffer(200, 50)
	cell := NewCell('X', DefaultStyle().Foreground(Red))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.FillRect(0, 0, 200, 50, cell)
	}
}

func BenchmarkBufferWriteString(b *testing.B) {
	buf := NewBuffer(200, 50)
	style := DefaultStyle()
	text := "Hello, World!"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.WriteString(0, i%50, text, style)
	}
}
